package v0

// SecretHeader carries the caller-supplied shared secret on every callback.
const SecretHeader = "x-worker-secret"

const (
	StatusDone  = "done"
	StatusError = "error"
)

// Payload v0: body of the outbound callback POST.
// - video_id: job identifier as received
// - status: "done" or "error"
// - processed_path: destination locator, only with status "done"
// - error_text: failure message, only with status "error"
type Payload struct {
	VideoID       string `json:"video_id"`
	Status        string `json:"status"`
	ProcessedPath string `json:"processed_path,omitempty"`
	ErrorText     string `json:"error_text,omitempty"`
}
