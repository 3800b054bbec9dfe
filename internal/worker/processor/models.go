package processor

import (
	"vidmark/internal/config"
	"vidmark/internal/ports"
)

// JobRequest is the submission body. Which locator fields are expected
// depends on the deployment's addressing mode.
type JobRequest struct {
	VideoID string `json:"video_id"`

	// signed_url mode
	DownloadURL string `json:"download_url,omitempty"`
	UploadURL   string `json:"upload_url,omitempty"`

	// direct mode
	StoragePath string `json:"storage_path,omitempty"`
	Bucket      string `json:"bucket,omitempty"`

	// Logical destination path. Required in signed_url mode, optional in direct.
	UploadPath string `json:"upload_path,omitempty"`

	CallbackURL    string `json:"callback_url"`
	CallbackSecret string `json:"callback_secret"`

	LogoURL       string `json:"logo_url,omitempty"`
	WatermarkText string `json:"watermark_text,omitempty"`
}

// Source is where the input video comes from. Exactly one of URL or Ref is set.
type Source struct {
	URL string
	Ref ports.ObjectRef
}

// Destination is where the output goes. Path is what gets reported back.
type Destination struct {
	URL  string
	Ref  ports.ObjectRef
	Path string
}

// Job is a validated, immutable JobRequest.
type Job struct {
	VideoID        string
	Mode           config.AddressingMode
	Source         Source
	Dest           Destination
	CallbackURL    string
	CallbackSecret string
	Overlay        Overlay
}

// Overlay is either a TextOverlay or a LogoOverlay.
type Overlay interface {
	overlay()
}

type TextOverlay struct {
	Text string
}

type LogoOverlay struct {
	URL   string
	Width int
}

func (TextOverlay) overlay() {}
func (LogoOverlay) overlay() {}

// Outcome is the terminal state of a job.
type Outcome struct {
	VideoID       string
	Status        string
	ProcessedPath string
	ErrorText     string
}
