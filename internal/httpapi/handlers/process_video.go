package handlers

import (
	"context"
	"net/http"

	"vidmark/internal/httpkit"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/worker/processor"
)

type ProcessVideoResponse struct {
	Success       bool   `json:"success"`
	VideoID       string `json:"video_id"`
	ProcessedPath string `json:"processed_path"`
}

// ProcessVideo runs the job synchronously and answers with its terminal state.
// The job is detached from the request's cancellation: a client hanging up
// does not stop a job that has started.
func (h *Handler) ProcessVideo(w http.ResponseWriter, r *http.Request) error {
	var req processor.JobRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		return errors.WrapWithCode(err, errors.CodeValidation, "httpapi.process_video", "invalid json body")
	}

	out, err := h.processor.ProcessJob(context.WithoutCancel(r.Context()), req)
	if err != nil {
		return err
	}

	httpkit.WriteJSON(w, http.StatusOK, ProcessVideoResponse{
		Success:       true,
		VideoID:       out.VideoID,
		ProcessedPath: out.ProcessedPath,
	})
	return nil
}
