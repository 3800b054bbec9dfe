package handlers

import (
	"context"

	"vidmark/internal/pkg/logger"
	"vidmark/internal/worker/processor"
)

// JobProcessor runs one watermark job to completion.
type JobProcessor interface {
	ProcessJob(ctx context.Context, req processor.JobRequest) (processor.Outcome, error)
}

type Deps struct {
	Processor JobProcessor
	Log       *logger.Logger
}

type Handler struct {
	processor JobProcessor
	log       *logger.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		processor: d.Processor,
		log:       log.WithComponent("httpapi"),
	}
}
