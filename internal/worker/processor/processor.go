package processor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"vidmark/internal/adapters/signedurl"
	"vidmark/internal/config"
	v0 "vidmark/internal/contracts/callback/v0"
	"vidmark/internal/metrics"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/pkg/logger"
	"vidmark/internal/ports"
	"vidmark/internal/worker/callback"
	"vidmark/internal/worker/events"
	"vidmark/internal/worker/ffmpeg"
)

// StatusRecorder mirrors job progress into a status table. Optional.
type StatusRecorder interface {
	MarkProcessing(ctx context.Context, videoID string) error
	MarkDone(ctx context.Context, videoID, processedPath string) error
	MarkError(ctx context.Context, videoID, errorText string) error
}

// OutcomePublisher announces finished jobs. Optional.
type OutcomePublisher interface {
	Publish(ctx context.Context, o events.Outcome) error
}

type Deps struct {
	Config    config.Config
	Store     ports.ObjectStore // direct mode only
	Transfer  *signedurl.Client
	Runner    ffmpeg.Runner
	Callback  callback.Client
	Recorder  StatusRecorder
	Publisher OutcomePublisher
	Metrics   *metrics.Metrics
	Log       *logger.Logger
}

type Processor struct {
	scratchDir string
	recorder   StatusRecorder
	publisher  OutcomePublisher
	metrics    *metrics.Metrics
	log        *logger.Logger

	jobParser     *JobParser
	inputHandler  *InputHandler
	transformer   *Transformer
	outputHandler *OutputHandler
	notifier      *Notifier
}

func New(d Deps) *Processor {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("processor")

	m := d.Metrics
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	transfer := d.Transfer
	if transfer == nil {
		transfer = signedurl.New(d.Config.TransferTimeout)
	}
	runner := d.Runner
	if runner == nil {
		runner = ffmpeg.NewExecRunner(d.Config.FFmpegPath)
	}
	cb := d.Callback
	if cb == nil {
		cb = callback.NewHTTPClient(d.Config.CallbackTimeout)
	}

	return &Processor{
		scratchDir: d.Config.ScratchDir,
		recorder:   d.Recorder,
		publisher:  d.Publisher,
		metrics:    m,
		log:        log,

		jobParser:     NewJobParser(d.Config),
		inputHandler:  NewInputHandler(d.Store, transfer),
		transformer:   NewTransformer(runner),
		outputHandler: NewOutputHandler(d.Store, transfer),
		notifier:      NewNotifier(cb, m),
	}
}

// ProcessJob runs one job to a terminal state. A ValidationError is returned
// before any I/O. Every other failure has already been reported to the
// callback when it is returned. Scratch files are gone on every path.
func (p *Processor) ProcessJob(ctx context.Context, req JobRequest) (Outcome, error) {
	job, err := p.jobParser.Parse(req)
	if err != nil {
		return Outcome{}, err
	}

	ctx = logger.ContextWithJobID(ctx, job.VideoID)
	log := p.log.FromContext(ctx)
	started := time.Now()

	log.Info("job started", "mode", string(job.Mode), "overlay", overlayName(job.Overlay))
	p.record(log, "processing", func() error { return p.recorder.MarkProcessing(ctx, job.VideoID) })

	scratch := NewScratch(p.scratchDir)
	defer scratch.Cleanup(log)

	processedPath, err := p.run(ctx, log, job, scratch)
	if err != nil {
		return p.failJob(ctx, log, job, started, err)
	}
	return p.finishJob(ctx, log, job, started, processedPath), nil
}

func (p *Processor) run(ctx context.Context, log *logger.Logger, job Job, scratch *Scratch) (string, error) {
	var in Inputs
	err := p.stage(log, "fetch", func(log *logger.Logger) (err error) {
		in, err = p.inputHandler.Fetch(ctx, job, scratch)
		return err
	})
	if err != nil {
		return "", err
	}

	output := scratch.Path("output", extOf(in.Video, ".mp4"))
	err = p.stage(log, "transform", func(log *logger.Logger) error {
		return p.transformer.Transform(ctx, log, in, output, job.Overlay)
	})
	if err != nil {
		return "", err
	}

	var processedPath string
	err = p.stage(log, "upload", func(log *logger.Logger) (err error) {
		processedPath, err = p.outputHandler.Upload(ctx, job, output)
		return err
	})
	return processedPath, err
}

func (p *Processor) stage(log *logger.Logger, name string, fn func(*logger.Logger) error) error {
	log = log.WithStage(name)
	log.Debug("stage started")

	start := time.Now()
	err := fn(log)
	p.metrics.ObserveStage(name, time.Since(start))

	if err != nil {
		return err
	}
	log.Debug("stage finished", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (p *Processor) finishJob(ctx context.Context, log *logger.Logger, job Job, started time.Time, processedPath string) Outcome {
	o := Outcome{VideoID: job.VideoID, Status: v0.StatusDone, ProcessedPath: processedPath}

	p.notifier.Notify(ctx, log, job, o)
	p.record(log, "done", func() error { return p.recorder.MarkDone(ctx, job.VideoID, processedPath) })
	p.publish(ctx, log, o, started)
	p.metrics.JobFinished(o.Status)

	log.Info("job done", "processed_path", processedPath, "duration_ms", time.Since(started).Milliseconds())
	return o
}

func (p *Processor) failJob(ctx context.Context, log *logger.Logger, job Job, started time.Time, cause error) (Outcome, error) {
	o := Outcome{VideoID: job.VideoID, Status: v0.StatusError, ErrorText: cause.Error()}

	var jobErr *errors.Error
	if errors.As(cause, &jobErr) {
		log.WithError(cause).Error("job failed", "code", string(jobErr.Code), "op", jobErr.Op)
	} else {
		log.WithError(cause).Error("job failed")
	}

	p.notifier.Notify(ctx, log, job, o)
	p.record(log, "error", func() error { return p.recorder.MarkError(ctx, job.VideoID, o.ErrorText) })
	p.publish(ctx, log, o, started)
	p.metrics.JobFinished(o.Status)

	return o, cause
}

func (p *Processor) record(log *logger.Logger, status string, fn func() error) {
	if p.recorder == nil {
		return
	}
	if err := fn(); err != nil {
		log.Warn("failed to record job status", "status", status, "error", err.Error())
	}
}

func (p *Processor) publish(ctx context.Context, log *logger.Logger, o Outcome, started time.Time) {
	if p.publisher == nil {
		return
	}
	err := p.publisher.Publish(ctx, events.Outcome{
		VideoID:       o.VideoID,
		Status:        o.Status,
		ProcessedPath: o.ProcessedPath,
		ErrorText:     o.ErrorText,
		DurationMS:    time.Since(started).Milliseconds(),
		FinishedAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Warn("failed to publish outcome", "error", err.Error())
	}
}

func overlayName(o Overlay) string {
	switch o.(type) {
	case LogoOverlay:
		return "logo"
	case TextOverlay:
		return "text"
	default:
		return "unknown"
	}
}
