package processor

import (
	"context"

	v0 "vidmark/internal/contracts/callback/v0"
	"vidmark/internal/metrics"
	"vidmark/internal/pkg/errors"
	"vidmark/internal/pkg/logger"
	"vidmark/internal/worker/callback"
)

type Notifier struct {
	client  callback.Client
	metrics *metrics.Metrics
}

func NewNotifier(client callback.Client, m *metrics.Metrics) *Notifier {
	return &Notifier{client: client, metrics: m}
}

// Notify sends the outcome to the job's callback once. A failed delivery is
// logged as a CallbackError and does not change the outcome.
func (n *Notifier) Notify(ctx context.Context, log *logger.Logger, job Job, o Outcome) {
	payload := v0.Payload{
		VideoID:       o.VideoID,
		Status:        o.Status,
		ProcessedPath: o.ProcessedPath,
		ErrorText:     o.ErrorText,
	}

	if err := n.client.Notify(ctx, job.CallbackURL, job.CallbackSecret, payload); err != nil {
		cbErr := errors.Callback(err, "processor.notify", "callback delivery failed")
		log.WithError(cbErr).Error("callback failed",
			"code", string(cbErr.Code),
			"callback_url", job.CallbackURL,
			"status", o.Status,
		)
		n.metrics.CallbackFailed()
		return
	}

	log.Debug("callback delivered", "status", o.Status)
}
