package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vidmark/internal/httpapi/handlers"
	"vidmark/internal/pkg/logger"
	"vidmark/internal/pkg/middleware"
)

type Deps struct {
	Processor handlers.JobProcessor
	Log       *logger.Logger
	// Gatherer backs GET /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))

	h := handlers.New(handlers.Deps{
		Processor: d.Processor,
		Log:       log,
	})

	r.Get("/health", h.Health)
	r.Post("/process-video", middleware.WrapHandler(log, h.ProcessVideo))

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
