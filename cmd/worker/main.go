package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"vidmark/internal/adapters/signedurl"
	"vidmark/internal/config"
	"vidmark/internal/httpapi"
	"vidmark/internal/metrics"
	"vidmark/internal/pkg/logger"
	"vidmark/internal/pkg/shutdown"
	"vidmark/internal/repositories"
	"vidmark/internal/storage"
	"vidmark/internal/worker/callback"
	"vidmark/internal/worker/events"
	"vidmark/internal/worker/ffmpeg"
	"vidmark/internal/worker/processor"
)

func main() {
	cfg, cfgErr := config.Load()

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		AddSource:   cfg.Log.AddSource,
		ServiceName: cfg.Log.ServiceName,
	})
	if cfgErr != nil {
		log.LogFatal("invalid configuration", cfgErr)
	}

	log.Info("starting watermark worker",
		"mode", string(cfg.Mode),
		"scratch_dir", cfg.ScratchDir,
	)

	ctx := context.Background()
	shutdownMgr := shutdown.NewManager(log, cfg.ShutdownTimeout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := processor.Deps{
		Config:   cfg,
		Transfer: signedurl.New(cfg.TransferTimeout),
		Runner:   ffmpeg.NewExecRunner(cfg.FFmpegPath),
		Callback: callback.NewHTTPClient(cfg.CallbackTimeout),
		Metrics:  metrics.New(reg),
		Log:      log,
	}

	if cfg.Mode == config.ModeDirect {
		log.Info("initializing storage provider")
		store, err := storage.NewProvider(ctx, cfg.Storage)
		if err != nil {
			log.LogFatal("failed to initialize storage provider", err)
		}
		deps.Store = store
		log.Info("storage provider initialized", "provider", store.Provider())
	}

	if cfg.DatabaseURL != "" {
		log.Info("connecting to PostgreSQL")
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.LogFatal("failed to connect to PostgreSQL", err)
		}
		shutdownMgr.RegisterSimple("postgres", pool.Close)

		if err := pool.Ping(ctx); err != nil {
			log.LogFatal("failed to ping PostgreSQL", err)
		}
		deps.Recorder = repositories.NewVideoRepository(pool)
		log.Info("PostgreSQL connected, status updates enabled")
	}

	if cfg.RedisAddr != "" {
		log.Info("connecting to Redis")
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		shutdownMgr.Register("redis", func(ctx context.Context) error {
			return rdb.Close()
		})

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.LogFatal("failed to ping Redis", err)
		}
		deps.Publisher = events.NewRedisPublisher(rdb, cfg.EventsChannel)
		log.Info("Redis connected, outcome events enabled", "channel", cfg.EventsChannel)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Processor: processor.New(deps),
		Log:       log,
		Gatherer:  reg,
	})

	// No WriteTimeout: a job holds its request open until it finishes.
	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownMgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.LogFatal("HTTP server failed", err)
		}
	}()

	shutdownMgr.Wait(ctx)
}
