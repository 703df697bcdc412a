// devtrail API: ingests developer activity events over HTTP, appends them to
// a durable JetStream log, processes them into Postgres, parses uploaded
// Claude Code transcripts, and streams live updates over WebSocket.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/config"
	"github.com/devtrail/devtrail/internal/consumer"
	"github.com/devtrail/devtrail/internal/eventlog"
	"github.com/devtrail/devtrail/internal/handler"
	"github.com/devtrail/devtrail/internal/identity"
	"github.com/devtrail/devtrail/internal/natsclient"
	"github.com/devtrail/devtrail/internal/objectstore"
	"github.com/devtrail/devtrail/internal/pipeline"
	"github.com/devtrail/devtrail/internal/processor"
	db "github.com/devtrail/devtrail/internal/repository/db"
	"github.com/devtrail/devtrail/internal/scheduler"
	"github.com/devtrail/devtrail/internal/service"
	"github.com/devtrail/devtrail/internal/summary"
	"github.com/devtrail/devtrail/internal/telemetry"
	"github.com/devtrail/devtrail/internal/ws"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("configuration load failed", zap.Error(err))
	}

	// --- OpenTelemetry ---
	if cfg.OTELEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "devtrail-api", cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
		mp, err := telemetry.InitMeterProvider(context.Background(), "devtrail-api", cfg.OTELEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
		logger.Info("OTel initialized", zap.String("endpoint", cfg.OTELEndpoint))
	}

	// --- Database (OTel-instrumented pool) ---
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to parse DATABASE_URL", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database (OTel-instrumented)")

	querier := db.New(pool)

	// --- NATS JetStream ---
	natsClient, err := natsclient.NewClient(cfg.NatsURL, logger)
	if err != nil {
		logger.Fatal("NATS connection failed", zap.Error(err))
	}
	defer natsClient.Close()
	if err := natsClient.ProvisionStreams(); err != nil {
		logger.Fatal("NATS stream provisioning failed", zap.Error(err))
	}

	// --- Redis (optional read cache) ---
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to parse REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		logger.Info("session detail cache enabled")
	}

	// --- Object store ---
	store, err := objectstore.NewS3Store(context.Background(), cfg.S3)
	if err != nil {
		logger.Fatal("object store init failed", zap.Error(err))
	}
	logger.Info("object store ready", zap.String("bucket", cfg.S3.Bucket))

	// --- Summarizer (optional) ---
	var gen summary.Generator
	if cfg.Summary.Enabled {
		gen = summary.NewAnthropicGenerator(cfg.Summary)
		logger.Info("session summarization enabled", zap.String("model", cfg.Summary.Model))
	}

	// --- Live update hub ---
	// The read service hooks in before anything broadcasts so cached
	// session detail is dropped on every lifecycle transition.
	hub := broadcast.New(logger)
	sessionSvc := service.NewSessionService(querier, rdb, logger)
	hub.OnSessionUpdate(func(id string) {
		sessionSvc.Invalidate(context.Background(), id)
	})

	// --- Transcript pipeline ---
	pipelineCtx, pipelineCancel := context.WithCancel(context.Background())
	defer pipelineCancel()
	pipe := pipeline.New(querier, pipeline.NewMessageStore(pool), store, gen, hub, cfg.Pipeline, logger)
	pipe.Start(pipelineCtx)

	// --- Event processing ---
	resolver := identity.NewResolver(querier, logger)
	proc := processor.New(querier, resolver, processor.NewGitStore(pool), pipe, hub, logger)

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()
	eventConsumer := consumer.New(natsClient, proc, logger)
	if err := eventConsumer.Start(consumerCtx); err != nil {
		logger.Fatal("event consumer start failed", zap.Error(err))
	}

	// --- WebSocket server ---
	wsServer := ws.NewServer(hub, cfg.APIKey, cfg.WS.PingInterval, cfg.WS.PongTimeout, logger)
	wsCtx, wsCancel := context.WithCancel(context.Background())
	defer wsCancel()
	go wsServer.Run(wsCtx)

	// --- Session reaper ---
	reaper := scheduler.NewReaper(querier, hub, logger)
	if err := reaper.Start(); err != nil {
		logger.Fatal("session reaper start failed", zap.Error(err))
	}

	// --- HTTP server ---
	e := echo.New()
	e.HideBanner = true
	e.Use(otelecho.Middleware("devtrail-api"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(handler.BearerAuth(cfg.APIKey))

	handler.NewIngestHandler(eventlog.NewAppender(natsClient, logger), logger).Register(e)
	handler.NewTranscriptHandler(querier, store, pipe, logger).Register(e)
	handler.NewReadHandler(sessionSvc).Register(e)
	handler.NewHealthHandler(pool, natsClient.Conn).Register(e)
	e.GET("/ws", wsServer.Handle)

	go func() {
		logger.Info("devtrail API listening", zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop intake first so in-flight work can drain.
	consumerCancel()
	reaper.Stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Echo shutdown error", zap.Error(err))
	}
	wsCancel()
	pipelineCancel()
	pipe.Wait()

	logger.Info("devtrail API shut down cleanly")
}
