package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pitstop-servix/internal/audit"
	"github.com/BruksfildServices01/pitstop-servix/internal/config"
	dbpkg "github.com/BruksfildServices01/pitstop-servix/internal/db"
	"github.com/BruksfildServices01/pitstop-servix/internal/handlers"
	"github.com/BruksfildServices01/pitstop-servix/internal/logger"
	"github.com/BruksfildServices01/pitstop-servix/internal/middleware"
	"github.com/BruksfildServices01/pitstop-servix/internal/notify"
	"github.com/BruksfildServices01/pitstop-servix/internal/otelx"
	"github.com/BruksfildServices01/pitstop-servix/internal/photos"
	"github.com/BruksfildServices01/pitstop-servix/internal/routes"
)

const serviceName = "pitstop-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env, serviceName)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.FromConfig(cfg, serviceName))
	if err != nil {
		log.Error("otel setup failed", zap.Error(err))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	db := dbpkg.NewDB(cfg, log)

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	var uploader handlers.PhotoUploader
	if cfg.PhotosEnabled() {
		uploader = photos.NewStore(photos.NewS3Client(cfg), cfg.S3.Bucket, photos.PublicURLFor(cfg))
		log.Info("garage photos enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Recovery(log))

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Audit:  dispatcher,
		Mailer: notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From),
		Photos: uploader,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// closed once in-flight requests have drained
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown incomplete", zap.Error(err))
		}
	}()

	log.Info("api server running", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}

	<-drained
	log.Info("api server stopped")
}
