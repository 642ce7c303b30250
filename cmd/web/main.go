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

	"github.com/BruksfildServices01/pitstop-servix/internal/appointments"
	"github.com/BruksfildServices01/pitstop-servix/internal/backend"
	"github.com/BruksfildServices01/pitstop-servix/internal/config"
	"github.com/BruksfildServices01/pitstop-servix/internal/logger"
	"github.com/BruksfildServices01/pitstop-servix/internal/middleware"
	"github.com/BruksfildServices01/pitstop-servix/internal/otelx"
	"github.com/BruksfildServices01/pitstop-servix/internal/session"
	"github.com/BruksfildServices01/pitstop-servix/internal/timezone"
	"github.com/BruksfildServices01/pitstop-servix/internal/web"
)

const serviceName = "pitstop-web"

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

	// ======================================================
	// SESSIONS
	// ======================================================
	var store session.Store = session.NewMemoryStore(cfg.Web.SessionTTL)
	if cfg.Web.RedisURL != "" {
		rdb, err := session.DialRedis(ctx, cfg.Web.RedisURL)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.Web.SessionTTL)
		log.Info("sessions stored in redis")
	}

	sessions := session.NewManager(store, cfg.Web.SessionSecret, cfg.Web.SessionTTL, cfg.Web.SecureCookie, log)

	registry, err := appointments.NewRegistry(cfg.Web.StoreCacheSize)
	if err != nil {
		log.Fatal("appointment registry", zap.Error(err))
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Recovery(log))

	h := web.NewHandler(web.Deps{
		API:        backend.New(cfg.Web.BackendURL, cfg.Web.BackendTimeout, log),
		Stores:     registry,
		Sessions:   sessions,
		OwnerEmail: cfg.Web.OwnerEmail,
		Location:   timezone.Location(cfg.Timezone),
		Logger:     log,
	})
	if err := h.Register(r); err != nil {
		log.Fatal("register routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.WebAddr(),
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

	log.Info("web server running", zap.String("addr", srv.Addr), zap.String("backend", cfg.Web.BackendURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}

	<-drained
	log.Info("web server stopped")
}
