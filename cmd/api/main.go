package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	"github.com/thanFreecss/celebrity-salon/internal/config"
	dbpkg "github.com/thanFreecss/celebrity-salon/internal/db"
	"github.com/thanFreecss/celebrity-salon/internal/gallery"
	"github.com/thanFreecss/celebrity-salon/internal/notify"
	"github.com/thanFreecss/celebrity-salon/internal/routes"
	"github.com/thanFreecss/celebrity-salon/internal/storage"
	"github.com/thanFreecss/celebrity-salon/internal/telemetry"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

const serviceName = "salon-api"

func main() {
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)

	cfg := config.Load()
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.Env == "prod" && cfg.JWTSecret == "changeme" {
		log.Fatal("JWT_SECRET must be set in prod")
	}
	if !timezone.IsValid(cfg.SalonTimezone) {
		log.WithField("timezone", cfg.SalonTimezone).Warn("unknown SALON_TIMEZONE, falling back to " + timezone.DefaultTimezone)
	}
	log.WithFields(log.Fields{
		"env":       cfg.Env,
		"addr":      cfg.Addr(),
		"timezone":  cfg.SalonTimezone,
		"notify":    cfg.Notify.Provider,
		"s3":        cfg.S3.Enabled(),
		"redis":     cfg.RedisAddr != "",
		"lead_days": cfg.LeaveLeadDays,
	}).Info("configuration loaded")

	shutdownTracing := telemetry.Setup(serviceName, cfg.OTLPEndpoint)

	// --------------------------------------------------
	// Storage
	// --------------------------------------------------
	db := dbpkg.NewDB(cfg)
	if err := dbpkg.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.WithError(err).Fatal("failed to bootstrap admin")
	}

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Store:  gallery.NewObjectStore(cfg),
		Clock:  timezone.SystemClock,
	}

	rdb, err := storage.InitRedis(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, rate limiting disabled")
	}
	if rdb != nil {
		deps.Limiter = rdb
		defer func() { _ = rdb.Close() }()
	}

	// --------------------------------------------------
	// Background workers
	// --------------------------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(db))
	notifier := notify.NewNotifier(notify.NewSender(cfg.Notify), notify.Options{
		MaxAttempts: cfg.Notify.MaxAttempts,
	})
	deps.Audit = auditDispatcher
	deps.Notifier = notifier

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}

	notifier.Close()
	auditDispatcher.Close()
	if err := shutdownTracing(ctx); err != nil {
		log.WithError(err).Warn("tracer shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
