package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/devnzo/finance-calc/internal/cache"
	"github.com/devnzo/finance-calc/internal/config"
	"github.com/devnzo/finance-calc/internal/contact"
	"github.com/devnzo/finance-calc/internal/logger"
	"github.com/devnzo/finance-calc/internal/server"
	"github.com/devnzo/finance-calc/internal/tools"
	"github.com/devnzo/finance-calc/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warnw("tracing shutdown failed", "error", err)
		}
	}()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			EnableTracing:    true,
			TracesSampleRate: cfg.SentrySampleRate,
		}); err != nil {
			log.Errorw("sentry initialization failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	store, closeStore := resultCache(ctx, cfg)
	defer closeStore()

	var mailer contact.Mailer = contact.LogMailer{}
	if cfg.MailAPIKey != "" {
		mailer = contact.NewHTTPMailer(nil, cfg.MailAPIURL, cfg.MailAPIKey)
	} else {
		log.Warn("MAIL_API_KEY not set, contact messages are logged only")
	}
	contactSvc := contact.NewService(mailer, cfg.ContactFrom, cfg.ContactTo)

	srv := server.New(cfg, tools.Registry(cfg, tracer, store), contactSvc)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server exited")
	return nil
}

// resultCache uses Redis when REDIS_ADDR is set and reachable, and the in-process cache otherwise
func resultCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	log := logger.Get()
	if cfg.RedisAddr != "" {
		r := cache.NewRedis(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := r.Ping(pingCtx)
		if err == nil {
			log.Infow("result cache: redis", "addr", cfg.RedisAddr)
			return r, func() { _ = r.Close() }
		}
		log.Warnw("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = r.Close()
	}
	return cache.NewMemory(10_000), func() {}
}
