package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/bottoscon/consched/internal/adapters/http/api"
	"github.com/bottoscon/consched/internal/adapters/sheet"
	service "github.com/bottoscon/consched/internal/app"
	"github.com/bottoscon/consched/internal/config"
	"github.com/bottoscon/consched/internal/domain/signup"
	"github.com/bottoscon/consched/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	start, err := cfg.StartTime()
	if err != nil {
		os.Stderr.WriteString("invalid start_date: " + err.Error() + "\n")
		return
	}

	fetcher := sheet.NewFetcher(cfg.SheetURL,
		sheet.WithTimeout(cfg.FetchTimeout()),
		sheet.WithLogger(log.Named("sheet")),
	)
	svc := service.New(
		service.WithFetcher(fetcher),
		service.WithParser(signup.NewParser(
			signup.WithColumns(cfg.Columns),
			signup.WithHeaderRows(cfg.HeaderRows),
		)),
		service.WithTTL(cfg.CacheTTL()),
		service.WithDays(cfg.Days),
		service.WithLogger(log.Named("cache")),
	)

	// Warm the cache so the first reader does not pay for the fetch.
	// Startup continues on failure; the first read will retry.
	if _, err := svc.ForceRefresh(ctx); err != nil {
		log.Warn(ctx, "initial refresh failed", logger.Error(err))
	}

	// Optional scheduled refresh. The cache itself is request-driven;
	// this just exercises the same entry point the manual refresh uses.
	if cfg.RefreshCron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.RefreshCron, func() {
			if _, err := svc.ForceRefresh(context.Background()); err != nil {
				log.Warn(context.Background(), "scheduled refresh failed", logger.Error(err))
			}
		}); err != nil {
			log.Warn(ctx, "invalid refresh_cron; scheduled refresh disabled",
				logger.String("refresh_cron", cfg.RefreshCron), logger.Error(err))
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, start)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
