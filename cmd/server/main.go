package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/climatewatch-kr/briefing-service/internal/adapter/content"
	"github.com/climatewatch-kr/briefing-service/internal/adapter/httpapi"
	"github.com/climatewatch-kr/briefing-service/internal/briefing"
	"github.com/climatewatch-kr/briefing-service/internal/climate"
	"github.com/climatewatch-kr/briefing-service/internal/config"
	"github.com/climatewatch-kr/briefing-service/internal/news"
	"github.com/climatewatch-kr/briefing-service/internal/observability"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Select the content source once at startup: the remote raw-content
	// host in production, the local data directory otherwise.
	var fetcher content.Fetcher
	if cfg.Production() {
		fetcher = content.NewHTTPFetcher(cfg.BaseURL(), cfg.FetchTimeout, logger)
		logger.Info("content source: remote", "base_url", cfg.BaseURL())
	} else {
		fetcher = content.NewFileFetcher(cfg.DataPath)
		logger.Info("content source: local", "data_path", cfg.DataPath)
	}
	fetcher = content.NewCachedFetcher(fetcher, cfg.CacheSize, cfg.RevalidateInterval, clockwork.NewRealClock(), metrics)

	briefingStore := briefing.NewStore(fetcher, cfg.DefaultLocale, logger, metrics)
	climateStore := climate.NewStore(fetcher, logger, metrics)
	newsStore := news.NewStore(fetcher, logger, metrics)

	handler := httpapi.NewHandler(briefingStore, climateStore, newsStore)
	srv := httpapi.NewServer(cfg, handler, briefingStore, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
