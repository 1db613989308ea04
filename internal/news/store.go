// Package news reads the raw collected-news documents. The contract is the
// same two-call index-then-document shape as briefings, but with no locale
// partitioning and no fallback chain.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/climatewatch-kr/briefing-service/internal/adapter/content"
	"github.com/climatewatch-kr/briefing-service/internal/domain"
	"github.com/climatewatch-kr/briefing-service/internal/observability"
)

// Store reads news documents from the content store.
type Store struct {
	fetcher content.Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore creates a news store.
func NewStore(fetcher content.Fetcher, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{fetcher: fetcher, logger: logger, metrics: metrics}
}

// GetIndex fetches the news manifest, or nil if it is missing or broken.
func (s *Store) GetIndex(ctx context.Context) *domain.NewsIndex {
	var idx domain.NewsIndex
	if !s.fetchInto(ctx, "news/index.json", &idx) {
		return nil
	}
	if idx.AvailableDates == nil {
		idx.AvailableDates = []string{}
	}
	return &idx
}

// GetDay fetches one day of collected articles, or nil.
func (s *Store) GetDay(ctx context.Context, date string) *domain.NewsDay {
	var day domain.NewsDay
	if !s.fetchInto(ctx, "news/"+date+".json", &day) {
		return nil
	}
	return &day
}

func (s *Store) fetchInto(ctx context.Context, path string, v any) bool {
	start := time.Now()
	data, err := s.fetcher.Fetch(ctx, path)
	s.metrics.FetchDuration.WithLabelValues("news").Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, content.ErrNotFound) {
			outcome = "missing"
		}
		s.metrics.DocumentFetches.WithLabelValues("news", outcome).Inc()
		s.logger.Debug("news document unavailable", "path", path, "error", err)
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.metrics.DocumentFetches.WithLabelValues("news", "error").Inc()
		s.logger.Warn("news document decode failed", "path", path, "error", err)
		return false
	}

	s.metrics.DocumentFetches.WithLabelValues("news", "success").Inc()
	return true
}
