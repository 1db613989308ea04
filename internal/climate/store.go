// Package climate aggregates the five climate indicator files into one
// response object. There is no accessor chain and no fallback: whatever
// subset of files exists is returned, with explicit nulls for the rest.
package climate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/climatewatch-kr/briefing-service/internal/adapter/content"
	"github.com/climatewatch-kr/briefing-service/internal/observability"
)

// Datasets lists the indicator files under climate/, keyed by response
// field name.
var Datasets = []string{"temperature", "co2", "arctic_ice", "sea_level", "enso"}

// Store reads climate indicator documents from the content store.
type Store struct {
	fetcher content.Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore creates a climate store.
func NewStore(fetcher content.Fetcher, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{fetcher: fetcher, logger: logger, metrics: metrics}
}

// Aggregate fetches every dataset concurrently and returns a map from
// dataset name to its raw JSON document, or JSON null for datasets that
// could not be fetched. The aggregate itself never fails.
func (s *Store) Aggregate(ctx context.Context) map[string]json.RawMessage {
	results := make([]json.RawMessage, len(Datasets))

	var wg sync.WaitGroup
	for i, name := range Datasets {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.fetchDataset(ctx, name)
		}()
	}
	wg.Wait()

	out := make(map[string]json.RawMessage, len(Datasets))
	for i, name := range Datasets {
		out[name] = results[i]
	}
	return out
}

func (s *Store) fetchDataset(ctx context.Context, name string) json.RawMessage {
	start := time.Now()
	data, err := s.fetcher.Fetch(ctx, "climate/"+name+".json")
	s.metrics.FetchDuration.WithLabelValues("climate").Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.DocumentFetches.WithLabelValues("climate", outcome(err)).Inc()
		s.logger.Debug("climate dataset unavailable", "dataset", name, "error", err)
		return json.RawMessage("null")
	}
	if !json.Valid(data) {
		s.metrics.DocumentFetches.WithLabelValues("climate", "error").Inc()
		s.logger.Warn("climate dataset is not valid JSON", "dataset", name)
		return json.RawMessage("null")
	}

	s.metrics.DocumentFetches.WithLabelValues("climate", "success").Inc()
	return json.RawMessage(data)
}

func outcome(err error) string {
	if errors.Is(err, content.ErrNotFound) {
		return "missing"
	}
	return "error"
}
