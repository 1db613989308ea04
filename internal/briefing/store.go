// Package briefing resolves daily briefing documents across the three
// storage conventions the content store has accumulated: locale-partitioned,
// period-partitioned, and the legacy flat layout.
//
// Every accessor absorbs its own failures. A missing document, a transport
// error, and malformed JSON all collapse to a nil result; callers render an
// empty state and never distinguish the cause. The cause stays visible in
// logs and the fetch outcome metric.
package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/climatewatch-kr/briefing-service/internal/adapter/content"
	"github.com/climatewatch-kr/briefing-service/internal/domain"
	"github.com/climatewatch-kr/briefing-service/internal/observability"
)

const docType = "briefing"

// Store reads briefing indexes and documents from the content store.
type Store struct {
	fetcher       content.Fetcher
	defaultLocale string
	logger        *slog.Logger
	metrics       *observability.Metrics
	ready         atomic.Bool
}

// NewStore creates a briefing store. defaultLocale is the locale briefings
// are generated in; other locales fall back to it.
func NewStore(fetcher content.Fetcher, defaultLocale string, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		fetcher:       fetcher,
		defaultLocale: defaultLocale,
		logger:        logger,
		metrics:       metrics,
	}
}

// GetIndex fetches the briefing manifest for a locale, falling back to the
// default-locale manifest for non-default locales. Returns nil when no
// manifest could be fetched; never returns an error to the caller.
func (s *Store) GetIndex(ctx context.Context, locale string) *domain.BriefingIndex {
	locale = s.normalizeLocale(locale)

	for _, path := range domain.IndexCandidates(locale) {
		data, err := s.fetch(ctx, "index", path)
		if err != nil {
			continue
		}
		idx, err := domain.DecodeIndex(data)
		if err != nil {
			s.observe("index", err)
			s.logger.Warn("briefing index decode failed", "path", path, "error", err)
			continue
		}
		s.markReady()
		return idx
	}
	return nil
}

// GetBriefing resolves a briefing document for a date key. The key is
// either a bare "YYYY-MM-DD" date or a composite already suffixed with
// "-morning"/"-afternoon"; period may name one explicitly. The candidate
// chain is evaluated in order and the first document that fetches and
// parses wins. Returns nil when every candidate fails.
func (s *Store) GetBriefing(ctx context.Context, dateOrKey string, period domain.Period, locale string) *domain.DailyBriefing {
	locale = s.normalizeLocale(locale)
	return s.resolve(ctx, domain.BriefingCandidates(dateOrKey, period, locale))
}

// GetBriefingsByDate collects every briefing stored for a date, ordered
// morning before afternoon regardless of fetch timing. If neither period
// document exists, the legacy bare-date document is probed and returned
// alone when present. The result is possibly empty, never nil.
func (s *Store) GetBriefingsByDate(ctx context.Context, date, locale string) []*domain.DailyBriefing {
	locale = s.normalizeLocale(locale)

	// The two period probes are independent fetches; only the output order
	// is fixed.
	probes := []domain.Period{domain.PeriodMorning, domain.PeriodAfternoon}
	results := make([]*domain.DailyBriefing, len(probes))

	var wg sync.WaitGroup
	for i, p := range probes {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.resolve(ctx, domain.BriefingCandidates(date, p, locale))
		}()
	}
	wg.Wait()

	out := make([]*domain.DailyBriefing, 0, len(probes))
	for _, b := range results {
		if b != nil {
			out = append(out, b)
		}
	}
	if len(out) > 0 {
		return out
	}

	if legacy := s.resolve(ctx, domain.LegacyCandidates(date, locale)); legacy != nil {
		out = append(out, legacy)
	}
	return out
}

// GetRecentBriefings resolves the briefings for the most recent days listed
// in the index. Dates with no resolvable document are dropped; the index's
// descending date order is preserved. Returns an empty slice when the index
// is missing or empty.
func (s *Store) GetRecentBriefings(ctx context.Context, days int, locale string) []*domain.DailyBriefing {
	locale = s.normalizeLocale(locale)

	idx := s.GetIndex(ctx, locale)
	if idx == nil || len(idx.Dates) == 0 {
		return []*domain.DailyBriefing{}
	}

	if days < 0 {
		days = 0
	}
	dates := idx.Dates
	if days < len(dates) {
		dates = dates[:days]
	}

	// Per-date lookups are independent; fetch them concurrently and keep
	// the index ordering via the results slice.
	results := make([]*domain.DailyBriefing, len(dates))
	var wg sync.WaitGroup
	for i, date := range dates {
		i, date := i, date
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.resolve(ctx, domain.BriefingCandidates(date, "", locale))
		}()
	}
	wg.Wait()

	out := make([]*domain.DailyBriefing, 0, len(results))
	for _, b := range results {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// CheckReadiness reports whether the store has served a briefing index at
// least once. Before the first success it probes the default-locale index
// directly so a freshly started service can become ready.
func (s *Store) CheckReadiness(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	if s.GetIndex(ctx, s.defaultLocale) == nil {
		return errors.New("briefing index is not reachable")
	}
	return nil
}

// resolve walks an ordered candidate list and returns the first document
// that fetches and parses, or nil. Steps are strictly sequential: each
// candidate is tried only after the previous one failed, and no URL is
// retried.
func (s *Store) resolve(ctx context.Context, paths []string) *domain.DailyBriefing {
	for i, path := range paths {
		data, err := s.fetch(ctx, docType, path)
		if err != nil {
			continue
		}

		var doc domain.DailyBriefing
		if err := json.Unmarshal(data, &doc); err != nil {
			s.observe(docType, err)
			s.logger.Warn("briefing decode failed", "path", path, "error", err)
			continue
		}

		s.metrics.FallbackDepth.Observe(float64(i + 1))
		return &doc
	}
	return nil
}

// fetch wraps one content-store read with duration and outcome metrics.
func (s *Store) fetch(ctx context.Context, docType, path string) ([]byte, error) {
	start := time.Now()
	data, err := s.fetcher.Fetch(ctx, path)
	s.metrics.FetchDuration.WithLabelValues(docType).Observe(time.Since(start).Seconds())

	if err != nil {
		s.observe(docType, err)
		if !errors.Is(err, content.ErrNotFound) {
			s.logger.Warn("content fetch failed", "path", path, "error", err)
		} else {
			s.logger.Debug("content not found", "path", path)
		}
		return nil, err
	}

	s.metrics.DocumentFetches.WithLabelValues(docType, "success").Inc()
	return data, nil
}

func (s *Store) observe(docType string, err error) {
	outcome := "error"
	if errors.Is(err, content.ErrNotFound) {
		outcome = "missing"
	}
	s.metrics.DocumentFetches.WithLabelValues(docType, outcome).Inc()
}

func (s *Store) markReady() {
	if s.ready.CompareAndSwap(false, true) {
		s.metrics.StoreReady.Set(1)
	}
}

// normalizeLocale maps an empty locale to the configured default so path
// generation treats both identically.
func (s *Store) normalizeLocale(locale string) string {
	if locale == "" {
		return s.defaultLocale
	}
	return locale
}
