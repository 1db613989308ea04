package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climatewatch-kr/briefing-service/internal/adapter/content"
	"github.com/climatewatch-kr/briefing-service/internal/domain"
	"github.com/climatewatch-kr/briefing-service/internal/observability"
)

// stubFetcher serves documents from a path-keyed map, so the fallback
// chain can be exercised without any network.
type stubFetcher struct {
	mu    sync.Mutex
	docs  map[string][]byte
	calls []string
}

func newStubFetcher(docs map[string][]byte) *stubFetcher {
	return &stubFetcher{docs: docs}
}

func (f *stubFetcher) Fetch(_ context.Context, relPath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, relPath)

	data, ok := f.docs[relPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", content.ErrNotFound, relPath)
	}
	return data, nil
}

func briefingJSON(t *testing.T, date string, period domain.Period) []byte {
	t.Helper()
	doc := domain.DailyBriefing{
		Date:        date,
		GeneratedAt: date + "T06:00:00Z",
		Period:      period,
		Briefing: domain.BriefingBody{
			Opening:  "opening",
			Sections: []domain.Section{{Title: "t", Content: "c [1]", Tone: "neutral"}},
			Closing:  "closing",
		},
		Articles: []domain.NewsArticle{{ID: "1", Title: "a"}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func newTestStore(f content.Fetcher) *Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(f, "ko", logger, observability.NewMetricsForTesting())
}

func TestGetIndex_DefaultLocale(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json": []byte(`{"available_dates":["2025-01-02","2025-01-01"],"latest":"2025-01-02"}`),
	})
	s := newTestStore(f)

	idx := s.GetIndex(context.Background(), "")
	require.NotNil(t, idx)
	assert.Equal(t, []string{"2025-01-02", "2025-01-01"}, idx.Dates)
	assert.Equal(t, "2025-01-02", idx.Latest)
}

func TestGetIndex_LocaleFallsBackToDefault(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json": []byte(`{"available_dates":["2025-01-02"]}`),
	})
	s := newTestStore(f)

	idx := s.GetIndex(context.Background(), "en")
	require.NotNil(t, idx)
	assert.Equal(t, []string{"briefing/en/index.json", "briefing/index.json"}, f.calls)
}

func TestGetIndex_MissingEverywhereReturnsNil(t *testing.T) {
	s := newTestStore(newStubFetcher(nil))
	assert.Nil(t, s.GetIndex(context.Background(), "en"))
}

func TestGetIndex_MalformedReturnsNil(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json": []byte(`{"available_dates": "nope"`),
	})
	s := newTestStore(f)
	assert.Nil(t, s.GetIndex(context.Background(), ""))
}

func TestGetBriefing_AfternoonTakesPrecedence(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-02-morning.json":   briefingJSON(t, "2025-01-02", domain.PeriodMorning),
		"briefing/2025-01-02-afternoon.json": briefingJSON(t, "2025-01-02", domain.PeriodAfternoon),
	})
	s := newTestStore(f)

	b := s.GetBriefing(context.Background(), "2025-01-02", "", "")
	require.NotNil(t, b)
	assert.Equal(t, domain.PeriodAfternoon, b.Period)
	assert.Equal(t, []string{"briefing/2025-01-02-afternoon.json"}, f.calls,
		"resolution must stop at the first success")
}

func TestGetBriefing_FallsBackToMorning(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-02-morning.json": briefingJSON(t, "2025-01-02", domain.PeriodMorning),
	})
	s := newTestStore(f)

	b := s.GetBriefing(context.Background(), "2025-01-02", "", "")
	require.NotNil(t, b)
	assert.Equal(t, domain.PeriodMorning, b.Period)
}

func TestGetBriefing_FallsBackToLegacy(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-01.json": briefingJSON(t, "2025-01-01", ""),
	})
	s := newTestStore(f)

	b := s.GetBriefing(context.Background(), "2025-01-01", "", "")
	require.NotNil(t, b)
	assert.Equal(t, "2025-01-01", b.Date)
}

func TestGetBriefing_LocaleFallback(t *testing.T) {
	korean := briefingJSON(t, "2025-01-01", "")
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-01.json": korean,
	})
	s := newTestStore(f)

	// The English document is absent at every step, so the Korean legacy
	// document is served unchanged.
	b := s.GetBriefing(context.Background(), "2025-01-01", "", "en")
	require.NotNil(t, b)

	var want domain.DailyBriefing
	require.NoError(t, json.Unmarshal(korean, &want))
	assert.Equal(t, &want, b)
}

func TestGetBriefing_SuffixedKey(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-02-morning.json":   briefingJSON(t, "2025-01-02", domain.PeriodMorning),
		"briefing/2025-01-02-afternoon.json": briefingJSON(t, "2025-01-02", domain.PeriodAfternoon),
	})
	s := newTestStore(f)

	b := s.GetBriefing(context.Background(), "2025-01-02-morning", "", "")
	require.NotNil(t, b)
	assert.Equal(t, domain.PeriodMorning, b.Period)
}

func TestGetBriefing_ExplicitPeriodDoesNotFallBackToLegacy(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-01.json": briefingJSON(t, "2025-01-01", ""),
	})
	s := newTestStore(f)

	assert.Nil(t, s.GetBriefing(context.Background(), "2025-01-01", domain.PeriodMorning, ""))
}

func TestGetBriefing_NothingExists(t *testing.T) {
	s := newTestStore(newStubFetcher(nil))
	assert.Nil(t, s.GetBriefing(context.Background(), "2025-01-01", "", ""))
}

func TestGetBriefing_MalformedCandidateIsSkipped(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-02-afternoon.json": []byte(`{broken`),
		"briefing/2025-01-02-morning.json":   briefingJSON(t, "2025-01-02", domain.PeriodMorning),
	})
	s := newTestStore(f)

	b := s.GetBriefing(context.Background(), "2025-01-02", "", "")
	require.NotNil(t, b)
	assert.Equal(t, domain.PeriodMorning, b.Period)
}

func TestGetBriefingsByDate_OrdersMorningBeforeAfternoon(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-02-morning.json":   briefingJSON(t, "2025-01-02", domain.PeriodMorning),
		"briefing/2025-01-02-afternoon.json": briefingJSON(t, "2025-01-02", domain.PeriodAfternoon),
	})
	s := newTestStore(f)

	got := s.GetBriefingsByDate(context.Background(), "2025-01-02", "")
	require.Len(t, got, 2)
	assert.Equal(t, domain.PeriodMorning, got[0].Period)
	assert.Equal(t, domain.PeriodAfternoon, got[1].Period)
}

func TestGetBriefingsByDate_LegacyOnly(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-01.json": briefingJSON(t, "2025-01-01", ""),
	})
	s := newTestStore(f)

	got := s.GetBriefingsByDate(context.Background(), "2025-01-01", "")
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-01", got[0].Date)
}

func TestGetBriefingsByDate_PeriodFilesSuppressLegacy(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/2025-01-02-morning.json": briefingJSON(t, "2025-01-02", domain.PeriodMorning),
		"briefing/2025-01-02.json":         briefingJSON(t, "2025-01-02", ""),
	})
	s := newTestStore(f)

	got := s.GetBriefingsByDate(context.Background(), "2025-01-02", "")
	require.Len(t, got, 1)
	assert.Equal(t, domain.PeriodMorning, got[0].Period)
}

func TestGetBriefingsByDate_Empty(t *testing.T) {
	s := newTestStore(newStubFetcher(nil))

	got := s.GetBriefingsByDate(context.Background(), "2025-01-01", "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetRecentBriefings_FollowsIndexOrder(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json":                []byte(`{"available_dates":["2025-01-03","2025-01-02","2025-01-01"]}`),
		"briefing/2025-01-03-afternoon.json": briefingJSON(t, "2025-01-03", domain.PeriodAfternoon),
		"briefing/2025-01-02-morning.json":   briefingJSON(t, "2025-01-02", domain.PeriodMorning),
		"briefing/2025-01-01.json":           briefingJSON(t, "2025-01-01", ""),
	})
	s := newTestStore(f)

	got := s.GetRecentBriefings(context.Background(), 3, "")
	require.Len(t, got, 3)
	assert.Equal(t, "2025-01-03", got[0].Date)
	assert.Equal(t, "2025-01-02", got[1].Date)
	assert.Equal(t, "2025-01-01", got[2].Date)
}

func TestGetRecentBriefings_DropsUnresolvableDates(t *testing.T) {
	// 2025-01-01 is indexed but has no stored document (the §8-style
	// scenario: only the newest date's morning briefing exists).
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json":              []byte(`{"available_dates":["2025-01-02","2025-01-01"],"latest":"2025-01-02"}`),
		"briefing/2025-01-02-morning.json": briefingJSON(t, "2025-01-02", domain.PeriodMorning),
	})
	s := newTestStore(f)

	got := s.GetRecentBriefings(context.Background(), 7, "")
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-02", got[0].Date)
}

func TestGetRecentBriefings_ClampsToIndexLength(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json":      []byte(`{"available_dates":["2025-01-01"]}`),
		"briefing/2025-01-01.json": briefingJSON(t, "2025-01-01", ""),
	})
	s := newTestStore(f)

	got := s.GetRecentBriefings(context.Background(), 90, "")
	assert.Len(t, got, 1)
}

func TestGetRecentBriefings_TakesOnlyRequestedDays(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json":      []byte(`{"available_dates":["2025-01-03","2025-01-02","2025-01-01"]}`),
		"briefing/2025-01-03.json": briefingJSON(t, "2025-01-03", ""),
		"briefing/2025-01-02.json": briefingJSON(t, "2025-01-02", ""),
		"briefing/2025-01-01.json": briefingJSON(t, "2025-01-01", ""),
	})
	s := newTestStore(f)

	got := s.GetRecentBriefings(context.Background(), 2, "")
	require.Len(t, got, 2)
	assert.Equal(t, "2025-01-03", got[0].Date)
	assert.Equal(t, "2025-01-02", got[1].Date)
}

func TestGetRecentBriefings_NoIndex(t *testing.T) {
	s := newTestStore(newStubFetcher(nil))

	got := s.GetRecentBriefings(context.Background(), 7, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAccessors_Idempotent(t *testing.T) {
	f := newStubFetcher(map[string][]byte{
		"briefing/index.json":              []byte(`{"available_dates":["2025-01-02"]}`),
		"briefing/2025-01-02-morning.json": briefingJSON(t, "2025-01-02", domain.PeriodMorning),
	})
	s := newTestStore(f)
	ctx := context.Background()

	assert.Equal(t, s.GetIndex(ctx, ""), s.GetIndex(ctx, ""))
	assert.Equal(t, s.GetBriefing(ctx, "2025-01-02", "", ""), s.GetBriefing(ctx, "2025-01-02", "", ""))
	assert.Equal(t, s.GetBriefingsByDate(ctx, "2025-01-02", ""), s.GetBriefingsByDate(ctx, "2025-01-02", ""))
}

func TestCheckReadiness(t *testing.T) {
	f := newStubFetcher(nil)
	s := newTestStore(f)

	require.Error(t, s.CheckReadiness(context.Background()))

	f.mu.Lock()
	f.docs = map[string][]byte{"briefing/index.json": []byte(`{"available_dates":[]}`)}
	f.mu.Unlock()

	require.NoError(t, s.CheckReadiness(context.Background()))
	// Once ready, stays ready without further fetches.
	require.NoError(t, s.CheckReadiness(context.Background()))
}
