package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/climatewatch-kr/briefing-service/internal/domain"
)

// Recent-list bounds. The index keeps roughly 90 days of briefings, so
// anything above that just wastes fetches.
const (
	defaultRecentDays = 7
	maxRecentDays     = 90
)

// BriefingReader is the briefing accessor surface the handlers need.
type BriefingReader interface {
	GetIndex(ctx context.Context, locale string) *domain.BriefingIndex
	GetBriefing(ctx context.Context, dateOrKey string, period domain.Period, locale string) *domain.DailyBriefing
	GetBriefingsByDate(ctx context.Context, date, locale string) []*domain.DailyBriefing
	GetRecentBriefings(ctx context.Context, days int, locale string) []*domain.DailyBriefing
}

// ClimateReader aggregates the climate indicator documents.
type ClimateReader interface {
	Aggregate(ctx context.Context) map[string]json.RawMessage
}

// NewsReader is the news accessor surface the handlers need.
type NewsReader interface {
	GetIndex(ctx context.Context) *domain.NewsIndex
	GetDay(ctx context.Context, date string) *domain.NewsDay
}

// Handler serves the accessor endpoints.
type Handler struct {
	briefings BriefingReader
	climate   ClimateReader
	news      NewsReader
}

// NewHandler creates the API handler over the three stores.
func NewHandler(briefings BriefingReader, climate ClimateReader, news NewsReader) *Handler {
	return &Handler{briefings: briefings, climate: climate, news: news}
}

// GetIndex serves the briefing manifest for a locale.
func (h *Handler) GetIndex(c *gin.Context) {
	idx := h.briefings.GetIndex(c.Request.Context(), c.Query("locale"))
	if idx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "briefing index not available"})
		return
	}
	c.JSON(http.StatusOK, idx)
}

// GetLatest resolves the index's latest key to its document.
func (h *Handler) GetLatest(c *gin.Context) {
	ctx := c.Request.Context()
	locale := c.Query("locale")

	idx := h.briefings.GetIndex(ctx, locale)
	if idx == nil || idx.Latest == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no briefings available"})
		return
	}

	b := h.briefings.GetBriefing(ctx, idx.Latest, "", locale)
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "briefing not found", "date": idx.Latest})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetRecent serves the most recent briefings, one per date.
func (h *Handler) GetRecent(c *gin.Context) {
	days := queryDays(c)
	briefings := h.briefings.GetRecentBriefings(c.Request.Context(), days, c.Query("locale"))
	c.JSON(http.StatusOK, gin.H{
		"briefings": briefings,
		"count":     len(briefings),
		"days":      days,
	})
}

// GetBriefing resolves one briefing document by date key.
func (h *Handler) GetBriefing(c *gin.Context) {
	date := c.Param("date")

	period := domain.Period(c.Query("period"))
	if period != "" && !domain.ValidPeriod(period) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
		return
	}

	b := h.briefings.GetBriefing(c.Request.Context(), date, period, c.Query("locale"))
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "briefing not found", "date": date})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBriefingsByDate serves every stored briefing for a date, morning
// before afternoon.
func (h *Handler) GetBriefingsByDate(c *gin.Context) {
	date := c.Param("date")
	briefings := h.briefings.GetBriefingsByDate(c.Request.Context(), date, c.Query("locale"))
	c.JSON(http.StatusOK, gin.H{
		"date":      date,
		"briefings": briefings,
		"count":     len(briefings),
	})
}

// GetClimate serves the aggregated climate indicator object.
func (h *Handler) GetClimate(c *gin.Context) {
	c.JSON(http.StatusOK, h.climate.Aggregate(c.Request.Context()))
}

// GetNewsIndex serves the news manifest.
func (h *Handler) GetNewsIndex(c *gin.Context) {
	idx := h.news.GetIndex(c.Request.Context())
	if idx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "news index not available"})
		return
	}
	c.JSON(http.StatusOK, idx)
}

// GetNewsDay serves one day of collected articles.
func (h *Handler) GetNewsDay(c *gin.Context) {
	date := c.Param("date")
	day := h.news.GetDay(c.Request.Context(), date)
	if day == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "news not found", "date": date})
		return
	}
	c.JSON(http.StatusOK, day)
}

func queryDays(c *gin.Context) int {
	s := c.Query("days")
	if s == "" {
		return defaultRecentDays
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return defaultRecentDays
	}
	if n > maxRecentDays {
		return maxRecentDays
	}
	return n
}
