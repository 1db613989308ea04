// Command genmock writes a sample content tree for local development:
// briefing index and period documents for the last N days (with English
// variants), the five climate indicator files, and news index/day files.
//
// Usage:
//
//	go run ./cmd/genmock -out ./data -days 7
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/climatewatch-kr/briefing-service/internal/domain"
)

func main() {
	out := flag.String("out", "data", "output data directory")
	days := flag.Int("days", 7, "number of past days to generate")
	flag.Parse()

	if err := run(*out, *days); err != nil {
		fmt.Fprintln(os.Stderr, "genmock:", err)
		os.Exit(1)
	}
}

func run(out string, days int) error {
	for _, dir := range []string{"briefing/en", "climate", "news"} {
		if err := os.MkdirAll(filepath.Join(out, dir), 0o755); err != nil {
			return err
		}
	}

	today, err := time.Parse("2006-01-02", domain.Today())
	if err != nil {
		return err
	}

	var dates []string
	detail := map[string][]domain.PeriodDescriptor{}

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		dates = append(dates, date)

		// Most days get both periods; every third day only a morning one,
		// so the fallback chain has something to exercise locally.
		periods := []domain.Period{domain.PeriodMorning, domain.PeriodAfternoon}
		if i%3 == 2 {
			periods = periods[:1]
		}

		for _, p := range periods {
			stem := date + "-" + string(p)
			doc := mockBriefing(date, p)
			if err := writeJSON(filepath.Join(out, "briefing", stem+".json"), doc); err != nil {
				return err
			}
			if err := writeJSON(filepath.Join(out, "briefing", "en", stem+".json"), doc); err != nil {
				return err
			}
			detail[date] = append(detail[date], domain.PeriodDescriptor{
				Period:      p,
				PeriodLabel: label(p),
				File:        stem + ".json",
			})
		}
	}

	total := 0
	for _, d := range detail {
		total += len(d)
	}
	index := map[string]any{
		"last_updated":    time.Now().UTC().Format(time.RFC3339),
		"available_dates": dates,
		"latest":          latestKey(dates, detail),
		"dates_detail":    detail,
		"total_briefings": total,
	}
	if err := writeJSON(filepath.Join(out, "briefing", "index.json"), index); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(out, "briefing", "en", "index.json"), index); err != nil {
		return err
	}

	for _, dataset := range []string{"temperature", "co2", "arctic_ice", "sea_level", "enso"} {
		if err := writeJSON(filepath.Join(out, "climate", dataset+".json"), mockClimate(dataset)); err != nil {
			return err
		}
	}

	newsIndex := domain.NewsIndex{
		LastUpdated:    time.Now().UTC().Format(time.RFC3339),
		AvailableDates: dates,
	}
	if err := writeJSON(filepath.Join(out, "news", "index.json"), newsIndex); err != nil {
		return err
	}
	for _, date := range dates {
		if err := writeJSON(filepath.Join(out, "news", date+".json"), mockNewsDay(date)); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d days of mock data to %s\n", days, out)
	return nil
}

// latestKey mirrors the upstream index builder: the newest date's
// afternoon briefing wins, then morning.
func latestKey(dates []string, detail map[string][]domain.PeriodDescriptor) string {
	if len(dates) == 0 {
		return ""
	}
	newest := dates[0]
	for _, p := range []domain.Period{domain.PeriodAfternoon, domain.PeriodMorning} {
		for _, d := range detail[newest] {
			if d.Period == p {
				return newest + "-" + string(p)
			}
		}
	}
	return newest
}

func label(p domain.Period) string {
	switch p {
	case domain.PeriodMorning:
		return "Morning"
	case domain.PeriodAfternoon:
		return "Afternoon"
	default:
		return "Full"
	}
}

func mockBriefing(date string, p domain.Period) domain.DailyBriefing {
	return domain.DailyBriefing{
		Date:        date,
		GeneratedAt: date + "T06:00:00Z",
		Period:      p,
		Briefing: domain.BriefingBody{
			Opening: "Good day. Here is the climate briefing for " + date + ".",
			Sections: []domain.Section{
				{
					Title:   "🌍 Global temperature trends",
					Content: "Monitoring agencies reported continued warmth this week [1].",
					Tone:    "neutral",
				},
				{
					Title:   "🌱 Policy developments",
					Content: "New renewable targets were announced [2].",
					Tone:    "positive",
				},
			},
			Closing: "That concludes the " + string(p) + " briefing.",
		},
		Articles: []domain.NewsArticle{
			{
				ID:          "1",
				Title:       "Global temperatures remain elevated",
				URL:         "https://example.com/articles/temps",
				Source:      "Example Wire",
				PublishedAt: date + "T02:00:00Z",
				Summary: domain.ArticleSummary{
					Phenomenon: "Sustained above-average global temperatures",
					Cause:      "Long-term greenhouse gas accumulation",
					Outlook:    "Warming trend expected to continue",
				},
				Sentiment: "negative",
				Keywords:  []string{"temperature", "warming"},
				Language:  "en",
				Category:  "international",
			},
			{
				ID:          "2",
				Title:       "재생에너지 목표 상향",
				URL:         "https://example.com/articles/renewables",
				Source:      "예시뉴스",
				PublishedAt: date + "T03:00:00Z",
				Summary: domain.ArticleSummary{
					Phenomenon: "재생에너지 보급 목표 상향 발표",
					Cause:      "탄소중립 정책 강화",
					Outlook:    "투자 확대 전망",
				},
				Sentiment: "positive",
				Keywords:  []string{"재생에너지", "정책"},
				Language:  "ko",
				Category:  "domestic",
			},
		},
		Summary: domain.BriefingSummary{
			TotalCount:         2,
			DomesticCount:      1,
			InternationalCount: 1,
			TopKeywords:        []string{"temperature", "재생에너지"},
			SentimentBreakdown: map[string]int{"positive": 1, "negative": 1, "neutral": 0},
		},
	}
}

func mockClimate(dataset string) map[string]any {
	return map[string]any{
		"dataset":    dataset,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
		"unit":       "mock",
		"records": []map[string]any{
			{"date": "2025-01-01", "value": 1.0},
			{"date": "2025-02-01", "value": 1.1},
		},
	}
}

func mockNewsDay(date string) domain.NewsDay {
	return domain.NewsDay{
		Date: date,
		Metadata: domain.NewsMetadata{
			CollectedAt:           date + "T01:00:00Z",
			TotalArticles:         1,
			Sources:               map[string]int{"korean": 1},
			SentimentDistribution: map[string]int{"neutral": 1},
		},
		Articles: []domain.RawArticle{
			{
				Title:       "기후 관련 소식",
				Link:        "https://example.com/news/" + date,
				Source:      "예시뉴스",
				PublishedAt: date + "T00:30:00Z",
				Language:    "ko",
			},
		},
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
