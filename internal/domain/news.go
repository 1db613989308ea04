package domain

// NewsDay is one day of raw collected articles, as written by the upstream
// collector to news/{date}.json. Unlike briefings there is no locale or
// period partitioning.
type NewsDay struct {
	Date     string       `json:"date"`
	Metadata NewsMetadata `json:"metadata"`
	Articles []RawArticle `json:"articles"`
}

// NewsMetadata carries per-day collection statistics.
type NewsMetadata struct {
	CollectedAt           string         `json:"collected_at"`
	TotalArticles         int            `json:"total_articles"`
	Sources               map[string]int `json:"sources"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
}

// RawArticle is a collected article before briefing generation. The shape
// is looser than NewsArticle since the collector stores whatever the feed
// provided.
type RawArticle struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at"`
	Summary     string   `json:"summary,omitempty"`
	Language    string   `json:"language"`
	Keywords    []string `json:"keywords,omitempty"`
}

// NewsIndex is the manifest of available news days.
type NewsIndex struct {
	LastUpdated    string   `json:"last_updated"`
	AvailableDates []string `json:"available_dates"`
}
