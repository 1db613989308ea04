package domain

// Period is the time-of-day partition of a day's briefings. The legacy flat
// layout stores one briefing per day, represented as PeriodFull.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodFull      Period = "full"
)

// ValidPeriod reports whether p is one of the known period values.
func ValidPeriod(p Period) bool {
	return p == PeriodMorning || p == PeriodAfternoon || p == PeriodFull
}

// BriefingIndex is the normalized briefing manifest. Dates are unique and
// sorted descending (most recent first); Latest is either the explicit value
// from the stored index or the head of Dates.
type BriefingIndex struct {
	Dates          []string                      `json:"dates"`
	Latest         string                        `json:"latest"`
	DatesDetail    map[string][]PeriodDescriptor `json:"dates_detail,omitempty"`
	TotalBriefings int                           `json:"total_briefings,omitempty"`
	LastUpdated    string                        `json:"last_updated,omitempty"`
}

// PeriodDescriptor names one stored briefing file for a date.
type PeriodDescriptor struct {
	Period      Period `json:"period"`
	PeriodLabel string `json:"period_label"`
	File        string `json:"file"`
}

// rawIndex mirrors the stored index document, which uses "available_dates"
// and may omit "latest".
type rawIndex struct {
	AvailableDates []string                      `json:"available_dates"`
	Latest         string                        `json:"latest"`
	DatesDetail    map[string][]PeriodDescriptor `json:"dates_detail"`
	TotalBriefings int                           `json:"total_briefings"`
	LastUpdated    string                        `json:"last_updated"`
	Language       string                        `json:"language"`
}

// DailyBriefing is one AI-generated narrative summary of climate news for a
// date and period, citing a fixed list of source articles.
type DailyBriefing struct {
	Date        string          `json:"date"`
	GeneratedAt string          `json:"generated_at"`
	Period      Period          `json:"period,omitempty"`
	Briefing    BriefingBody    `json:"briefing"`
	Articles    []NewsArticle   `json:"articles"`
	Summary     BriefingSummary `json:"summary"`
}

// BriefingBody is the narrative portion of a briefing.
type BriefingBody struct {
	Opening  string    `json:"opening"`
	Sections []Section `json:"sections"`
	Closing  string    `json:"closing"`
}

// Section is one topical block of the narrative. Content embeds citation
// markers of the form [k] referring to the briefing's article list.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tone    string `json:"tone"` // "urgent", "positive", or "neutral"
}

// NewsArticle is a cited source article. ID is the 1-based citation target
// assigned by the generator.
type NewsArticle struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	OriginalTitle string         `json:"original_title,omitempty"`
	URL           string         `json:"url"`
	Source        string         `json:"source"`
	PublishedAt   string         `json:"published_at"`
	Summary       ArticleSummary `json:"summary"`
	Sentiment     string         `json:"sentiment"` // "positive", "negative", or "neutral"
	Keywords      []string       `json:"keywords"`
	Language      string         `json:"language"`
	Category      string         `json:"category"` // "domestic" or "international"
}

// ArticleSummary is the generator's three-part breakdown of an article.
type ArticleSummary struct {
	Phenomenon string `json:"phenomenon"`
	Cause      string `json:"cause"`
	Outlook    string `json:"outlook"`
}

// BriefingSummary holds aggregate counts over the briefing's articles.
type BriefingSummary struct {
	TotalCount         int            `json:"total_count"`
	DomesticCount      int            `json:"domestic_count"`
	InternationalCount int            `json:"international_count"`
	TopKeywords        []string       `json:"top_keywords"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
}
