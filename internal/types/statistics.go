package types

import "time"

// EmotionCount is one row of a distribution: how often a category appeared
// inside a window and what share of the window it took.
type EmotionCount struct {
	Category   EmotionCategory `json:"category"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
	Emoji      string          `json:"emoji"`
}

// DailyEmotionSummary is the per-calendar-day slice of a statistics window.
// Derived on every request, never persisted.
type DailyEmotionSummary struct {
	Date             string          `json:"date"`
	DominantCategory EmotionCategory `json:"dominant_category"`
	DominantEmoji    string          `json:"dominant_emoji"`
	EmotionCounts    []EmotionCount  `json:"emotion_counts"`
	TotalEntries     int             `json:"total_entries"`
}

// StatisticsResult is the full aggregation payload for one user and window.
type StatisticsResult struct {
	PeriodStart         time.Time                   `json:"period_start"`
	PeriodEnd           time.Time                   `json:"period_end"`
	TotalEntries        int                         `json:"total_entries"`
	EmotionDistribution []EmotionCount              `json:"emotion_distribution"`
	DominantCategory    EmotionCategory             `json:"dominant_category"`
	DailySummaries      []DailyEmotionSummary       `json:"daily_summaries"`
	EmotionTrend        map[EmotionCategory]float64 `json:"emotion_trend"`
}

// InsightsSummary is the headline block of an insights payload.
type InsightsSummary struct {
	DominantCategory EmotionCategory `json:"dominant_category"`
	TotalEntries     int             `json:"total_entries"`
	Period           string          `json:"period"`
}

// Insights is a thin presentation layer over StatisticsResult.
type Insights struct {
	Summary         InsightsSummary `json:"summary"`
	Recommendations []string        `json:"recommendations"`
	Highlights      []string        `json:"highlights"`
}
