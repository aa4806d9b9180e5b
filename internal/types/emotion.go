package types

import (
	"github.com/google/uuid"
	"time"
)

// EmotionCategory is the closed set of emotions the diary understands.
type EmotionCategory string

const (
	EmotionJoy      EmotionCategory = "joy"
	EmotionSadness  EmotionCategory = "sadness"
	EmotionAnger    EmotionCategory = "anger"
	EmotionFear     EmotionCategory = "fear"
	EmotionSurprise EmotionCategory = "surprise"
	EmotionDisgust  EmotionCategory = "disgust"
	EmotionNeutral  EmotionCategory = "neutral"
)

// AllEmotionCategories returns the fixed enumeration order. Every score
// distribution and statistics payload carries exactly these seven, and
// tie-breaks fall back to this order (Neutral last).
func AllEmotionCategories() []EmotionCategory {
	return []EmotionCategory{
		EmotionJoy,
		EmotionSadness,
		EmotionAnger,
		EmotionFear,
		EmotionSurprise,
		EmotionDisgust,
		EmotionNeutral,
	}
}

func (c EmotionCategory) Valid() bool {
	switch c {
	case EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear, EmotionSurprise, EmotionDisgust, EmotionNeutral:
		return true
	}
	return false
}

// EmotionScore is one category's share of a single analysis.
type EmotionScore struct {
	Category EmotionCategory `json:"category"`
	Score    float64         `json:"score"`
	Emoji    string          `json:"emoji"`
}

// EmotionAnalysis is one immutable analysis record. It is created once per
// analyze call and never mutated, only superseded by newer analyses.
type EmotionAnalysis struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          string          `gorm:"index;not null;column:user_id" json:"user_id"`
	Text            string          `gorm:"not null;column:text" json:"text"`
	PrimaryCategory EmotionCategory `gorm:"index;not null;column:primary_category" json:"primary_category"`
	PrimaryScore    float64         `gorm:"not null;column:primary_score" json:"primary_score"`
	PrimaryEmoji    string          `gorm:"column:primary_emoji" json:"primary_emoji"`
	Confidence      float64         `gorm:"not null;column:confidence" json:"confidence"`
	AllScores       []EmotionScore  `gorm:"serializer:json;column:all_scores" json:"all_scores"`
	ModelUsed       string          `gorm:"column:model_used" json:"model_used"`
	AnalyzedAt      time.Time       `gorm:"index;not null;column:analyzed_at" json:"analyzed_at"`
	CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (EmotionAnalysis) TableName() string {
	return "emotion_analysis"
}
