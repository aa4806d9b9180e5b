package types

import (
	"github.com/google/uuid"
	"time"
)

// DiaryEntry is one diary text, usually produced from a voice recording.
type DiaryEntry struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       string     `gorm:"index;not null;column:user_id" json:"user_id"`
	Content      string     `gorm:"not null;column:content" json:"content"`
	Processed    bool       `gorm:"not null;default:false;column:processed" json:"processed"`
	AnalysisID   *uuid.UUID `gorm:"type:uuid;column:analysis_id" json:"analysis_id,omitempty"`
	FeedbackText string     `gorm:"column:feedback_text" json:"feedback_text,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (DiaryEntry) TableName() string {
	return "diary_entry"
}

// FeedbackResult is the empathetic feedback produced for one diary text.
type FeedbackResult struct {
	FeedbackText string          `json:"feedback_text"`
	Style        string          `json:"style"`
	Emotion      EmotionCategory `json:"emotion"`
	Confidence   float64         `json:"confidence"`
	ModelUsed    string          `json:"model_used"`
}

// TranscriptResult is the speech-to-text output for one uploaded recording.
type TranscriptResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Provider   string  `json:"provider"`
}

// ComicPanel is one parsed panel of a generated comic script.
type ComicPanel struct {
	Scene    string `json:"scene"`
	Dialogue string `json:"dialogue"`
}

// ComicResult carries the rendered comic strip and the script it was drawn from.
type ComicResult struct {
	ImagePNG []byte       `json:"-"`
	Panels   []ComicPanel `json:"panels"`
}
