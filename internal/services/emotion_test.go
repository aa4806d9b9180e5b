package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/repos"
	"github.com/yungbote/voicediary-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestEmotionServiceAnalyze(t *testing.T) {
	repo := repos.NewMemoryAnalysisRepo()
	svc := NewEmotionService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), repo)
	ctx := context.Background()

	result, err := svc.Analyze(ctx, "u1", "오늘 정말 행복한 하루였어")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.PrimaryCategory != types.EmotionJoy {
		t.Fatalf("primary = %s, want joy", result.PrimaryCategory)
	}
	if result.UserID != "u1" {
		t.Fatalf("user id not stamped: %q", result.UserID)
	}
	if result.AnalyzedAt.IsZero() {
		t.Fatalf("analyzed_at not stamped")
	}

	// record must be persisted and readable back
	stored, err := repo.QueryByUserAndRange(ctx, "u1", result.AnalyzedAt.Add(-time.Minute), result.AnalyzedAt.Add(time.Minute))
	if err != nil {
		t.Fatalf("query back: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d records, want 1", len(stored))
	}
}

func TestEmotionServiceAnalyzeValidation(t *testing.T) {
	svc := NewEmotionService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), repos.NewMemoryAnalysisRepo())
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "", "행복해"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("empty user err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Analyze(ctx, "u1", "   "); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("empty text err = %v, want ErrInvalidInput", err)
	}
}

func TestEmotionServiceHistory(t *testing.T) {
	repo := repos.NewMemoryAnalysisRepo()
	svc := NewEmotionService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), repo)
	ctx := context.Background()

	texts := []string{
		"정말 행복한 하루였어",
		"너무 슬퍼서 눈물이 났어",
		"진짜 화가 나는 하루였어",
	}
	for _, text := range texts {
		if _, err := svc.Analyze(ctx, "u1", text); err != nil {
			t.Fatalf("Analyze(%q): %v", text, err)
		}
	}

	history, err := svc.History(ctx, "u1", 0, nil)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history = %d records, want 3", len(history))
	}

	cat := types.EmotionSadness
	history, err = svc.History(ctx, "u1", 10, &cat)
	if err != nil {
		t.Fatalf("History filtered: %v", err)
	}
	if len(history) != 1 || history[0].PrimaryCategory != types.EmotionSadness {
		t.Fatalf("filtered history = %+v", history)
	}

	bad := types.EmotionCategory("melancholy")
	if _, err := svc.History(ctx, "u1", 10, &bad); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("bad category err = %v, want ErrInvalidInput", err)
	}
}
