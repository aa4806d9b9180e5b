package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/types"
)

type fakeOpenAI struct {
	chatOut string
	chatErr error
	imgOut  []byte
	imgErr  error

	lastSystem string
	lastUser   string
}

func (f *fakeOpenAI) ChatText(ctx context.Context, system string, user string, temperature float64) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.chatOut, f.chatErr
}

func (f *fakeOpenAI) GenerateImage(ctx context.Context, prompt string, size string) ([]byte, error) {
	return f.imgOut, f.imgErr
}

func TestFeedbackFallbackWithoutClient(t *testing.T) {
	svc := NewFeedbackService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), nil)

	result, err := svc.Generate(context.Background(), "오늘 정말 행복한 하루였어", StyleFeeling)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ModelUsed != ModelFallbackFeedback {
		t.Fatalf("model = %q, want fallback", result.ModelUsed)
	}
	if result.Emotion != types.EmotionJoy {
		t.Fatalf("emotion = %s, want joy", result.Emotion)
	}
	if result.FeedbackText == "" {
		t.Fatalf("fallback text missing")
	}
	if result.Confidence != 0.8 {
		t.Fatalf("confidence = %f, want 0.8", result.Confidence)
	}
}

func TestFeedbackFallbackOnClientError(t *testing.T) {
	fake := &fakeOpenAI{chatErr: errors.New("upstream down")}
	svc := NewFeedbackService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), fake)

	result, err := svc.Generate(context.Background(), "너무 무서워", StyleThinking)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ModelUsed != ModelFallbackFeedback {
		t.Fatalf("model = %q, want fallback after client error", result.ModelUsed)
	}
	if result.Emotion != types.EmotionFear {
		t.Fatalf("emotion = %s, want fear", result.Emotion)
	}
}

func TestFeedbackUsesClient(t *testing.T) {
	fake := &fakeOpenAI{chatOut: "따뜻한 피드백입니다."}
	svc := NewFeedbackService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), fake)

	result, err := svc.Generate(context.Background(), "오늘 정말 행복한 하루였어", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ModelUsed != ModelOpenAIFeedback {
		t.Fatalf("model = %q, want openai", result.ModelUsed)
	}
	if result.Style != StyleFeeling {
		t.Fatalf("style = %q, want default feeling", result.Style)
	}
	if result.FeedbackText != "따뜻한 피드백입니다." {
		t.Fatalf("feedback = %q", result.FeedbackText)
	}
	if !strings.Contains(fake.lastSystem, "심리 상담사") {
		t.Fatalf("system prompt missing counselor framing: %q", fake.lastSystem)
	}
	if !strings.Contains(fake.lastUser, "행복한 하루") {
		t.Fatalf("user prompt missing diary text: %q", fake.lastUser)
	}
}

func TestFeedbackStyleValidation(t *testing.T) {
	svc := NewFeedbackService(testLogger(t), emotion.NewClassifier(emotion.DefaultKeywordConfig()), nil)

	if _, err := svc.Generate(context.Background(), "행복해", "dramatic"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("bad style err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Generate(context.Background(), "  ", StyleFeeling); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("empty text err = %v, want ErrInvalidInput", err)
	}
}

func TestFallbackMessagesCoverAllEmotions(t *testing.T) {
	for _, cat := range types.AllEmotionCategories() {
		for _, style := range []string{StyleThinking, StyleFeeling} {
			if fallbackFeedback(cat, style) == "" {
				t.Fatalf("no fallback for %s/%s", cat, style)
			}
		}
	}
}
