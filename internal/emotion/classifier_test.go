package emotion

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/types"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"collapses whitespace", "오늘   정말\t\t행복해", 1000, "오늘 정말 행복해"},
		{"strips control chars", "hello\x00\x01world", 1000, "helloworld"},
		{"strips delete char", "a\x7fb", 1000, "ab"},
		{"trims edges", "  기쁘다  ", 1000, "기쁘다"},
		{"truncates by runes", "가나다라마", 3, "가나다"},
		{"empty input", "   ", 1000, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in, tt.maxLen)
			if got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Sanitize(got, tt.maxLen); again != got {
				t.Fatalf("Sanitize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())
	for _, in := range []string{"", "   ", "\x00\x01"} {
		if _, err := c.Analyze(in); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("Analyze(%q) error = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestAnalyzeNeutralFallback(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())
	result, err := c.Analyze("abcdefg xyz")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.PrimaryCategory != types.EmotionNeutral {
		t.Fatalf("primary = %s, want neutral", result.PrimaryCategory)
	}
	if result.PrimaryScore != 1.0 {
		t.Fatalf("primary score = %f, want 1.0", result.PrimaryScore)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("confidence = %f, want 1.0", result.Confidence)
	}
}

func TestAnalyzeDistributionShape(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())
	result, err := c.Analyze("오늘 행복했지만 조금 슬펐다")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.AllScores) != 7 {
		t.Fatalf("got %d score entries, want 7", len(result.AllScores))
	}
	var sum float64
	seen := map[types.EmotionCategory]bool{}
	for _, s := range result.AllScores {
		sum += s.Score
		seen[s.Category] = true
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("score sum = %f, want 1.0", sum)
	}
	for _, cat := range types.AllEmotionCategories() {
		if !seen[cat] {
			t.Fatalf("category %s missing from distribution", cat)
		}
	}
	for i := 1; i < len(result.AllScores); i++ {
		if result.AllScores[i].Score > result.AllScores[i-1].Score {
			t.Fatalf("scores not sorted descending at index %d", i)
		}
	}
	if result.ModelUsed != ModelKeywordRule {
		t.Fatalf("model = %q, want %q", result.ModelUsed, ModelKeywordRule)
	}
}

func TestAnalyzeKoreanExamples(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())
	tests := []struct {
		text string
		want types.EmotionCategory
	}{
		{"오늘 정말 행복한 하루였어", types.EmotionJoy},
		{"오늘 너무 힘든 하루였다", types.EmotionSadness},
		{"진짜 화가 나서 참을 수가 없었다", types.EmotionAnger},
		{"내일 발표가 너무 무서워", types.EmotionFear},
		{"갑자기 깜짝 놀랐어", types.EmotionSurprise},
		{"정말 역겨운 광경이었다", types.EmotionDisgust},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result, err := c.Analyze(tt.text)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if result.PrimaryCategory != tt.want {
				t.Fatalf("primary = %s, want %s", result.PrimaryCategory, tt.want)
			}
			if result.PrimaryEmoji == "" {
				t.Fatalf("primary emoji missing")
			}
		})
	}
}

func TestAnalyzeNegation(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())

	// negation right before the keyword wipes out the only signal
	result, err := c.Analyze("안 행복해")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.PrimaryCategory != types.EmotionNeutral {
		t.Fatalf("negated joy: primary = %s, want neutral", result.PrimaryCategory)
	}

	// a negation far away from the keyword does not apply
	far := strings.Repeat("가", 15)
	result, err = c.Analyze("안 " + far + " 행복해")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.PrimaryCategory != types.EmotionJoy {
		t.Fatalf("distant negation: primary = %s, want joy", result.PrimaryCategory)
	}
}

func TestIntensityMultiplier(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"high tier", "너무 기쁘다", 1.5},
		{"medium tier", "조금 기쁘다", 1.2},
		{"low tier", "살짝 기쁘다", 0.8},
		{"no adverb", "기쁘다", 1.0},
		{"high wins over medium", "너무 조금 기쁘다", 1.5},
		{"medium wins over low", "조금 살짝 기쁘다", 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.intensityMultiplier(tt.text); got != tt.want {
				t.Fatalf("intensityMultiplier(%q) = %f, want %f", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeTieBreaks(t *testing.T) {
	var cfg KeywordConfig
	cfg.Keywords = map[types.EmotionCategory][]string{
		types.EmotionJoy:     {"aa"},
		types.EmotionSadness: {"bb"},
		types.EmotionNeutral: {"cc"},
	}
	cfg.MaxTextLen = 1000
	c := NewClassifier(cfg)

	t.Run("enum order breaks exact ties", func(t *testing.T) {
		result, err := c.Analyze("aa bb")
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if result.PrimaryCategory != types.EmotionJoy {
			t.Fatalf("primary = %s, want joy", result.PrimaryCategory)
		}
	})

	t.Run("neutral loses ties", func(t *testing.T) {
		result, err := c.Analyze("cc aa")
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if result.PrimaryCategory != types.EmotionJoy {
			t.Fatalf("primary = %s, want joy", result.PrimaryCategory)
		}
	})
}

func TestAnalyzeConfidence(t *testing.T) {
	var cfg KeywordConfig
	cfg.Keywords = map[types.EmotionCategory][]string{
		types.EmotionJoy:     {"aa", "dd"},
		types.EmotionSadness: {"bb"},
	}
	cfg.MaxTextLen = 1000
	c := NewClassifier(cfg)

	// single signal: confidence is the top score itself
	result, err := c.Analyze("aa")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("single-signal confidence = %f, want 1.0", result.Confidence)
	}

	// two signals: confidence is the top-two gap
	result, err = c.Analyze("aa dd bb")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := 2.0/3.0 - 1.0/3.0
	if math.Abs(result.Confidence-want) > 1e-9 {
		t.Fatalf("confidence = %f, want %f", result.Confidence, want)
	}
}

func TestAnalyzeTruncationDropsLateKeywords(t *testing.T) {
	cfg := DefaultKeywordConfig()
	cfg.MaxTextLen = 10
	c := NewClassifier(cfg)

	result, err := c.Analyze(strings.Repeat("가", 10) + " 행복해")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.PrimaryCategory != types.EmotionNeutral {
		t.Fatalf("primary = %s, want neutral (keyword past limit)", result.PrimaryCategory)
	}
}

func TestAnalyzeMixedKeywordsBothPositive(t *testing.T) {
	c := NewClassifier(DefaultKeywordConfig())
	result, err := c.Analyze("뿌듯하면서도 힘든 하루였다")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	scores := map[types.EmotionCategory]float64{}
	for _, s := range result.AllScores {
		scores[s.Category] = s.Score
	}
	if scores[types.EmotionJoy] <= 0 {
		t.Fatalf("joy score = %f, want > 0", scores[types.EmotionJoy])
	}
	if scores[types.EmotionSadness] <= 0 {
		t.Fatalf("sadness score = %f, want > 0", scores[types.EmotionSadness])
	}
}
