package emotion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/types"
)

// negationWindow is how many characters (runes) before a matched keyword a
// negation marker still applies.
const negationWindow = 10

const ModelKeywordRule = "keyword-rule"

// Classifier maps free text to a distribution over the seven emotion
// categories using weighted substring matching. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	cfg KeywordConfig
}

func NewClassifier(cfg KeywordConfig) *Classifier {
	if cfg.MaxTextLen <= 0 {
		cfg.MaxTextLen = DefaultKeywordConfig().MaxTextLen
	}
	return &Classifier{cfg: cfg}
}

// Sanitize strips ASCII control characters (standard whitespace excepted),
// collapses whitespace runs to single spaces, trims, and truncates to maxLen
// runes. Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(text string, maxLen int) string {
	var b strings.Builder
	for _, r := range text {
		if r == 0x7F {
			continue
		}
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if maxLen > 0 {
		if runes := []rune(out); len(runes) > maxLen {
			out = strings.TrimRight(string(runes[:maxLen]), " ")
		}
	}
	return out
}

// Analyze scores text against the keyword tables and returns a full analysis
// with all seven categories present, sorted descending by score. The caller
// owns persistence and stamps UserID/AnalyzedAt.
func (c *Classifier) Analyze(text string) (*types.EmotionAnalysis, error) {
	sanitized := Sanitize(text, c.cfg.MaxTextLen)
	if sanitized == "" {
		return nil, fmt.Errorf("%w: text is empty after sanitization", apperr.ErrInvalidInput)
	}

	lower := strings.ToLower(sanitized)
	runes := []rune(lower)
	mult := c.intensityMultiplier(lower)

	raw := make(map[types.EmotionCategory]float64, 7)
	matches := make(map[types.EmotionCategory]int, 7)

	for cat, words := range c.cfg.Keywords {
		var score float64
		for _, kw := range words {
			kwRunes := []rune(strings.ToLower(kw))
			pos := indexRunes(runes, kwRunes)
			if pos < 0 {
				continue
			}
			matches[cat]++
			contribution := 1.0 * mult
			if c.negatedBefore(runes, pos) {
				contribution *= -0.5
			}
			score += contribution
		}
		if score < 0 {
			score = 0
		}
		raw[cat] = score
	}

	var sum float64
	for _, v := range raw {
		sum += v
	}

	normalized := make(map[types.EmotionCategory]float64, 7)
	if sum > 0 {
		for cat, v := range raw {
			normalized[cat] = v / sum
		}
	} else {
		// No keyword signal at all: the whole mass goes to Neutral.
		normalized[types.EmotionNeutral] = 1.0
	}

	order := categoryRank()
	all := make([]types.EmotionScore, 0, 7)
	for _, cat := range types.AllEmotionCategories() {
		all = append(all, types.EmotionScore{
			Category: cat,
			Score:    normalized[cat],
			Emoji:    Emoji(cat),
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if ma, mb := matches[a.Category], matches[b.Category]; ma != mb {
			return ma > mb
		}
		// Neutral loses every remaining tie; otherwise enumeration order.
		if (a.Category == types.EmotionNeutral) != (b.Category == types.EmotionNeutral) {
			return b.Category == types.EmotionNeutral
		}
		return order[a.Category] < order[b.Category]
	})

	primary := all[0]
	confidence := primary.Score
	nonZero := 0
	for _, s := range all {
		if s.Score > 0 {
			nonZero++
		}
	}
	if nonZero >= 2 {
		confidence = all[0].Score - all[1].Score
	}

	return &types.EmotionAnalysis{
		Text:            sanitized,
		PrimaryCategory: primary.Category,
		PrimaryScore:    primary.Score,
		PrimaryEmoji:    primary.Emoji,
		Confidence:      confidence,
		AllScores:       all,
		ModelUsed:       ModelKeywordRule,
	}, nil
}

// intensityMultiplier picks the adverb tier for the whole text. When words
// from several tiers appear, the highest tier wins.
func (c *Classifier) intensityMultiplier(lower string) float64 {
	if containsAny(lower, c.cfg.Intensity.High) {
		return 1.5
	}
	if containsAny(lower, c.cfg.Intensity.Medium) {
		return 1.2
	}
	if containsAny(lower, c.cfg.Intensity.Low) {
		return 0.8
	}
	return 1.0
}

// negatedBefore reports whether any negation marker occurs within
// negationWindow runes before position pos.
func (c *Classifier) negatedBefore(runes []rune, pos int) bool {
	for _, neg := range c.cfg.Negations {
		negPos := indexRunes(runes, []rune(strings.ToLower(neg)))
		if negPos >= 0 && negPos < pos && pos-negPos < negationWindow {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// indexRunes finds the first occurrence of needle in haystack, in rune
// positions. The negation window is defined in characters, so byte offsets
// from strings.Index would skew it for Korean text.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

func categoryRank() map[types.EmotionCategory]int {
	out := make(map[types.EmotionCategory]int, 7)
	for i, c := range types.AllEmotionCategories() {
		out[c] = i
	}
	return out
}
