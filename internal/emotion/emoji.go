package emotion

import (
	"github.com/yungbote/voicediary-backend/internal/types"
)

var emojiByCategory = map[types.EmotionCategory]string{
	types.EmotionJoy:      "😊",
	types.EmotionSadness:  "😢",
	types.EmotionAnger:    "😠",
	types.EmotionFear:     "😨",
	types.EmotionSurprise: "😮",
	types.EmotionDisgust:  "🤢",
	types.EmotionNeutral:  "😐",
}

var emojiVariants = map[types.EmotionCategory][]string{
	types.EmotionJoy:      {"😊", "😄", "😃", "🙂", "😁", "🥰", "😍"},
	types.EmotionSadness:  {"😢", "😭", "😞", "☹️", "😔", "💔", "😿"},
	types.EmotionAnger:    {"😠", "😡", "🤬", "👿", "💢", "🔥", "😤"},
	types.EmotionFear:     {"😨", "😰", "😱", "🙀", "😧", "😦", "😳"},
	types.EmotionSurprise: {"😮", "😯", "😲", "🤯", "😱", "🙄", "👀"},
	types.EmotionDisgust:  {"🤢", "🤮", "😷", "🙊", "😖", "😣", "🤧"},
	types.EmotionNeutral:  {"😐", "😑", "🙃", "😶", "🤐", "😒", "🙂"},
}

var colorByCategory = map[types.EmotionCategory]string{
	types.EmotionJoy:      "#FFD700",
	types.EmotionSadness:  "#4169E1",
	types.EmotionAnger:    "#FF4500",
	types.EmotionFear:     "#800080",
	types.EmotionSurprise: "#FF69B4",
	types.EmotionDisgust:  "#32CD32",
	types.EmotionNeutral:  "#808080",
}

var descriptionByCategory = map[types.EmotionCategory]string{
	types.EmotionJoy:      "기쁨과 행복감을 나타내는 긍정적인 감정",
	types.EmotionSadness:  "슬픔과 우울감을 나타내는 부정적인 감정",
	types.EmotionAnger:    "분노와 짜증을 나타내는 강한 부정적 감정",
	types.EmotionFear:     "두려움과 불안감을 나타내는 감정",
	types.EmotionSurprise: "놀라움과 당황감을 나타내는 감정",
	types.EmotionDisgust:  "혐오와 거부감을 나타내는 부정적 감정",
	types.EmotionNeutral:  "특별한 감정이 없는 중립적 상태",
}

// Emoji returns the canonical emoji for a category.
func Emoji(c types.EmotionCategory) string {
	if e, ok := emojiByCategory[c]; ok {
		return e
	}
	return "❓"
}

// Mapping describes one category's presentation metadata.
type Mapping struct {
	Emoji       string   `json:"emoji"`
	Variants    []string `json:"variants"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
}

// AllMappings returns presentation metadata for every category.
func AllMappings() map[types.EmotionCategory]Mapping {
	out := make(map[types.EmotionCategory]Mapping, len(emojiByCategory))
	for _, c := range types.AllEmotionCategories() {
		out[c] = Mapping{
			Emoji:       Emoji(c),
			Variants:    emojiVariants[c],
			Color:       colorByCategory[c],
			Description: descriptionByCategory[c],
		}
	}
	return out
}
