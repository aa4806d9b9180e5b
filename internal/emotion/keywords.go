package emotion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/voicediary-backend/internal/types"
)

// KeywordConfig is the data side of the classifier: per-category keyword
// lists, intensity adverb tiers, and negation markers. Variants are config
// swaps, not code forks.
type KeywordConfig struct {
	Keywords  map[types.EmotionCategory][]string `yaml:"keywords"`
	Intensity struct {
		High   []string `yaml:"high"`
		Medium []string `yaml:"medium"`
		Low    []string `yaml:"low"`
	} `yaml:"intensity"`
	Negations  []string `yaml:"negations"`
	MaxTextLen int      `yaml:"max_text_len"`
}

// DefaultKeywordConfig carries the built-in Korean tables.
func DefaultKeywordConfig() KeywordConfig {
	var cfg KeywordConfig
	cfg.Keywords = map[types.EmotionCategory][]string{
		types.EmotionJoy: {
			"기쁘", "기뻐", "행복", "즐거", "즐거워", "좋아", "기분 좋", "사랑", "사랑해",
			"웃", "신나", "신이", "만족", "만족해", "뿌듯", "뿌듯해", "설레", "감사", "감사해",
			"고마워", "감동", "축하", "성공", "완벽", "최고", "멋져", "멋있", "훌륭", "대단",
			"기대", "희망", "재미", "마음에 들", "행복해", "즐거워", "사랑스러", "예쁘", "짱",
		},
		types.EmotionSadness: {
			"슬프", "슬퍼", "우울", "우울해", "눈물", "울", "힘들", "힘든", "힘들어", "괴로",
			"아프", "아파", "서러", "막막", "절망", "실망", "후회", "그리워", "외로", "쓸쓸",
			"비참", "허탈", "안타까", "마음이 아프", "포기", "못하겠", "지쳐", "피곤",
			"최악", "망했", "혼났", "서글", "처량", "무력", "낙담", "좌절", "침울", "어려워",
		},
		types.EmotionAnger: {
			"화나", "화가", "짜증", "짜증나", "분노", "열받", "열받아", "빡쳐", "빡치",
			"미쳐", "증오", "욕먹", "비난", "어이없", "한심", "멍청", "바보", "화딱지",
			"약오르", "분통", "격분", "격노", "분개", "울분", "분함", "성나", "노여워",
		},
		types.EmotionFear: {
			"무서", "무서워", "두려", "두려워", "걱정", "걱정돼", "불안", "불안해", "염려",
			"떨려", "긴장", "긴장돼", "조심", "위험", "겁", "겁나", "공포", "조마조마",
			"무시무시", "소름", "떨림", "전율",
		},
		types.EmotionSurprise: {
			"놀라", "놀랍", "놀래", "신기", "신기해", "헉", "대박", "세상에", "믿을 수 없",
			"갑자기", "뜻밖", "의외", "깜짝", "와우", "우와", "어머", "허걱", "까무러칠",
		},
		types.EmotionDisgust: {
			"더러", "더러워", "역겨", "역겨워", "혐오", "혐오스러", "구역", "구역질",
			"토할", "지겨", "지겨워", "지긋지긋", "못 견디", "참을 수 없", "끔찍", "끔찍해",
			"불쾌", "불쾌해",
		},
		types.EmotionNeutral: {
			"그냥", "보통", "평범", "일반적", "그럭저럭", "그저", "별로", "글쎄", "모르겠",
			"그런가", "아무래도", "그런 것 같",
		},
	}
	cfg.Intensity.High = []string{"너무", "정말", "진짜", "완전", "엄청", "매우", "극도로", "정말로", "진짜로", "완전히"}
	cfg.Intensity.Medium = []string{"좀", "조금", "약간", "다소", "어느 정도", "그런대로"}
	cfg.Intensity.Low = []string{"살짝", "조금씩", "약간씩", "가볍게", "조금만"}
	cfg.Negations = []string{"안", "않", "못", "아니", "없", "말고", "아님", "절대", "전혀", "결코"}
	cfg.MaxTextLen = 1000
	return cfg
}

// LoadKeywordConfig reads a yaml keyword table and fills gaps from the
// defaults, so a config file may override only the lists it cares about.
func LoadKeywordConfig(path string) (KeywordConfig, error) {
	cfg := DefaultKeywordConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read keyword config: %w", err)
	}

	var loaded KeywordConfig
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return cfg, fmt.Errorf("parse keyword config: %w", err)
	}

	for cat, words := range loaded.Keywords {
		if !cat.Valid() {
			return cfg, fmt.Errorf("unknown emotion category in keyword config: %q", cat)
		}
		if len(words) > 0 {
			cfg.Keywords[cat] = words
		}
	}
	if len(loaded.Intensity.High) > 0 {
		cfg.Intensity.High = loaded.Intensity.High
	}
	if len(loaded.Intensity.Medium) > 0 {
		cfg.Intensity.Medium = loaded.Intensity.Medium
	}
	if len(loaded.Intensity.Low) > 0 {
		cfg.Intensity.Low = loaded.Intensity.Low
	}
	if len(loaded.Negations) > 0 {
		cfg.Negations = loaded.Negations
	}
	if loaded.MaxTextLen > 0 {
		cfg.MaxTextLen = loaded.MaxTextLen
	}
	return cfg, nil
}
