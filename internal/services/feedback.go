package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
)

const (
	StyleThinking = "thinking"
	StyleFeeling  = "feeling"

	ModelOpenAIFeedback   = "openai_gpt"
	ModelFallbackFeedback = "fallback"
)

// emotionContexts steers the counselor prompt per detected emotion and style.
var emotionContexts = map[types.EmotionCategory]map[string]string{
	types.EmotionJoy: {
		StyleThinking: "분석적이고 논리적인 관점에서 긍정적인 경험을 성찰하고 향후 발전 방향을 제시",
		StyleFeeling:  "공감하며 따뜻하게 기쁨을 함께 나누고 격려하는 감정적 지지",
	},
	types.EmotionSadness: {
		StyleThinking: "객관적이고 체계적인 분석을 통해 문제 해결 방안을 제시하고 희망적 관점 제공",
		StyleFeeling:  "깊이 공감하며 위로하고 함께 있어주는 따뜻한 감정적 지지",
	},
	types.EmotionAnger: {
		StyleThinking: "분노의 원인을 냉정하게 분석하고 건설적인 해결 방안을 논리적으로 제시",
		StyleFeeling:  "화난 감정을 이해하고 공감하며 마음을 달래주는 감정적 지지",
	},
	types.EmotionFear: {
		StyleThinking: "두려움의 원인을 분석하고 체계적인 대처 방안을 제시하여 안정감 제공",
		StyleFeeling:  "불안한 마음을 이해하고 안심시키며 용기를 주는 감정적 지지",
	},
	types.EmotionSurprise: {
		StyleThinking: "예상치 못한 상황을 분석하고 새로운 기회로 활용할 수 있는 방안 제시",
		StyleFeeling:  "놀라운 상황에 대해 함께 놀라며 새로운 가능성을 응원하는 지지",
	},
	types.EmotionDisgust: {
		StyleThinking: "불쾌한 상황을 객관적으로 분석하고 향후 대응 방안을 논리적으로 제시",
		StyleFeeling:  "불쾌한 감정을 이해하고 공감하며 마음을 정화시켜주는 감정적 지지",
	},
	types.EmotionNeutral: {
		StyleThinking: "현재 상황을 균형있게 분석하고 향후 계획을 체계적으로 제시",
		StyleFeeling:  "평온한 상태를 인정하고 내면의 평화를 격려하는 따뜻한 지지",
	},
}

// fallbackMessages is the canned feedback used when no OpenAI client is
// configured or the call fails.
var fallbackMessages = map[types.EmotionCategory]map[string]string{
	types.EmotionJoy: {
		StyleThinking: "긍정적인 경험을 하셨네요. 이런 좋은 순간들을 통해 더 큰 성장을 이루실 수 있을 것입니다.",
		StyleFeeling:  "정말 기쁜 소식이네요! 당신의 행복한 순간을 함께 나누게 되어 저도 기뻐요.",
	},
	types.EmotionSadness: {
		StyleThinking: "어려운 시간을 보내고 계시는군요. 하지만 이 또한 지나갈 것이며, 더 나은 내일을 위한 경험이 될 것입니다.",
		StyleFeeling:  "힘든 시간을 보내고 계시는군요. 혼자가 아니라는 것을 기억해 주세요. 당신을 응원합니다.",
	},
	types.EmotionAnger: {
		StyleThinking: "분노를 느끼는 상황이군요. 이 감정을 건설적으로 활용하여 문제를 해결해 나가시기 바랍니다.",
		StyleFeeling:  "화가 나는 상황이었군요. 그런 감정을 느끼는 것은 자연스러운 일이에요. 당신의 마음을 이해합니다.",
	},
	types.EmotionFear: {
		StyleThinking: "두려움을 느끼고 계시는군요. 체계적으로 준비하고 대처한다면 충분히 극복할 수 있을 것입니다.",
		StyleFeeling:  "불안한 마음이 드시는군요. 두려움을 느끼는 것은 당연해요. 용기를 내시면 분명 헤쳐나갈 수 있을 거예요.",
	},
	types.EmotionSurprise: {
		StyleThinking: "예상치 못한 일이 일어났군요. 이를 새로운 기회로 받아들이고 활용해 보시기 바랍니다.",
		StyleFeeling:  "놀라운 일이 있었나 보네요! 예상치 못한 변화가 때로는 좋은 기회가 되기도 해요.",
	},
	types.EmotionDisgust: {
		StyleThinking: "불쾌한 상황을 경험하셨군요. 이런 경험을 통해 더 나은 선택을 할 수 있는 지혜를 얻으시기 바랍니다.",
		StyleFeeling:  "불쾌한 감정을 느끼셨군요. 그런 감정을 갖는 것도 자연스러운 일이에요. 당신의 감정을 존중합니다.",
	},
	types.EmotionNeutral: {
		StyleThinking: "균형잡힌 상태를 유지하고 계시는군요. 이런 안정적인 마음가짐을 바탕으로 계획을 세워보시기 바랍니다.",
		StyleFeeling:  "평온한 상태시군요. 마음의 평화를 유지하고 계시는 모습이 보기 좋아요.",
	},
}

type FeedbackService interface {
	Generate(ctx context.Context, text string, style string) (*types.FeedbackResult, error)
}

type feedbackService struct {
	log        *logger.Logger
	classifier *emotion.Classifier
	openai     OpenAIClient
}

// NewFeedbackService builds the feedback generator. A nil openai client is
// allowed and means canned fallback feedback only.
func NewFeedbackService(baseLog *logger.Logger, classifier *emotion.Classifier, openai OpenAIClient) FeedbackService {
	return &feedbackService{
		log:        baseLog.With("service", "FeedbackService"),
		classifier: classifier,
		openai:     openai,
	}
}

func (fs *feedbackService) Generate(ctx context.Context, text string, style string) (*types.FeedbackResult, error) {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = StyleFeeling
	}
	if style != StyleThinking && style != StyleFeeling {
		return nil, fmt.Errorf("%w: unknown feedback style %q", apperr.ErrInvalidInput, style)
	}

	analysis, err := fs.classifier.Analyze(text)
	if err != nil {
		return nil, err
	}
	detected := analysis.PrimaryCategory

	if fs.openai != nil {
		feedback, err := fs.generateOpenAI(ctx, text, detected, style)
		if err == nil {
			fs.log.Info("feedback generated", "emotion", detected, "style", style, "model", ModelOpenAIFeedback)
			return &types.FeedbackResult{
				FeedbackText: feedback,
				Style:        style,
				Emotion:      detected,
				Confidence:   0.95,
				ModelUsed:    ModelOpenAIFeedback,
			}, nil
		}
		fs.log.Warn("openai feedback failed, using fallback", "error", err)
	}

	fs.log.Info("feedback generated", "emotion", detected, "style", style, "model", ModelFallbackFeedback)
	return &types.FeedbackResult{
		FeedbackText: fallbackFeedback(detected, style),
		Style:        style,
		Emotion:      detected,
		Confidence:   0.8,
		ModelUsed:    ModelFallbackFeedback,
	}, nil
}

func (fs *feedbackService) generateOpenAI(ctx context.Context, text string, detected types.EmotionCategory, style string) (string, error) {
	styleCtx, ok := emotionContexts[detected]
	if !ok {
		styleCtx = emotionContexts[types.EmotionNeutral]
	}
	system := fmt.Sprintf(`당신은 전문적이고 공감적인 심리 상담사입니다.
사용자의 감정과 상황을 깊이 이해하고, %s하는 피드백을 제공해주세요.

감정: %s
스타일: %s

피드백 조건:
1. 한국어로 자연스럽게 작성
2. 3-5문장 정도의 적절한 길이
3. 사용자의 감정을 인정하고 공감
4. 건설적이고 도움이 되는 내용
5. 따뜻하고 진심어린 톤`, styleCtx[style], detected, style)

	user := fmt.Sprintf("다음 일기 내용에 대해 피드백을 해주세요:\n\n%s", text)
	out, err := fs.openai.ChatText(ctx, system, user, 0.7)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("empty feedback from model")
	}
	return out, nil
}

func fallbackFeedback(detected types.EmotionCategory, style string) string {
	byStyle, ok := fallbackMessages[detected]
	if !ok {
		byStyle = fallbackMessages[types.EmotionNeutral]
	}
	return byStyle[style]
}
