package stats

import (
	"fmt"
	"strings"

	"github.com/yungbote/voicediary-backend/internal/types"
)

// trendHighlightThreshold is the percent change above which a category
// counts as "trending up" in the highlights.
const trendHighlightThreshold = 10.0

// BuildInsights derives recommendations and highlights from a computed
// statistics result. Pure presentation over the aggregation; no state.
func BuildInsights(stats *types.StatisticsResult) *types.Insights {
	return &types.Insights{
		Summary: types.InsightsSummary{
			DominantCategory: stats.DominantCategory,
			TotalEntries:     stats.TotalEntries,
			Period: fmt.Sprintf("%s ~ %s",
				stats.PeriodStart.Format("2006-01-02"),
				stats.PeriodEnd.Format("2006-01-02")),
		},
		Recommendations: recommendations(stats),
		Highlights:      highlights(stats),
	}
}

func recommendations(stats *types.StatisticsResult) []string {
	recs := []string{}

	switch stats.DominantCategory {
	case types.EmotionSadness:
		recs = append(recs, "슬픈 감정이 많이 나타났어요. 좋아하는 활동이나 친구들과 시간을 보내보는 것은 어떨까요?")
	case types.EmotionAnger:
		recs = append(recs, "화가 나는 일이 많았군요. 깊게 숨을 쉬거나 운동으로 스트레스를 해소해보세요.")
	case types.EmotionJoy:
		recs = append(recs, "기쁜 순간들이 많았네요! 이런 긍정적인 경험들을 더 많이 만들어보세요.")
	case types.EmotionFear:
		recs = append(recs, "불안감이 느껴지는 시기였어요. 작은 목표부터 차근차근 달성해보세요.")
	}

	var positive, negative int
	for _, ec := range stats.EmotionDistribution {
		switch ec.Category {
		case types.EmotionJoy, types.EmotionSurprise:
			positive += ec.Count
		case types.EmotionSadness, types.EmotionAnger, types.EmotionFear:
			negative += ec.Count
		}
	}
	if negative > positive*2 {
		recs = append(recs, "부정적인 감정이 많이 나타났어요. 감정 관리를 위한 활동을 시도해보세요.")
	}
	return recs
}

func highlights(stats *types.StatisticsResult) []string {
	out := []string{}
	if stats.TotalEntries == 0 {
		return out
	}

	top := stats.EmotionDistribution[0]
	out = append(out, fmt.Sprintf("이 기간 동안 가장 많이 느낀 감정은 '%s'이에요 (%.2f%%)", top.Category, top.Percentage))

	active := 0
	for _, ec := range stats.EmotionDistribution {
		if ec.Count > 0 {
			active++
		}
	}
	out = append(out, fmt.Sprintf("총 %d가지 감정을 경험했어요", active))

	rising := []string{}
	for _, cat := range types.AllEmotionCategories() {
		if stats.EmotionTrend[cat] > trendHighlightThreshold {
			rising = append(rising, string(cat))
		}
	}
	if len(rising) > 0 {
		out = append(out, fmt.Sprintf("'%s' 감정이 증가하는 추세예요", strings.Join(rising, ", ")))
	}
	return out
}
