package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
)

// dailyReadLimit bounds the per-day fan-out so a year-long range does not
// open hundreds of store reads at once.
const dailyReadLimit = 8

// Reader is the slice of the persistence collaborator the aggregator needs.
// It only ever reads a user-scoped, date-bounded window and never mutates
// source records.
type Reader interface {
	QueryByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]types.EmotionAnalysis, error)
}

// Aggregator computes distributions, daily summaries, and trends over the
// stored analyses of one user. Stateless; every request recomputes from the
// store.
type Aggregator struct {
	reader Reader
	log    *logger.Logger
}

func NewAggregator(reader Reader, baseLog *logger.Logger) *Aggregator {
	return &Aggregator{reader: reader, log: baseLog.With("component", "Aggregator")}
}

// Statistics aggregates the inclusive [start, end] date window for userID.
// An empty window is a valid zero-filled result, not an error.
func (a *Aggregator) Statistics(ctx context.Context, userID string, start, end time.Time) (*types.StatisticsResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidInput)
	}
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end %s before start %s", apperr.ErrInvalidInput, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	records, err := a.reader.QueryByUserAndRange(ctx, userID, start, EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("%w: query analyses: %v", apperr.ErrStorageFailure, err)
	}
	if len(records) == 0 {
		return emptyResult(start, end), nil
	}

	distribution := Distribution(records)
	result := &types.StatisticsResult{
		PeriodStart:         start,
		PeriodEnd:           end,
		TotalEntries:        len(records),
		EmotionDistribution: distribution,
		DominantCategory:    dominant(distribution),
		EmotionTrend:        map[types.EmotionCategory]float64{},
	}

	summaries, err := a.dailySummaries(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	result.DailySummaries = summaries
	result.EmotionTrend = Trend(summaries)
	return result, nil
}

// dailySummaries re-runs the distribution per calendar day. The per-day
// reads are independent and fan out concurrently; summaries are placed by
// day index so the output stays in date order no matter which read finishes
// first.
func (a *Aggregator) dailySummaries(ctx context.Context, userID string, start, end time.Time) ([]types.DailyEmotionSummary, error) {
	days := DaysBetween(start, end)
	summaries := make([]types.DailyEmotionSummary, days)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(dailyReadLimit)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		g.Go(func() error {
			records, err := a.reader.QueryByUserAndRange(ctx, userID, day, EndOfDay(day))
			if err != nil {
				return fmt.Errorf("%w: query day %s: %v", apperr.ErrStorageFailure, day.Format("2006-01-02"), err)
			}
			summaries[i] = daySummary(day, records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func daySummary(day time.Time, records []types.EmotionAnalysis) types.DailyEmotionSummary {
	s := types.DailyEmotionSummary{
		Date:             day.Format("2006-01-02"),
		DominantCategory: types.EmotionNeutral,
		DominantEmoji:    emotion.Emoji(types.EmotionNeutral),
		EmotionCounts:    []types.EmotionCount{},
		TotalEntries:     len(records),
	}
	if len(records) == 0 {
		return s
	}
	s.EmotionCounts = Distribution(records)
	s.DominantCategory = dominant(s.EmotionCounts)
	s.DominantEmoji = emotion.Emoji(s.DominantCategory)
	return s
}

// Distribution counts records per category, with percentages rounded to two
// decimals, all seven categories present, sorted descending by count.
func Distribution(records []types.EmotionAnalysis) []types.EmotionCount {
	counts := make(map[types.EmotionCategory]int, 7)
	for _, r := range records {
		counts[r.PrimaryCategory]++
	}
	total := len(records)

	out := make([]types.EmotionCount, 0, 7)
	for _, cat := range types.AllEmotionCategories() {
		n := counts[cat]
		var pct float64
		if total > 0 {
			pct = round2(float64(n) / float64(total) * 100)
		}
		out = append(out, types.EmotionCount{
			Category:   cat,
			Count:      n,
			Percentage: pct,
			Emoji:      emotion.Emoji(cat),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func dominant(distribution []types.EmotionCount) types.EmotionCategory {
	if len(distribution) == 0 || distribution[0].Count == 0 {
		return types.EmotionNeutral
	}
	return distribution[0].Category
}

// Trend compares the average daily count of each category between the first
// and second halves of the window. The middle day of an odd-length window
// belongs to the second half. Needs at least two days.
func Trend(summaries []types.DailyEmotionSummary) map[types.EmotionCategory]float64 {
	out := map[types.EmotionCategory]float64{}
	if len(summaries) < 2 {
		return out
	}

	for _, cat := range types.AllEmotionCategories() {
		daily := make([]int, len(summaries))
		for i, s := range summaries {
			for _, ec := range s.EmotionCounts {
				if ec.Category == cat {
					daily[i] += ec.Count
				}
			}
		}

		mid := len(daily) / 2
		var firstAvg, secondAvg float64
		if mid > 0 {
			firstAvg = avg(daily[:mid])
		}
		secondAvg = avg(daily[mid:])

		var change float64
		if firstAvg > 0 {
			change = round2((secondAvg - firstAvg) / firstAvg * 100)
		}
		out[cat] = change
	}
	return out
}

func emptyResult(start, end time.Time) *types.StatisticsResult {
	return &types.StatisticsResult{
		PeriodStart:         start,
		PeriodEnd:           end,
		TotalEntries:        0,
		EmotionDistribution: Distribution(nil),
		DominantCategory:    types.EmotionNeutral,
		DailySummaries:      []types.DailyEmotionSummary{},
		EmotionTrend:        map[types.EmotionCategory]float64{},
	}
}

func avg(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum int
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
