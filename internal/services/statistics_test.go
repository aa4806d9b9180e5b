package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/repos"
	"github.com/yungbote/voicediary-backend/internal/stats"
	"github.com/yungbote/voicediary-backend/internal/types"
)

type fakeStatsCache struct {
	entries map[string]*types.StatisticsResult
	gets    int
	sets    int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: map[string]*types.StatisticsResult{}}
}

func cacheTestKey(userID string, start, end time.Time) string {
	return userID + start.Format("2006-01-02") + end.Format("2006-01-02")
}

func (f *fakeStatsCache) Get(ctx context.Context, userID string, start, end time.Time) (*types.StatisticsResult, bool) {
	f.gets++
	r, ok := f.entries[cacheTestKey(userID, start, end)]
	return r, ok
}

func (f *fakeStatsCache) Set(ctx context.Context, userID string, start, end time.Time, result *types.StatisticsResult) {
	f.sets++
	f.entries[cacheTestKey(userID, start, end)] = result
}

func (f *fakeStatsCache) Close() error { return nil }

func seedAnalyses(t *testing.T, repo *repos.MemoryAnalysisRepo) {
	t.Helper()
	ctx := context.Background()
	entries := []struct {
		cat  types.EmotionCategory
		when time.Time
	}{
		{types.EmotionJoy, time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)},
		{types.EmotionJoy, time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)},
		{types.EmotionSadness, time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)},
	}
	for _, e := range entries {
		if _, err := repo.Save(ctx, &types.EmotionAnalysis{
			UserID:          "u1",
			PrimaryCategory: e.cat,
			AnalyzedAt:      e.when,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func newStatsService(t *testing.T, cache *fakeStatsCache) StatisticsService {
	t.Helper()
	repo := repos.NewMemoryAnalysisRepo()
	seedAnalyses(t, repo)
	aggregator := stats.NewAggregator(repo, testLogger(t))
	if cache == nil {
		return NewStatisticsService(testLogger(t), aggregator, nil)
	}
	return NewStatisticsService(testLogger(t), aggregator, cache)
}

func TestStatisticsExplicitDates(t *testing.T) {
	svc := newStatsService(t, nil)

	result, err := svc.Statistics(context.Background(), StatisticsQuery{
		UserID:    "u1",
		StartDate: "2024-03-11",
		EndDate:   "2024-03-13",
	})
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if result.TotalEntries != 3 {
		t.Fatalf("total = %d, want 3", result.TotalEntries)
	}
	if result.DominantCategory != types.EmotionJoy {
		t.Fatalf("dominant = %s, want joy", result.DominantCategory)
	}
	if len(result.DailySummaries) != 3 {
		t.Fatalf("daily summaries = %d, want 3", len(result.DailySummaries))
	}
}

func TestStatisticsValidation(t *testing.T) {
	svc := newStatsService(t, nil)
	ctx := context.Background()

	if _, err := svc.Statistics(ctx, StatisticsQuery{UserID: ""}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("empty user err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Statistics(ctx, StatisticsQuery{UserID: "u1", StartDate: "11-03-2024"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("bad date err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Statistics(ctx, StatisticsQuery{UserID: "u1", StartDate: "2024-03-13", EndDate: "2024-03-11"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("reversed range err = %v, want ErrInvalidInput", err)
	}
}

func TestStatisticsCacheReadThrough(t *testing.T) {
	cache := newFakeStatsCache()
	svc := newStatsService(t, cache)
	ctx := context.Background()
	q := StatisticsQuery{UserID: "u1", StartDate: "2024-03-11", EndDate: "2024-03-13"}

	first, err := svc.Statistics(ctx, q)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	second, err := svc.Statistics(ctx, q)
	if err != nil {
		t.Fatalf("Statistics (cached): %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache hit still recomputed, sets = %d", cache.sets)
	}
	if second.TotalEntries != first.TotalEntries {
		t.Fatalf("cached result differs: %d vs %d", second.TotalEntries, first.TotalEntries)
	}
}

func TestInsightsDefaultsToMonth(t *testing.T) {
	svc := newStatsService(t, nil)

	insights, err := svc.Insights(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if insights.Summary.Period == "" {
		t.Fatalf("insights period missing")
	}
}

func TestDashboard(t *testing.T) {
	svc := newStatsService(t, nil)

	dashboard, err := svc.Dashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dashboard.UserID != "u1" {
		t.Fatalf("user id = %q", dashboard.UserID)
	}
	if dashboard.WeeklySummary == nil || dashboard.MonthlySummary == nil || dashboard.Insights == nil {
		t.Fatalf("dashboard incomplete: %+v", dashboard)
	}
	if dashboard.GeneratedAt.IsZero() {
		t.Fatalf("generated_at missing")
	}
	weekDays := len(dashboard.WeeklySummary.DailySummaries)
	if weekDays != 0 && weekDays != 7 {
		t.Fatalf("weekly summaries = %d days, want 0 or 7", weekDays)
	}
}
