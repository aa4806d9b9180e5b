package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/clients/redis"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/stats"
	"github.com/yungbote/voicediary-backend/internal/types"
)

const dateLayout = "2006-01-02"

// StatisticsQuery is the caller-facing statistics request. Explicit dates
// override the named period.
type StatisticsQuery struct {
	UserID    string
	Period    string
	StartDate string
	EndDate   string
}

// Dashboard bundles the weekly and monthly views with insights.
type Dashboard struct {
	UserID         string                  `json:"user_id"`
	WeeklySummary  *types.StatisticsResult `json:"weekly_summary"`
	MonthlySummary *types.StatisticsResult `json:"monthly_summary"`
	Insights       *types.Insights         `json:"insights"`
	GeneratedAt    time.Time               `json:"generated_at"`
}

type StatisticsService interface {
	Statistics(ctx context.Context, q StatisticsQuery) (*types.StatisticsResult, error)
	Insights(ctx context.Context, userID string, period string) (*types.Insights, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
}

type statisticsService struct {
	log        *logger.Logger
	aggregator *stats.Aggregator
	cache      redis.StatsCache

	now func() time.Time
}

// NewStatisticsService wires the aggregator with an optional read-through
// cache. A nil cache disables caching entirely.
func NewStatisticsService(baseLog *logger.Logger, aggregator *stats.Aggregator, cache redis.StatsCache) StatisticsService {
	return &statisticsService{
		log:        baseLog.With("service", "StatisticsService"),
		aggregator: aggregator,
		cache:      cache,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (ss *statisticsService) Statistics(ctx context.Context, q StatisticsQuery) (*types.StatisticsResult, error) {
	userID := strings.TrimSpace(q.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidInput)
	}

	start, err := parseDate(q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(q.EndDate)
	if err != nil {
		return nil, err
	}
	from, to := stats.ResolveRange(stats.Period(q.Period), start, end, ss.now())

	if ss.cache != nil {
		if cached, ok := ss.cache.Get(ctx, userID, from, to); ok {
			ss.log.Debug("statistics served from cache", "user_id", userID)
			return cached, nil
		}
	}

	result, err := ss.aggregator.Statistics(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	if ss.cache != nil {
		ss.cache.Set(ctx, userID, from, to, result)
	}
	return result, nil
}

func (ss *statisticsService) Insights(ctx context.Context, userID string, period string) (*types.Insights, error) {
	if period == "" {
		period = string(stats.PeriodMonth)
	}
	result, err := ss.Statistics(ctx, StatisticsQuery{UserID: userID, Period: period})
	if err != nil {
		return nil, err
	}
	return stats.BuildInsights(result), nil
}

func (ss *statisticsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	weekly, err := ss.Statistics(ctx, StatisticsQuery{UserID: userID, Period: string(stats.PeriodWeek)})
	if err != nil {
		return nil, err
	}
	monthly, err := ss.Statistics(ctx, StatisticsQuery{UserID: userID, Period: string(stats.PeriodMonth)})
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		UserID:         userID,
		WeeklySummary:  weekly,
		MonthlySummary: monthly,
		Insights:       stats.BuildInsights(monthly),
		GeneratedAt:    ss.now(),
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD: %v", apperr.ErrInvalidInput, s, err)
	}
	return &t, nil
}
