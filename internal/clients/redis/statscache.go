package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
	"github.com/yungbote/voicediary-backend/internal/utils"
)

// StatsCache is a read-through cache for statistics results keyed by
// (user_id, period_start, period_end). Cache failures are soft: a miss or a
// redis error just means the caller recomputes.
type StatsCache interface {
	Get(ctx context.Context, userID string, start, end time.Time) (*types.StatisticsResult, bool)
	Set(ctx context.Context, userID string, start, end time.Time, result *types.StatisticsResult)
	Close() error
}

type statsCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewStatsCache connects from REDIS_ADDR. A missing address is not an
// error; callers treat a nil cache as disabled.
func NewStatsCache(log *logger.Logger) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}
	ttlSec := utils.GetEnvAsInt("STATS_CACHE_TTL_SECONDS", 60, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &statsCache{
		log: log.With("service", "StatsCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSec) * time.Second,
	}, nil
}

func cacheKey(userID string, start, end time.Time) string {
	return fmt.Sprintf("stats:%s:%s:%s", userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (c *statsCache) Get(ctx context.Context, userID string, start, end time.Time) (*types.StatisticsResult, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(userID, start, end)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("stats cache read failed", "error", err)
		}
		return nil, false
	}
	var result types.StatisticsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.Warn("stats cache entry unreadable, dropping", "error", err)
		_ = c.rdb.Del(ctx, cacheKey(userID, start, end)).Err()
		return nil, false
	}
	return &result, true
}

func (c *statsCache) Set(ctx context.Context, userID string, start, end time.Time, result *types.StatisticsResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("stats cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID, start, end), raw, c.ttl).Err(); err != nil {
		c.log.Warn("stats cache write failed", "error", err)
	}
}

func (c *statsCache) Close() error {
	return c.rdb.Close()
}
