package repos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/voicediary-backend/internal/types"
)

// MemoryAnalysisRepo is the in-memory AnalysisRepo double used by tests and
// by local runs without a database. Safe for concurrent use.
type MemoryAnalysisRepo struct {
	mu      sync.RWMutex
	records []types.EmotionAnalysis
}

func NewMemoryAnalysisRepo() *MemoryAnalysisRepo {
	return &MemoryAnalysisRepo{}
}

func (m *MemoryAnalysisRepo) Save(_ context.Context, record *types.EmotionAnalysis) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records = append(m.records, *record)
	return record.ID, nil
}

func (m *MemoryAnalysisRepo) QueryByUserAndRange(_ context.Context, userID string, from, to time.Time) ([]types.EmotionAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []types.EmotionAnalysis{}
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if r.AnalyzedAt.Before(from) || r.AnalyzedAt.After(to) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnalyzedAt.Before(out[j].AnalyzedAt) })
	return out, nil
}

func (m *MemoryAnalysisRepo) ListByUser(_ context.Context, userID string, limit int, category *types.EmotionCategory) ([]types.EmotionAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []types.EmotionAnalysis{}
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if category != nil && r.PrimaryCategory != *category {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnalyzedAt.After(out[j].AnalyzedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
