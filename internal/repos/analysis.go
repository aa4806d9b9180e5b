package repos

import (
	"context"
	"github.com/google/uuid"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
	"gorm.io/gorm"
	"time"
)

// AnalysisRepo is the persistence collaborator for emotion analyses: save
// one record, read a user-scoped time window back in analyzed_at order.
// An empty window returns an empty slice, never an error.
type AnalysisRepo interface {
	Save(ctx context.Context, record *types.EmotionAnalysis) (uuid.UUID, error)
	QueryByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]types.EmotionAnalysis, error)
	ListByUser(ctx context.Context, userID string, limit int, category *types.EmotionCategory) ([]types.EmotionAnalysis, error)
}

type analysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisRepo {
	repoLog := baseLog.With("repo", "AnalysisRepo")
	return &analysisRepo{db: db, log: repoLog}
}

func (ar *analysisRepo) Save(ctx context.Context, record *types.EmotionAnalysis) (uuid.UUID, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := ar.db.WithContext(ctx).Create(record).Error; err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

func (ar *analysisRepo) QueryByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]types.EmotionAnalysis, error) {
	var results []types.EmotionAnalysis
	if err := ar.db.WithContext(ctx).
		Where("user_id = ? AND analyzed_at >= ? AND analyzed_at <= ?", userID, from, to).
		Order("analyzed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *analysisRepo) ListByUser(ctx context.Context, userID string, limit int, category *types.EmotionCategory) ([]types.EmotionAnalysis, error) {
	q := ar.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("analyzed_at DESC")
	if category != nil {
		q = q.Where("primary_category = ?", *category)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []types.EmotionAnalysis
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
