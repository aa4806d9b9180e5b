package repos

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
	"gorm.io/gorm"
)

type DiaryRepo interface {
	Create(ctx context.Context, entry *types.DiaryEntry) (*types.DiaryEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.DiaryEntry, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, analysisID uuid.UUID, feedbackText string) error
}

type diaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiaryRepo(db *gorm.DB, baseLog *logger.Logger) DiaryRepo {
	repoLog := baseLog.With("repo", "DiaryRepo")
	return &diaryRepo{db: db, log: repoLog}
}

func (dr *diaryRepo) Create(ctx context.Context, entry *types.DiaryEntry) (*types.DiaryEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := dr.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (dr *diaryRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.DiaryEntry, error) {
	var entry types.DiaryEntry
	if err := dr.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (dr *diaryRepo) MarkProcessed(ctx context.Context, id uuid.UUID, analysisID uuid.UUID, feedbackText string) error {
	res := dr.db.WithContext(ctx).
		Model(&types.DiaryEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"processed":     true,
			"analysis_id":   analysisID,
			"feedback_text": feedbackText,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
