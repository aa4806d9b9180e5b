package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/repos"
	"github.com/yungbote/voicediary-backend/internal/types"
)

// EmotionService runs the keyword classifier over diary text and persists
// the resulting analysis record.
type EmotionService interface {
	Analyze(ctx context.Context, userID string, text string) (*types.EmotionAnalysis, error)
	History(ctx context.Context, userID string, limit int, category *types.EmotionCategory) ([]types.EmotionAnalysis, error)
}

type emotionService struct {
	log        *logger.Logger
	classifier *emotion.Classifier
	repo       repos.AnalysisRepo

	now func() time.Time
}

func NewEmotionService(baseLog *logger.Logger, classifier *emotion.Classifier, repo repos.AnalysisRepo) EmotionService {
	return &emotionService{
		log:        baseLog.With("service", "EmotionService"),
		classifier: classifier,
		repo:       repo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (es *emotionService) Analyze(ctx context.Context, userID string, text string) (*types.EmotionAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidInput)
	}

	result, err := es.classifier.Analyze(text)
	if err != nil {
		return nil, err
	}
	result.UserID = userID
	result.AnalyzedAt = es.now()

	if _, err := es.repo.Save(ctx, result); err != nil {
		es.log.Error("failed to save analysis", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: save analysis: %v", apperr.ErrStorageFailure, err)
	}

	es.log.Info("emotion analysis complete",
		"user_id", userID,
		"primary", result.PrimaryCategory,
		"confidence", result.Confidence,
	)
	return result, nil
}

func (es *emotionService) History(ctx context.Context, userID string, limit int, category *types.EmotionCategory) ([]types.EmotionAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidInput)
	}
	if category != nil && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown emotion category %q", apperr.ErrInvalidInput, *category)
	}
	if limit <= 0 {
		limit = 10
	}

	records, err := es.repo.ListByUser(ctx, userID, limit, category)
	if err != nil {
		return nil, fmt.Errorf("%w: list analyses: %v", apperr.ErrStorageFailure, err)
	}
	return records, nil
}
