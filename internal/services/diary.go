package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/repos"
	"github.com/yungbote/voicediary-backend/internal/types"
)

// ProcessedDiary is the outcome of running one diary entry through emotion
// analysis and feedback generation.
type ProcessedDiary struct {
	Entry    *types.DiaryEntry      `json:"entry"`
	Analysis *types.EmotionAnalysis `json:"analysis"`
	Feedback *types.FeedbackResult  `json:"feedback"`
}

type DiaryService interface {
	Create(ctx context.Context, userID string, content string) (*types.DiaryEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*types.DiaryEntry, error)
	Process(ctx context.Context, id uuid.UUID, style string) (*ProcessedDiary, error)
}

type diaryService struct {
	log      *logger.Logger
	repo     repos.DiaryRepo
	emotions EmotionService
	feedback FeedbackService
}

func NewDiaryService(baseLog *logger.Logger, repo repos.DiaryRepo, emotions EmotionService, feedback FeedbackService) DiaryService {
	return &diaryService{
		log:      baseLog.With("service", "DiaryService"),
		repo:     repo,
		emotions: emotions,
		feedback: feedback,
	}
}

func (ds *diaryService) Create(ctx context.Context, userID string, content string) (*types.DiaryEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", apperr.ErrInvalidInput)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: diary content required", apperr.ErrInvalidInput)
	}

	entry, err := ds.repo.Create(ctx, &types.DiaryEntry{UserID: userID, Content: content})
	if err != nil {
		return nil, fmt.Errorf("%w: create diary entry: %v", apperr.ErrStorageFailure, err)
	}
	ds.log.Info("diary entry created", "id", entry.ID, "user_id", userID)
	return entry, nil
}

func (ds *diaryService) Get(ctx context.Context, id uuid.UUID) (*types.DiaryEntry, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: diary id required", apperr.ErrInvalidInput)
	}
	return ds.repo.GetByID(ctx, id)
}

// Process runs the stored entry through the classifier and feedback
// generator, then marks it processed. Re-processing an already processed
// entry just runs the pipeline again with the current keyword tables.
func (ds *diaryService) Process(ctx context.Context, id uuid.UUID, style string) (*ProcessedDiary, error) {
	entry, err := ds.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis, err := ds.emotions.Analyze(ctx, entry.UserID, entry.Content)
	if err != nil {
		return nil, err
	}

	feedback, err := ds.feedback.Generate(ctx, entry.Content, style)
	if err != nil {
		return nil, err
	}

	if err := ds.repo.MarkProcessed(ctx, entry.ID, analysis.ID, feedback.FeedbackText); err != nil {
		return nil, err
	}
	entry.Processed = true
	entry.AnalysisID = &analysis.ID
	entry.FeedbackText = feedback.FeedbackText

	ds.log.Info("diary entry processed", "id", entry.ID, "emotion", analysis.PrimaryCategory)
	return &ProcessedDiary{Entry: entry, Analysis: analysis, Feedback: feedback}, nil
}
