package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/services"
	"github.com/yungbote/voicediary-backend/internal/types"
)

type EmotionHandler struct {
	emotions services.EmotionService
}

func NewEmotionHandler(emotions services.EmotionService) *EmotionHandler {
	return &EmotionHandler{emotions: emotions}
}

func (eh *EmotionHandler) Analyze(c *gin.Context) {
	var req struct {
		Text   string `json:"text"`
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid request body", apperr.ErrInvalidInput))
		return
	}
	result, err := eh.emotions.Analyze(c.Request.Context(), req.UserID, req.Text)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}

func (eh *EmotionHandler) History(c *gin.Context) {
	userID := c.Param("user_id")

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondAppError(c, fmt.Errorf("%w: limit must be a positive integer", apperr.ErrInvalidInput))
			return
		}
		limit = n
	}

	var category *types.EmotionCategory
	if raw := c.Query("emotion"); raw != "" {
		cat := types.EmotionCategory(raw)
		category = &cat
	}

	records, err := eh.emotions.History(c.Request.Context(), userID, limit, category)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"user_id": userID,
		"count":   len(records),
		"history": records,
	})
}

// Mapping exposes the emotion metadata table used by clients to render
// emoji, colors and descriptions.
func (eh *EmotionHandler) Mapping(c *gin.Context) {
	RespondOK(c, gin.H{"emotions": emotion.AllMappings()})
}
