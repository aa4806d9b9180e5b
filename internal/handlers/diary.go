package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/services"
)

type DiaryHandler struct {
	diaries services.DiaryService
}

func NewDiaryHandler(diaries services.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaries: diaries}
}

func (dh *DiaryHandler) Create(c *gin.Context) {
	var req struct {
		UserID  string `json:"user_id"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid request body", apperr.ErrInvalidInput))
		return
	}
	entry, err := dh.diaries.Create(c.Request.Context(), req.UserID, req.Content)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (dh *DiaryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid diary id", apperr.ErrInvalidInput))
		return
	}
	entry, err := dh.diaries.Get(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (dh *DiaryHandler) Process(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid diary id", apperr.ErrInvalidInput))
		return
	}
	var req struct {
		Style string `json:"style"`
	}
	// body is optional, default style applies
	_ = c.ShouldBindJSON(&req)

	result, err := dh.diaries.Process(c.Request.Context(), id, req.Style)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}
