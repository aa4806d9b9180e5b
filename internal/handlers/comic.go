package handlers

import (
	"encoding/base64"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/services"
)

type ComicHandler struct {
	comics  services.ComicService
	diaries services.DiaryService
}

func NewComicHandler(comics services.ComicService, diaries services.DiaryService) *ComicHandler {
	return &ComicHandler{comics: comics, diaries: diaries}
}

func (ch *ComicHandler) Generate(c *gin.Context) {
	if ch.comics == nil {
		RespondAppError(c, fmt.Errorf("%w: comic generation is not configured", apperr.ErrStorageFailure))
		return
	}
	var req struct {
		Text    string `json:"text"`
		DiaryID string `json:"diary_id"`
		Gender  string `json:"gender"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid request body", apperr.ErrInvalidInput))
		return
	}
	text := req.Text
	if text == "" && req.DiaryID != "" {
		id, err := uuid.Parse(req.DiaryID)
		if err != nil {
			RespondAppError(c, fmt.Errorf("%w: diary_id must be a uuid", apperr.ErrInvalidInput))
			return
		}
		entry, err := ch.diaries.Get(c.Request.Context(), id)
		if err != nil {
			RespondAppError(c, err)
			return
		}
		text = entry.Content
	}
	result, err := ch.comics.Generate(c.Request.Context(), text, req.Gender)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"panels":    result.Panels,
		"image_png": base64.StdEncoding.EncodeToString(result.ImagePNG),
	})
}
