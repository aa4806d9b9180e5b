package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (fh *FeedbackHandler) Generate(c *gin.Context) {
	var req struct {
		Text  string `json:"text"`
		Style string `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid request body", apperr.ErrInvalidInput))
		return
	}
	result, err := fh.feedback.Generate(c.Request.Context(), req.Text, req.Style)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}
