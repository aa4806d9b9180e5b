package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/services"
)

type SpeechHandler struct {
	speech services.SpeechService
}

func NewSpeechHandler(speech services.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// Transcribe accepts a multipart form with an "audio" file part and an
// optional "language" field.
func (sh *SpeechHandler) Transcribe(c *gin.Context) {
	if sh.speech == nil {
		RespondAppError(c, fmt.Errorf("%w: transcription is not configured", apperr.ErrStorageFailure))
		return
	}
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		RespondAppError(c, fmt.Errorf("%w: audio file part required", apperr.ErrInvalidInput))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondAppError(c, fmt.Errorf("%w: open audio part: %v", apperr.ErrInvalidInput, err))
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		RespondAppError(c, fmt.Errorf("read audio part: %w", err))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	result, err := sh.speech.Transcribe(c.Request.Context(), audio, mimeType, c.PostForm("language"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}
