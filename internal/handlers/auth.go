package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/services"
)

type AuthHandler struct {
	tokens services.TokenService
}

func NewAuthHandler(tokens services.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Token mints an access token for the given user id.
func (ah *AuthHandler) Token(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, fmt.Errorf("%w: invalid request body", apperr.ErrInvalidInput))
		return
	}
	token, err := ah.tokens.Mint(req.UserID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(ah.tokens.TTL().Seconds()),
	})
}
