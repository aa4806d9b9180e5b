package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type TokenService interface {
	Mint(userID string) (string, error)
	Validate(tokenString string) (string, error)
	TTL() time.Duration
}

type tokenService struct {
	log       *logger.Logger
	secretKey string
	ttl       time.Duration
}

// NewTokenService reads JWT_SECRET_KEY and JWT_TTL_MINUTES from the
// environment. The secret is mandatory.
func NewTokenService(baseLog *logger.Logger) (TokenService, error) {
	slog := baseLog.With("service", "TokenService")
	secret := strings.TrimSpace(utils.GetEnv("JWT_SECRET_KEY", "", slog))
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	ttlMinutes := utils.GetEnvAsInt("JWT_TTL_MINUTES", 60, slog)
	return &tokenService{
		log:       slog,
		secretKey: secret,
		ttl:       time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func (ts *tokenService) Mint(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id required", apperr.ErrInvalidInput)
	}
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ts.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ts.secretKey))
}

// Validate parses the token and returns the user id it was minted for.
func (ts *tokenService) Validate(tokenString string) (string, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(ts.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse token: %v", apperr.ErrUnauthorized, err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return "", fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: token has no subject", apperr.ErrUnauthorized)
	}
	return claims.Subject, nil
}

func (ts *tokenService) TTL() time.Duration {
	return ts.ttl
}
