package services

import (
	"errors"
	"testing"

	"github.com/yungbote/voicediary-backend/internal/apperr"
)

func newTokenService(t *testing.T) TokenService {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_TTL_MINUTES", "5")
	svc, err := NewTokenService(testLogger(t))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestTokenMintAndValidate(t *testing.T) {
	svc := newTokenService(t)

	token, err := svc.Mint("u1")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	userID, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("subject = %q, want u1", userID)
	}
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	svc := newTokenService(t)

	for _, bad := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := svc.Validate(bad); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("Validate(%q) err = %v, want ErrUnauthorized", bad, err)
		}
	}
}

func TestTokenValidateRejectsWrongKey(t *testing.T) {
	svc := newTokenService(t)
	token, err := svc.Mint("u1")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	t.Setenv("JWT_SECRET_KEY", "another-secret")
	other, err := NewTokenService(testLogger(t))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	if _, err := other.Validate(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("cross-key Validate err = %v, want ErrUnauthorized", err)
	}
}

func TestTokenMintRequiresUser(t *testing.T) {
	svc := newTokenService(t)
	if _, err := svc.Mint("  "); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("Mint err = %v, want ErrInvalidInput", err)
	}
}

func TestTokenServiceRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	if _, err := NewTokenService(testLogger(t)); err == nil {
		t.Fatalf("expected error without JWT_SECRET_KEY")
	}
}
