package auth

import (
	"errors"
	"testing"
	"time"
)

func newService(t *testing.T, secret string, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	return svc
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newService(t, "super-secret", time.Hour)

	tok, err := svc.Issue("user-123", true)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if !claims.IsAdmin {
		t.Fatalf("IsAdmin not preserved")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := newService(t, "secret", time.Hour)
	// Issue against a second service with a negative TTL to get an
	// already-expired token signed with the same secret.
	expired := &TokenService{secret: []byte("secret"), ttl: -time.Minute}

	tok, err := expired.Issue("u1", false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	right := newService(t, "right-secret", time.Hour)
	wrong := newService(t, "wrong-secret", time.Hour)

	tok, err := right.Issue("u2", false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := wrong.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := newService(t, "k", time.Hour)
	if _, err := svc.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestNewTokenService_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
