package security

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManagerRoundTrip(t *testing.T) {
	t.Parallel()

	manager, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() unexpected error: %v", err)
	}

	token, err := manager.Issue("usr_42")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	subject, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if subject != "usr_42" {
		t.Fatalf("Verify() = %q, want usr_42", subject)
	}
}

func TestTokenManagerRejectsForeignAndExpiredTokens(t *testing.T) {
	t.Parallel()

	manager, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() unexpected error: %v", err)
	}
	other, err := NewTokenManager("fedcba9876543210fedcba9876543210", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() unexpected error: %v", err)
	}

	foreign, err := other.Issue("usr_42")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if _, err := manager.Verify(foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected foreign token to be rejected, got %v", err)
	}

	issuedAt := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issuedAt }
	expiring, err := manager.Issue("usr_42")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	manager.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := manager.Verify(expiring); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	if _, err := manager.Verify("demo"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected opaque string to be rejected, got %v", err)
	}
}

func TestNewTokenManagerValidatesSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenManager("  ", time.Hour); !errors.Is(err, ErrTokenSecret) {
		t.Fatalf("expected ErrTokenSecret, got %v", err)
	}
	if _, err := NewTokenManager("short", time.Hour); err == nil {
		t.Fatal("expected short secret to be rejected")
	}
}
