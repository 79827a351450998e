package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService("unit-test-secret", "forgepoint.digital")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(t)

	raw, err := svc.Issue(KindConfirm, "jane@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	email, err := svc.Verify(KindConfirm, raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if email != "jane@example.com" {
		t.Errorf("Expected jane@example.com, got %s", email)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestService(t)

	raw, err := svc.Issue(KindConfirm, "jane@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Move the clock past expiry
	svc.SetNow(func() time.Time { return time.Now().Add(2 * time.Hour) })

	_, err = svc.Verify(KindConfirm, raw)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Expected ErrExpired, got %v", err)
	}
}

func TestVerifyTampered(t *testing.T) {
	svc := newTestService(t)

	raw, err := svc.Issue(KindUnsubscribe, "jane@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip a character in the signature segment
	tampered := raw[:len(raw)-2] + "xx"
	if tampered == raw {
		tampered = raw[:len(raw)-2] + "yy"
	}

	_, err = svc.Verify(KindUnsubscribe, tampered)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestVerifyWrongKind(t *testing.T) {
	svc := newTestService(t)

	raw, err := svc.Issue(KindConfirm, "jane@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(KindUnsubscribe, raw)
	if !errors.Is(err, ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := NewService("a-different-secret", "forgepoint.digital")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	raw, err := svc.Issue(KindConfirm, "jane@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = other.Verify(KindConfirm, raw)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := newTestService(t)

	for _, raw := range []string{"", "not-a-token", strings.Repeat("a.", 40)} {
		if _, err := svc.Verify(KindConfirm, raw); !errors.Is(err, ErrInvalid) {
			t.Errorf("Verify(%q): expected ErrInvalid, got %v", raw, err)
		}
	}
}

func TestNewServiceEmptySecret(t *testing.T) {
	if _, err := NewService("", "forgepoint.digital"); err == nil {
		t.Error("Expected error for empty secret")
	}
}
