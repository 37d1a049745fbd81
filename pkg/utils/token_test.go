package utils

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	token, err := m.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
	if claims.Subject != "42" {
		t.Errorf("expected subject 42, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("expected a jti")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a := NewTokenManager("secret-a", time.Hour, nil)
	b := NewTokenManager("secret-b", time.Hour, nil)

	token, _ := a.GenerateToken(1)
	if _, err := b.ValidateToken(token); err == nil {
		t.Error("expected signature error")
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, nil)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	token, _ := m.GenerateToken(1)

	m.now = time.Now
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expected expiry error")
	}
}

func TestTokenRevoked(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, nil)
	token, _ := m.GenerateToken(7)
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	m.Revoke(claims)

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("expected ErrTokenRevoked, got %v", err)
	}

	other, _ := m.GenerateToken(7)
	if _, err := m.ValidateToken(other); err != nil {
		t.Errorf("fresh token should stay valid: %v", err)
	}
}

func TestRevocationStorePrunesExpired(t *testing.T) {
	s := NewRevocationStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Revoke("old", now.Add(time.Minute))
	now = now.Add(2 * time.Minute)
	s.Revoke("new", now.Add(time.Minute))

	if s.IsRevoked("old") {
		t.Error("expired entry should be pruned")
	}
	if !s.IsRevoked("new") {
		t.Error("new entry should be revoked")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", s.Len())
	}
}
