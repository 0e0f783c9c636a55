package auth

import (
	"errors"
	"testing"
	"time"
)

func TestVerifySubject_RoundTrip(t *testing.T) {
	t.Parallel()

	v := NewTokenVerifier("test-secret")

	token, err := v.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	sub, err := v.VerifySubject(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if sub != "user-1" {
		t.Errorf("expected subject user-1, got %s", sub)
	}

	// The Bearer prefix from the Authorization header is tolerated.
	sub, err = v.VerifySubject("Bearer " + token)
	if err != nil {
		t.Fatalf("verify with prefix failed: %v", err)
	}
	if sub != "user-1" {
		t.Errorf("expected subject user-1, got %s", sub)
	}
}

func TestVerifySubject_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenVerifier("secret-a").IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = NewTokenVerifier("secret-b").VerifySubject(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestVerifySubject_Expired(t *testing.T) {
	t.Parallel()

	v := NewTokenVerifier("test-secret")

	token, err := v.IssueToken("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = v.VerifySubject(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got: %v", err)
	}
}

func TestVerifySubject_Garbage(t *testing.T) {
	t.Parallel()

	v := NewTokenVerifier("test-secret")

	for _, token := range []string{"", "not-a-token", "Bearer "} {
		if _, err := v.VerifySubject(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got: %v", token, err)
		}
	}
}
