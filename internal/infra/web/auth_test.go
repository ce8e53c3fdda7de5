package web

import (
	"testing"
	"time"
)

func TestAuth_MintParseRoundtrip(t *testing.T) {
	t.Parallel()

	auth := NewAuthManager("secret", time.Hour)
	tok, err := auth.Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	userID, err := auth.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("got user %q", userID)
	}
}

func TestAuth_RejectsEmptyUser(t *testing.T) {
	t.Parallel()

	auth := NewAuthManager("secret", time.Hour)
	if _, err := auth.Mint(""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestAuth_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	auth := NewAuthManager("secret", -time.Minute)
	tok, err := auth.Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := auth.Parse(tok); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestAuth_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAuthManager("secret-a", time.Hour).Mint("user-42")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := NewAuthManager("secret-b", time.Hour).Parse(tok); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}
