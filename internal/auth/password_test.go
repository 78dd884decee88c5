package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "admin123" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if err := ComparePassword(hash, "admin123"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := ComparePassword(hash, "admin124"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	b, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if a == b {
		t.Error("expected different salts to produce different hashes")
	}
}

func TestComparePassword_MalformedHash(t *testing.T) {
	err := ComparePassword("YWRtaW4xMjM=", "admin123")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected malformed hash error, got %v", err)
	}
}
