package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("review-secret-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckPassword(hash, "review-secret-1"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	claims := Claims{UserID: "u1", Name: "Li Lei", Role: RoleLeader}

	token, err := GenerateToken("test-secret", claims, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.UserID != "u1" || parsed.Role != RoleLeader {
		t.Fatalf("unexpected claims: %+v", parsed)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", Claims{UserID: "u1"}, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("test-secret", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
