package utils

import (
	"errors"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("Expected hash to differ from the password")
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "u1@example.com" {
		t.Errorf("Expected claims for u1, got %+v", claims)
	}
}

func TestJWTInvalidToken(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ParseJWTToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}

	// A token signed with a different secret is rejected.
	token, err := GenerateJWTToken("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}
	SetJWTSecret("other-secret")
	if _, err := ParseJWTToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
	SetJWTSecret("test-secret")
}
