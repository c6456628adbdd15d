package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("ops", RoleAdmin, "secret-key", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateJWT(token, "secret-key")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "ops" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT("ops", RoleAdmin, "secret-key", time.Hour)
	if _, err := ValidateJWT(token, "other-key"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestValidateJWT_Expired(t *testing.T) {
	token, _ := GenerateJWT("ops", RoleAdmin, "secret-key", -time.Minute)
	if _, err := ValidateJWT(token, "secret-key"); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	if _, err := GenerateJWT("ops", RoleAdmin, "", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestGenerateID(t *testing.T) {
	a, err := GenerateID(16)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _ := GenerateID(16)
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct ids")
	}
}
