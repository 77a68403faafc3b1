package auth

import (
	"testing"

	"starforge-server/internal/shared/config"
)

func withTestSecret(t *testing.T) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret-that-is-long-enough-0123"},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func TestJWTRoundTrip(t *testing.T) {
	withTestSecret(t)

	token, err := GenerateJWT("ops", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Subject != "ops" || claims.Role != "admin" {
		t.Errorf("claims = %q/%q, want ops/admin", claims.Subject, claims.Role)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	withTestSecret(t)

	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	withTestSecret(t)
	token, err := GenerateJWT("ops", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{JWTSecret: "a-different-secret-also-long-enough1"},
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}
