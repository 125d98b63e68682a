package utils

import "testing"

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT(42, "ops@example.com", RoleAdmin, "secret-a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateJWT(token, "secret-a")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ops@example.com" || claims.Role != RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "ops@example.com", RoleAdmin, "secret-a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateJWT(token, "secret-b"); err == nil {
		t.Fatal("token accepted under wrong secret")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token", "secret-a"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
