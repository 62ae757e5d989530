package services

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:    []byte("test-secret"),
		Issuer:    "buildtrack",
		AccessTTL: time.Hour,
		ResetTTL:  15 * time.Minute,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := testTokenService()
	signed, jti, exp, err := tokens.CreateAccessToken("user-1", "ana@example.com", "ADMIN")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a jti")
	}
	if exp <= time.Now().Unix() {
		t.Fatalf("expiry %d not in the future", exp)
	}
	token, claims, err := tokens.ParseToken(signed)
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v", err)
	}
	if claims["typ"] != "access" {
		t.Fatalf("typ = %v", claims["typ"])
	}
	if claims["sub"] != "user-1" || claims["email"] != "ana@example.com" || claims["role"] != "ADMIN" {
		t.Fatalf("identity claims wrong: %v", claims)
	}
	if claims["jti"] != jti {
		t.Fatalf("jti claim %v != %s", claims["jti"], jti)
	}
}

func TestResetTokenHasResetType(t *testing.T) {
	tokens := testTokenService()
	signed, err := tokens.CreateResetToken("ana@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	token, claims, err := tokens.ParseToken(signed)
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v", err)
	}
	if claims["typ"] != "reset" {
		t.Fatalf("typ = %v", claims["typ"])
	}
	if claims["email"] != "ana@example.com" {
		t.Fatalf("email = %v", claims["email"])
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	tokens := testTokenService()
	signed, _, _, err := tokens.CreateAccessToken("user-1", "ana@example.com", "GENERAL")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	parts := strings.Split(signed, ".")
	tampered := parts[0] + "." + parts[1] + "qq." + parts[2]
	if token, _, err := tokens.ParseToken(tampered); err == nil && token.Valid {
		t.Fatal("tampered token accepted")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	other := testTokenService()
	other.Issuer = "someone-else"
	signed, _, _, err := other.CreateAccessToken("user-1", "ana@example.com", "GENERAL")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tokens := testTokenService()
	if token, _, err := tokens.ParseToken(signed); err == nil && token.Valid {
		t.Fatal("token from another issuer accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens := testTokenService()
	tokens.AccessTTL = -time.Minute
	signed, _, _, err := tokens.CreateAccessToken("user-1", "ana@example.com", "GENERAL")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token, _, err := tokens.ParseToken(signed); err == nil && token.Valid {
		t.Fatal("expired token accepted")
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	tokens := testTokenService()
	hashed, err := tokens.HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hashed, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hashed)
	}
	if !tokens.VerifyPassword("s3cret!", hashed) {
		t.Fatal("correct password rejected")
	}
	if tokens.VerifyPassword("wrong", hashed) {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyPasswordBcryptFallback(t *testing.T) {
	tokens := testTokenService()
	hashed, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if !tokens.VerifyPassword("legacy-pass", string(hashed)) {
		t.Fatal("bcrypt hash rejected")
	}
	if tokens.VerifyPassword("other", string(hashed)) {
		t.Fatal("wrong password accepted against bcrypt hash")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tokens := testTokenService()
	if tokens.VerifyPassword("anything", "$argon2id$not-a-real-hash") {
		t.Fatal("malformed hash accepted")
	}
}
