package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRevokeAndCheck(t *testing.T) {
	redis := miniredis.RunT(t)
	set := NewRevocationSet(redis.Addr(), "")

	if set.IsRevoked("jti-1") {
		t.Fatal("fresh jti reported revoked")
	}
	if err := set.Revoke("jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if !set.IsRevoked("jti-1") {
		t.Fatal("revoked jti not reported")
	}
	if set.IsRevoked("jti-2") {
		t.Fatal("unrelated jti reported revoked")
	}
}

func TestRevocationExpiresWithToken(t *testing.T) {
	redis := miniredis.RunT(t)
	set := NewRevocationSet(redis.Addr(), "")

	if err := set.Revoke("jti-ttl", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	redis.FastForward(2 * time.Minute)
	if set.IsRevoked("jti-ttl") {
		t.Fatal("entry survived past token expiry")
	}
}

func TestRevokeAlreadyExpiredTokenIsNoop(t *testing.T) {
	redis := miniredis.RunT(t)
	set := NewRevocationSet(redis.Addr(), "")

	if err := set.Revoke("jti-old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if redis.Exists(revocationKeyPrefix + "jti-old") {
		t.Fatal("expired token stored anyway")
	}
}

func TestNilRevocationSet(t *testing.T) {
	set := NewRevocationSet("", "")
	if set != nil {
		t.Fatal("expected nil set without a Redis address")
	}
	if err := set.Revoke("jti", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("nil revoke: %v", err)
	}
	if set.IsRevoked("jti") {
		t.Fatal("nil set reported a revocation")
	}
}
