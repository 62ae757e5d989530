package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "revoked:"

// RevocationSet records logged-out token ids in Redis until their natural
// expiry. A nil set (Redis not configured) never reports a token as revoked.
type RevocationSet struct {
	client *redis.Client
}

func NewRevocationSet(addr, password string) *RevocationSet {
	if addr == "" {
		return nil
	}
	return &RevocationSet{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Revoke marks a token id as revoked until expiresAt. Tokens already past
// their expiry are not stored.
func (s *RevocationSet) Revoke(jti string, expiresAt time.Time) error {
	if s == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked. Lookup errors are
// treated as not revoked so a Redis outage does not lock everyone out.
func (s *RevocationSet) IsRevoked(jti string) bool {
	if s == nil || jti == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := s.client.Get(ctx, revocationKeyPrefix+jti).Result()
	return err == nil
}
