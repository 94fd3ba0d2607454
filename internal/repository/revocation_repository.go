package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "sunclass:revoked:"

// RevocationRepository remembers credentials this web tier has evicted, keyed by their HMAC.
type RevocationRepository struct {
	client *redis.Client
	secret string
}

// NewRevocationRepository constructs the repository. A nil client turns every call into a no-op.
func NewRevocationRepository(client *redis.Client, secret string) *RevocationRepository {
	return &RevocationRepository{client: client, secret: secret}
}

// Revoke records the credential until expiresAt. Credentials already past expiry are skipped.
func (r *RevocationRepository) Revoke(ctx context.Context, credential string, expiresAt time.Time) error {
	if r.client == nil || strings.TrimSpace(credential) == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if expiresAt.IsZero() {
		ttl = 7 * 24 * time.Hour
	}
	if ttl <= 0 {
		return nil
	}
	key := r.key(credential)
	if err := r.client.Set(ctx, key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// IsRevoked reports whether the credential was evicted earlier.
func (r *RevocationRepository) IsRevoked(ctx context.Context, credential string) (bool, error) {
	if r.client == nil || strings.TrimSpace(credential) == "" {
		return false, nil
	}
	key := r.key(credential)
	err := r.client.Get(ctx, key).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return true, nil
}

func (r *RevocationRepository) key(credential string) string {
	return revocationPrefix + hmacHex(credential, r.secret)
}

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}
