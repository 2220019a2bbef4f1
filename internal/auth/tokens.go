package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenManager issues and validates bearer tokens backed by Redis.
// A token is "<id>.<tag>" where tag is an HMAC-SHA256 of the id under the
// signing secret; the principal lives in Redis under the id with a TTL, so
// expiry is enforced by the store and tampering is caught before any
// round trip.
type TokenManager struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(client *redis.Client, secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{client: client, secret: []byte(secret), ttl: ttl}
}

// Issue creates a token for the principal.
func (m *TokenManager) Issue(ctx context.Context, principal Principal) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(principal)
	if err != nil {
		return "", err
	}
	if err := m.client.Set(ctx, m.redisKey(id), payload, m.ttl).Err(); err != nil {
		return "", err
	}
	return id + "." + m.sign(id), nil
}

// Validate checks the token signature and looks up the stored principal.
func (m *TokenManager) Validate(ctx context.Context, token string) (*Principal, error) {
	id, tag, ok := strings.Cut(token, ".")
	if !ok || id == "" {
		return nil, ErrInvalidToken
	}
	if !hmac.Equal([]byte(tag), []byte(m.sign(id))) {
		return nil, ErrInvalidToken
	}

	payload, err := m.client.Get(ctx, m.redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	var principal Principal
	if err := json.Unmarshal(payload, &principal); err != nil {
		return nil, ErrInvalidToken
	}
	return &principal, nil
}

// Revoke deletes the token's stored principal, ending the session.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	id, tag, ok := strings.Cut(token, ".")
	if !ok || !hmac.Equal([]byte(tag), []byte(m.sign(id))) {
		return ErrInvalidToken
	}
	if err := m.client.Del(ctx, m.redisKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// TTL exposes the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) redisKey(id string) string {
	return "token:" + id
}

func (m *TokenManager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
