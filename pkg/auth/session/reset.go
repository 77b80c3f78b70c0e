package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	redisclient "github.com/xypherlux/storefront-backend/pkg/redis"
)

const resetTokenBytes = 32

var ErrResetSessionNotFound = errors.New("reset session not found")

type resetKeyer interface {
	ResetSessionKey(token string) string
}

// ResetStore tracks short-lived password-reset sessions in Redis. A session is
// created once a user proves ownership of a reset code and is consumed when
// the new password is set.
type ResetStore struct {
	store sessionStore
	keyer resetKeyer
	ttl   time.Duration
}

// NewResetStore constructs a reset-session store backed by Redis.
func NewResetStore(client *redisclient.Client, ttl time.Duration) (*ResetStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("reset session ttl must be positive")
	}
	return &ResetStore{store: client, keyer: client, ttl: ttl}, nil
}

// Create stores a new reset session for the user and returns its opaque token.
func (s *ResetStore) Create(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(bytes)
	if err := s.store.Set(ctx, s.keyer.ResetSessionKey(token), userID, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup returns the user ID tied to the reset token without consuming it.
func (s *ResetStore) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrResetSessionNotFound
	}
	userID, err := s.store.Get(ctx, s.keyer.ResetSessionKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", ErrResetSessionNotFound
		}
		return "", err
	}
	return userID, nil
}

// Consume removes the reset session so the token cannot be replayed.
func (s *ResetStore) Consume(ctx context.Context, token string) error {
	if token == "" {
		return ErrResetSessionNotFound
	}
	return s.store.Del(ctx, s.keyer.ResetSessionKey(token))
}
