package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "talenthub/internal/errors"
)

const sessionKeyPrefix = "session:"

// SessionStore persists the session-id to user-id binding. Unlike the
// profile cache, session state needs real errors: a write that silently
// fails would hand out tokens that never resolve.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore implements SessionStore on Redis. Expiry is the key
// TTL, so abandoned sessions clean themselves up.
type RedisSessionStore struct {
	client *redis.Client
}

// Compile-time interface check.
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a session store on an existing Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Put stores the session binding with a TTL.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	key := sessionKeyPrefix + sessionID
	if err := s.client.Set(ctx, key, userID.String(), ttl).Err(); err != nil {
		return apperrors.NewStoreError("put session", err)
	}
	return nil
}

// Get returns the user id bound to sessionID. A missing or expired key
// is ErrInvalidSession; infrastructure failures are StoreError.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	key := sessionKeyPrefix + sessionID
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return uuid.Nil, apperrors.ErrInvalidSession
	}
	if err != nil {
		return uuid.Nil, apperrors.NewStoreError("get session", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		// A session record we cannot parse is treated as absent.
		return uuid.Nil, apperrors.ErrInvalidSession
	}
	return userID, nil
}

// Delete removes the session binding. Deleting an absent key is not an
// error, which makes logout idempotent.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.NewStoreError("delete session", err)
	}
	return nil
}
