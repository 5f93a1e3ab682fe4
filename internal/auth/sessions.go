// internal/auth/sessions.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenRevoked    = errors.New("token revoked")
)

// Session is stored under session:<userId>:<token>.
type Session struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{redis: rdb, ttl: ttl, now: time.Now}
}

func sessionKey(userID int64, token string) string {
	return fmt.Sprintf("session:%d:%s", userID, token)
}

func revokedKey(token string) string {
	return "token:revoked:" + token
}

// Create opens a session with a random token.
func (s *SessionStore) Create(ctx context.Context, userID int64, username string) (*Session, error) {
	now := s.now().UTC()
	sess := &Session{
		UserID:    userID,
		Username:  username,
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(userID, sess.Token), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get returns the live session for userID and token.
func (s *SessionStore) Get(ctx context.Context, userID int64, token string) (*Session, error) {
	revoked, err := s.redis.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked > 0 {
		return nil, ErrTokenRevoked
	}

	val, err := s.redis.Get(ctx, sessionKey(userID, token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Delete removes one session and reports whether it existed.
func (s *SessionStore) Delete(ctx context.Context, userID int64, token string) (bool, error) {
	n, err := s.redis.Del(ctx, sessionKey(userID, token)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}

// DeleteAll removes every session of userID and returns how many there were.
func (s *SessionStore) DeleteAll(ctx context.Context, userID int64) (int, error) {
	var keys []string
	iter := s.redis.Scan(ctx, 0, fmt.Sprintf("session:%d:*", userID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("find sessions: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return len(keys), nil
}

// Revoke marks token unusable for the session lifetime.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.redis.Set(ctx, revokedKey(token), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
