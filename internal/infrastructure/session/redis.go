package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const (
	sessionKeyPrefix  = "session:"
	sessionIDBytes    = 32 // 256 bits of entropy, hex-encoded to 64 chars
	defaultSessionTTL = 24 * time.Hour

	// expiryGrace keeps the Redis key alive past the session's logical
	// expiry, so Verify can tell "expired" apart from "never existed" and
	// delete the stale record itself.
	expiryGrace = time.Hour
)

// RedisStrategy stores opaque session records server-side. Logout deletes
// the record; verification checks the stored expiry and lazily removes
// stale records. Verification never slides the expiry forward.
type RedisStrategy struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStrategy(client *redis.Client, ttl time.Duration) *RedisStrategy {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStrategy{client: client, ttl: ttl}
}

func (s *RedisStrategy) Kind() ports.CredentialKind { return ports.KindCookie }

// Issue creates a new session record keyed by a random identifier.
func (s *RedisStrategy) Issue(ctx context.Context, userID string) (*ports.Credential, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}

	now := time.Now().UTC()
	record := domain.Session{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+id, data, s.ttl+expiryGrace).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &ports.Credential{Kind: ports.KindCookie, Value: id, TTL: s.ttl}, nil
}

// Verify looks up the session record and checks its expiry. A record past
// its expiry is deleted as a side effect and reported as expired.
func (s *RedisStrategy) Verify(ctx context.Context, presented string) (string, error) {
	key := sessionKeyPrefix + presented

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}

	var record domain.Session
	if err := json.Unmarshal(data, &record); err != nil {
		// Unreadable record: remove it rather than keep serving garbage.
		_ = s.client.Del(ctx, key).Err()
		return "", domain.ErrSessionNotFound
	}

	if record.Expired(time.Now().UTC()) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return "", fmt.Errorf("delete stale session: %w", err)
		}
		return "", domain.ErrSessionExpired
	}

	return record.UserID, nil
}

// Revoke deletes the session record. Deleting an absent session succeeds.
func (s *RedisStrategy) Revoke(ctx context.Context, presented string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+presented).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
