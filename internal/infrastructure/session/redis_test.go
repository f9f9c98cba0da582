package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

func newTestStrategy(t *testing.T, ttl time.Duration) (*RedisStrategy, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStrategy(client, ttl), mr
}

func TestRedisIssueVerifyRoundTrip(t *testing.T) {
	s, mr := newTestStrategy(t, time.Hour)

	cred, err := s.Issue(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if cred.Kind != ports.KindCookie {
		t.Fatalf("kind = %q, want cookie", cred.Kind)
	}
	if len(cred.Value) != sessionIDBytes*2 {
		t.Fatalf("session id length = %d, want %d hex chars", len(cred.Value), sessionIDBytes*2)
	}

	// The stored key outlives the logical expiry by the grace window so a
	// stale record can still be recognized as expired.
	if ttl := mr.TTL(sessionKeyPrefix + cred.Value); ttl != time.Hour+expiryGrace {
		t.Fatalf("redis ttl = %v, want %v", ttl, time.Hour+expiryGrace)
	}

	userID, err := s.Verify(context.Background(), cred.Value)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("userID = %q, want user-42", userID)
	}
}

func TestRedisVerifyUnknownSession(t *testing.T) {
	s, _ := newTestStrategy(t, time.Hour)

	_, err := s.Verify(context.Background(), "deadbeef")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisVerifyExpiredSessionLazilyDeleted(t *testing.T) {
	s, mr := newTestStrategy(t, time.Hour)

	// Seed a record whose logical expiry is already past but whose key is
	// still within the grace window.
	record := domain.Session{
		UserID:    "user-42",
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := mr.Set(sessionKeyPrefix+"stale-id", string(data)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = s.Verify(context.Background(), "stale-id")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if mr.Exists(sessionKeyPrefix + "stale-id") {
		t.Fatal("stale record still present, want lazy deletion")
	}

	// A second presentation of the same id is now indistinguishable from a
	// session that never existed.
	if _, err := s.Verify(context.Background(), "stale-id"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("second Verify err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisVerifyDoesNotExtendExpiry(t *testing.T) {
	s, mr := newTestStrategy(t, time.Hour)

	cred, err := s.Issue(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	key := sessionKeyPrefix + cred.Value
	mr.FastForward(30 * time.Minute)
	before := mr.TTL(key)

	if _, err := s.Verify(context.Background(), cred.Value); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if after := mr.TTL(key); after != before {
		t.Fatalf("ttl slid from %v to %v on verification", before, after)
	}
}

func TestRedisVerifyDropsCorruptRecord(t *testing.T) {
	s, mr := newTestStrategy(t, time.Hour)

	if err := mr.Set(sessionKeyPrefix+"corrupt-id", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := s.Verify(context.Background(), "corrupt-id")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if mr.Exists(sessionKeyPrefix + "corrupt-id") {
		t.Fatal("corrupt record still present")
	}
}

func TestRedisRevokeIsIdempotent(t *testing.T) {
	s, mr := newTestStrategy(t, time.Hour)

	cred, err := s.Issue(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := s.Revoke(context.Background(), cred.Value); err != nil {
		t.Fatalf("first Revoke: %v", err)
	}
	if mr.Exists(sessionKeyPrefix + cred.Value) {
		t.Fatal("session record survived Revoke")
	}
	if err := s.Revoke(context.Background(), cred.Value); err != nil {
		t.Fatalf("second Revoke: %v", err)
	}

	if _, err := s.Verify(context.Background(), cred.Value); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("Verify after Revoke err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisSessionIDsAreUnique(t *testing.T) {
	s, _ := newTestStrategy(t, time.Hour)

	seen := make(map[string]struct{})
	for i := 0; i < 32; i++ {
		cred, err := s.Issue(context.Background(), "user-42")
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, dup := seen[cred.Value]; dup {
			t.Fatalf("duplicate session id %q", cred.Value)
		}
		seen[cred.Value] = struct{}{}
	}
}
