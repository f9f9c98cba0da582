package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

type memEventRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *memEventRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *memEventRepo) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitForEvents(t *testing.T, repo *memEventRepo, n int) []domain.AuthEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := repo.snapshot(); len(events) >= n {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", n, len(repo.snapshot()))
	return nil
}

func TestDispatcherDeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memEventRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuthEvent{UserID: "user-1", Action: domain.ActionRegister})
	d.Record(domain.AuthEvent{UserID: "user-2", Action: domain.ActionLogin})
	d.Record(domain.AuthEvent{Email: "nobody@example.com", Action: domain.ActionLoginFailed})

	events := waitForEvents(t, repo, 3)

	seen := make(map[domain.AuthAction]bool)
	for _, e := range events {
		seen[e.Action] = true
	}
	for _, action := range []domain.AuthAction{domain.ActionRegister, domain.ActionLogin, domain.ActionLoginFailed} {
		if !seen[action] {
			t.Errorf("action %s never delivered", action)
		}
	}
}

func TestDispatcherPreservesPerUserOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &memEventRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	ordered := []domain.AuthAction{
		domain.ActionRegister,
		domain.ActionLogin,
		domain.ActionLogout,
		domain.ActionLogin,
	}
	for _, action := range ordered {
		d.Record(domain.AuthEvent{UserID: "user-1", Action: action})
	}

	events := waitForEvents(t, repo, len(ordered))
	for i, e := range events {
		if e.Action != ordered[i] {
			t.Fatalf("event %d = %s, want %s", i, e.Action, ordered[i])
		}
	}
}

func TestDispatcherShardingIsStable(t *testing.T) {
	d := NewDispatcher(4, &memEventRepo{}, zerolog.Nop())

	event := domain.AuthEvent{UserID: "user-1"}
	first := d.shardIndex(event)
	for i := 0; i < 16; i++ {
		if got := d.shardIndex(event); got != first {
			t.Fatalf("shard index moved from %d to %d", first, got)
		}
	}

	// Events with no user id shard by email instead.
	byEmail := domain.AuthEvent{Email: "nobody@example.com"}
	if a, b := d.shardIndex(byEmail), d.shardIndex(byEmail); a != b {
		t.Fatalf("email sharding unstable: %d vs %d", a, b)
	}
}

func TestDispatcherDefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &memEventRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}
