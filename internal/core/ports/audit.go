package ports

import (
	"context"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

// AuthEventRepository persists authentication audit events.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuditSink receives auth events from the transport layer. The production
// implementation is an async sharded dispatcher; recording must never block
// or fail the request that produced the event.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
