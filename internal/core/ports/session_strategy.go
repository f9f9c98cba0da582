package ports

import (
	"context"
	"time"
)

// CredentialKind tells the transport layer where a credential travels.
type CredentialKind string

const (
	// KindBearer credentials ride in the Authorization header.
	KindBearer CredentialKind = "bearer"
	// KindCookie credentials ride in an HTTP-only session cookie.
	KindCookie CredentialKind = "cookie"
)

// Credential is what login hands back to the client: either a signed bearer
// token or an opaque session identifier, plus how long it lives.
type Credential struct {
	Kind  CredentialKind
	Value string
	TTL   time.Duration
}

// SessionStrategy is the single seam between the authenticator and the two
// session designs (stateless signed tokens, server-side session records).
// Exactly one implementation is active per deployment, chosen at startup.
type SessionStrategy interface {
	// Issue mints a new credential for the given user.
	Issue(ctx context.Context, userID string) (*Credential, error)
	// Verify resolves a presented credential to a user id. It never extends
	// the credential's lifetime; a server-side implementation may delete a
	// stale record as a side effect (lazy expiry).
	Verify(ctx context.Context, presented string) (string, error)
	// Revoke invalidates a presented credential. Idempotent: revoking an
	// already-absent session is not an error. Stateless implementations
	// return domain.ErrRevokeUnsupported.
	Revoke(ctx context.Context, presented string) error
	Kind() CredentialKind
}
