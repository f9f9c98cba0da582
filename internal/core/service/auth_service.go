package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const (
	bcryptCost        = 10
	minUsernameLength = 2
	minPasswordLength = 6
)

// dummyHash is a valid bcrypt hash (cost 10) compared against when login
// targets an unknown email, so that the unknown-email and wrong-password
// paths cost the same and return the same error.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login, and identity resolution on
// top of a credential store and the configured session strategy.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStrategy
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStrategy, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, audit: audit, log: log}
}

// Register validates the input, hashes the password, and creates the user.
// Email uniqueness is enforced by the repository's storage constraint; a
// concurrent duplicate surfaces as domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)

	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuthEvent{
		UserID: created.ID,
		Email:  created.Email,
		Action: domain.ActionRegister,
		At:     time.Now().UTC(),
	})
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a session credential through the
// active strategy. An unknown email and a wrong password are indistinguishable
// to the caller: both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Credential, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a hash comparison so the miss is not observably faster.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			s.recordFailedLogin(email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailedLogin(email)
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuthEvent{
		UserID: user.ID,
		Email:  user.Email,
		Action: domain.ActionLogin,
		At:     time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("kind", string(cred.Kind)).Msg("user logged in")
	return cred, nil
}

// Logout revokes the presented credential. Revoking an already-dead session
// is not an error; the client's cookie is cleared by the handler regardless.
func (s *AuthService) Logout(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}

	// Resolve the user for the audit trail before the record disappears.
	// A dead credential still gets its cookie cleared, so failures here
	// only mean the logout is recorded anonymously.
	userID, _ := s.sessions.Verify(ctx, presented)

	if err := s.sessions.Revoke(ctx, presented); err != nil && !errors.Is(err, domain.ErrRevokeUnsupported) {
		return err
	}

	if userID != "" {
		s.audit.Record(domain.AuthEvent{
			UserID: userID,
			Action: domain.ActionLogout,
			At:     time.Now().UTC(),
		})
		s.log.Info().Str("user_id", userID).Msg("user logged out")
	}
	return nil
}

// CurrentUser resolves a presented credential to its user. An absent or
// invalid credential means the caller is anonymous, which is (nil, nil),
// not an error. Only storage failures propagate.
func (s *AuthService) CurrentUser(ctx context.Context, presented string) (*domain.User, error) {
	if presented == "" {
		return nil, nil
	}

	userID, err := s.sessions.Verify(ctx, presented)
	if err != nil {
		if isCredentialError(err) {
			return nil, nil
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) recordFailedLogin(email string) {
	s.audit.Record(domain.AuthEvent{
		Email:  email,
		Action: domain.ActionLoginFailed,
		At:     time.Now().UTC(),
	})
}

// isCredentialError reports whether err is one of the expected verification
// failures, as opposed to a backend failure.
func isCredentialError(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrSessionExpired)
}
