package ports

import (
	"context"
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

// AccountView is the role-agnostic slice of an actor record that the
// authentication flow needs: the role-specific identifier, a display name,
// and the credential/lockout state.
type AccountView struct {
	ID      string
	Name    string
	Account domain.Account
}

// AccountStore is implemented by every role repository. FindByEmail returns
// the account regardless of active state so the lockout machine can observe
// deactivated records; FindActiveByID requires is_active and backs the
// request identity resolver.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*AccountView, error)
	FindActiveByID(ctx context.Context, id string) (*AccountView, error)
	UpdateLoginState(ctx context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error
}

// TokenService issues and verifies bearer tokens carrying exactly one
// role-identifying claim.
type TokenService interface {
	Issue(role domain.Role, id string) (string, error)
	// Verify returns the role and identifier encoded in the token. Failures
	// are domain.ErrTokenExpired or domain.ErrTokenMalformed.
	Verify(token string) (domain.Role, string, error)
}

// AuthService authenticates credentials and resolves bearer tokens to live
// identities.
type AuthService interface {
	Login(ctx context.Context, role domain.Role, email, password string) (string, *AccountView, error)
	// Resolve verifies a raw token and loads the live active account behind
	// it. A valid signature over a missing or deactivated account is still
	// unauthenticated.
	Resolve(ctx context.Context, rawToken string) (*domain.Identity, error)
}
