package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldworks/agrifield-api/internal/api/metrics"
	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// AuthService runs the login lockout state machine against the per-role
// account stores and resolves bearer tokens to live identities.
type AuthService struct {
	stores map[domain.Role]ports.AccountStore
	tokens ports.TokenService
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(stores map[domain.Role]ports.AccountStore, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{stores: stores, tokens: tokens, log: log, now: time.Now}
}

// Login verifies credentials for the given role and returns a signed token
// plus the account view on success.
//
// Not-found and wrong-password both surface domain.ErrInvalidCredentials;
// the responses are indistinguishable on purpose so login cannot be used to
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, role domain.Role, email, password string) (string, *ports.AccountView, error) {
	store, ok := s.stores[role]
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	acct, err := store.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			metrics.LoginsTotal.WithLabelValues(string(role), "invalid").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	now := s.now()

	// A live lock rejects every attempt, correct password included.
	if acct.Account.Locked(now) {
		metrics.LoginsTotal.WithLabelValues(string(role), "locked").Inc()
		return "", nil, domain.ErrAccountLocked
	}

	if !acct.Account.Active {
		metrics.LoginsTotal.WithLabelValues(string(role), "disabled").Inc()
		return "", nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.Account.PasswordHash), []byte(password)) != nil {
		acct.Account.RecordFailure(now)
		if err := store.UpdateLoginState(ctx, acct.ID, acct.Account.LoginAttempts, acct.Account.LockUntil, acct.Account.LastLogin); err != nil {
			s.log.Error().Err(err).Str("role", string(role)).Msg("failed to persist login failure")
		}
		if acct.Account.Locked(now) {
			metrics.LockoutsTotal.WithLabelValues(string(role)).Inc()
			s.log.Warn().Str("role", string(role)).Str("id", acct.ID).Msg("account locked after repeated failures")
		}
		metrics.LoginsTotal.WithLabelValues(string(role), "invalid").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	acct.Account.RecordSuccess(now)
	if err := store.UpdateLoginState(ctx, acct.ID, 0, nil, acct.Account.LastLogin); err != nil {
		s.log.Error().Err(err).Str("role", string(role)).Msg("failed to persist login success")
	}

	token, err := s.tokens.Issue(role, acct.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues(string(role), "success").Inc()
	s.log.Info().Str("role", string(role)).Str("id", acct.ID).Msg("login successful")
	return token, acct, nil
}

// Resolve verifies the raw token and loads the live record behind its single
// role claim. Tokens over missing or deactivated accounts resolve to
// ErrUnauthenticated regardless of signature validity.
func (s *AuthService) Resolve(ctx context.Context, rawToken string) (*domain.Identity, error) {
	role, id, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	store, ok := s.stores[role]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	acct, err := store.FindActiveByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return &domain.Identity{
		Role:  role,
		ID:    acct.ID,
		Name:  acct.Name,
		Email: acct.Account.Email,
	}, nil
}

// normalizeEmail canonicalizes an email address for storage and lookup.
// Accounts are stored lowercased, so a mixed-case login still finds them.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword computes the one-way adaptive hash stored on account records.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrFarmerNotFound) ||
		errors.Is(err, domain.ErrCRPNotFound) ||
		errors.Is(err, domain.ErrExpertNotFound) ||
		errors.Is(err, domain.ErrSupervisorNotFound)
}
