package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type stubAccountStore struct {
	accounts map[string]*ports.AccountView // keyed by id
}

func newStubAccountStore() *stubAccountStore {
	return &stubAccountStore{accounts: make(map[string]*ports.AccountView)}
}

func (s *stubAccountStore) add(id, name, email, password string, active bool) {
	hash, _ := HashPassword(password)
	s.accounts[id] = &ports.AccountView{
		ID:   id,
		Name: name,
		Account: domain.Account{
			Email:        email,
			PasswordHash: hash,
			Active:       active,
		},
	}
}

func cloneView(v *ports.AccountView) *ports.AccountView {
	clone := *v
	return &clone
}

func (s *stubAccountStore) FindByEmail(_ context.Context, email string) (*ports.AccountView, error) {
	for _, v := range s.accounts {
		if v.Account.Email == email {
			return cloneView(v), nil
		}
	}
	return nil, domain.ErrFarmerNotFound
}

func (s *stubAccountStore) FindActiveByID(_ context.Context, id string) (*ports.AccountView, error) {
	v, ok := s.accounts[id]
	if !ok || !v.Account.Active {
		return nil, domain.ErrFarmerNotFound
	}
	return cloneView(v), nil
}

func (s *stubAccountStore) UpdateLoginState(_ context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	v, ok := s.accounts[id]
	if !ok {
		return domain.ErrFarmerNotFound
	}
	v.Account.LoginAttempts = attempts
	v.Account.LockUntil = lockUntil
	if lastLogin != nil {
		v.Account.LastLogin = lastLogin
	}
	return nil
}

func newTestAuthService(store ports.AccountStore) *AuthService {
	return NewAuthService(map[domain.Role]ports.AccountStore{
		domain.RoleFarmer: store,
	}, NewTokenService("test-secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	token, view, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if view.ID != "farmer-1" {
		t.Fatalf("view.ID = %q, want farmer-1", view.ID)
	}
	if store.accounts["farmer-1"].Account.LastLogin == nil {
		t.Fatal("expected last login to be stamped")
	}
}

func TestAuthService_Login_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	_, _, errUnknown := svc.Login(context.Background(), domain.RoleFarmer, "nobody@example.com", "s3cret")
	_, _, errWrong := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", errWrong)
	}
}

func TestAuthService_Login_LocksAfterFiveFailures(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	for i := 0; i < domain.MaxLoginAttempts; i++ {
		if _, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v, want ErrInvalidCredentials", i+1, err)
		}
	}

	// Correct password is now rejected by the live lock.
	if _, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "s3cret"); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("locked login: got %v, want ErrAccountLocked", err)
	}
}

func TestAuthService_Login_ExpiredLockRestartsCounter(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	for i := 0; i < domain.MaxLoginAttempts; i++ {
		_, _, _ = svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "wrong")
	}

	// Move past the lock window.
	svc.now = func() time.Time { return time.Now().Add(domain.LockDuration + time.Minute) }

	if _, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("post-expiry failure: got %v, want ErrInvalidCredentials", err)
	}
	acct := store.accounts["farmer-1"].Account
	if acct.LoginAttempts != 1 {
		t.Fatalf("LoginAttempts = %d, want 1 after expired lock", acct.LoginAttempts)
	}
	if acct.LockUntil != nil {
		t.Fatal("expired lock should not carry over")
	}

	// And a correct password now succeeds and clears everything.
	if _, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "s3cret"); err != nil {
		t.Fatalf("post-expiry success: %v", err)
	}
	if got := store.accounts["farmer-1"].Account.LoginAttempts; got != 0 {
		t.Fatalf("LoginAttempts = %d, want 0 after success", got)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", false)
	svc := newTestAuthService(store)

	if _, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "s3cret"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("got %v, want ErrAccountDisabled", err)
	}
}

func TestAuthService_Resolve(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	token, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.Role != domain.RoleFarmer || identity.ID != "farmer-1" {
		t.Fatalf("identity = %+v, want farmer-1/farmer", identity)
	}
	if identity.Name != "Asha" || identity.Email != "asha@example.com" {
		t.Fatalf("identity fields = %+v", identity)
	}
}

func TestAuthService_Resolve_DeactivatedAccount(t *testing.T) {
	store := newStubAccountStore()
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	token, _, err := svc.Login(context.Background(), domain.RoleFarmer, "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	store.accounts["farmer-1"].Account.Active = false
	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestAuthService_Resolve_BadToken(t *testing.T) {
	svc := newTestAuthService(newStubAccountStore())

	if _, err := svc.Resolve(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("got %v, want ErrTokenMalformed", err)
	}
}

func TestAuthService_Login_MixedCaseEmail(t *testing.T) {
	store := newStubAccountStore()
	// Accounts are persisted with the canonical lowercase address.
	store.add("farmer-1", "Asha", "asha@example.com", "s3cret", true)
	svc := newTestAuthService(store)

	token, view, err := svc.Login(context.Background(), domain.RoleFarmer, " Asha@Example.COM ", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || view.ID != "farmer-1" {
		t.Fatalf("token = %q, view = %+v", token, view)
	}
}
