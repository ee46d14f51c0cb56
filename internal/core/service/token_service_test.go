package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, role := range domain.Roles {
		token, err := svc.Issue(role, "id-1")
		if err != nil {
			t.Fatalf("Issue(%s) returned error: %v", role, err)
		}

		gotRole, gotID, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify(%s) returned error: %v", role, err)
		}
		if gotRole != role || gotID != "id-1" {
			t.Fatalf("Verify = (%s, %s), want (%s, id-1)", gotRole, gotID, role)
		}
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(domain.RoleFarmer, "farmer-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = time.Now
	if _, _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	if _, _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := signer.Issue(domain.RoleCRP, "crp-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for wrong secret, got %v", err)
	}
}
