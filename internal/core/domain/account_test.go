package domain

import (
	"testing"
	"time"
)

func TestAccount_RecordFailure_LocksOnFifthAttempt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	acct := Account{Active: true}

	for i := 0; i < MaxLoginAttempts-1; i++ {
		acct.RecordFailure(now)
		if acct.LockUntil != nil {
			t.Fatalf("locked after %d attempts, want none before %d", i+1, MaxLoginAttempts)
		}
	}

	acct.RecordFailure(now)
	if acct.LoginAttempts != MaxLoginAttempts {
		t.Fatalf("LoginAttempts = %d, want %d", acct.LoginAttempts, MaxLoginAttempts)
	}
	if acct.LockUntil == nil {
		t.Fatal("expected lock after fifth failure")
	}
	if got, want := *acct.LockUntil, now.Add(LockDuration); !got.Equal(want) {
		t.Fatalf("LockUntil = %v, want %v", got, want)
	}
	if !acct.Locked(now) {
		t.Fatal("account should report locked inside the window")
	}
}

func TestAccount_Locked_WindowExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(LockDuration)
	acct := Account{LoginAttempts: MaxLoginAttempts, LockUntil: &until}

	if !acct.Locked(now.Add(LockDuration - time.Second)) {
		t.Fatal("should be locked just before expiry")
	}
	if acct.Locked(now.Add(LockDuration)) {
		t.Fatal("should be unlocked at expiry instant")
	}
}

func TestAccount_RecordFailure_AfterExpiredLockRestartsCount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(-time.Minute)
	acct := Account{LoginAttempts: MaxLoginAttempts, LockUntil: &until}

	acct.RecordFailure(now)
	if acct.LoginAttempts != 1 {
		t.Fatalf("LoginAttempts = %d, want 1 after expired lock", acct.LoginAttempts)
	}
	if acct.LockUntil != nil {
		t.Fatal("expired lock should be cleared, not renewed")
	}
}

func TestAccount_RecordSuccess_ResetsEverything(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(-time.Minute)
	acct := Account{LoginAttempts: 3, LockUntil: &until}

	acct.RecordSuccess(now)
	if acct.LoginAttempts != 0 {
		t.Fatalf("LoginAttempts = %d, want 0", acct.LoginAttempts)
	}
	if acct.LockUntil != nil {
		t.Fatal("lock should be cleared on success")
	}
	if acct.LastLogin == nil || !acct.LastLogin.Equal(now) {
		t.Fatalf("LastLogin = %v, want %v", acct.LastLogin, now)
	}
}
