package domain

import "time"

const (
	// MaxLoginAttempts is the number of consecutive failures that locks an account.
	MaxLoginAttempts = 5
	// LockDuration is how long a locked account rejects all login attempts.
	LockDuration = 2 * time.Hour
)

// Account holds the credential and lockout fields shared by every actor kind.
// It is embedded in each role's record and persisted alongside the profile.
type Account struct {
	Email         string     `json:"email" bson:"email"`
	PasswordHash  string     `json:"-" bson:"password"`
	Active        bool       `json:"is_active" bson:"is_active"`
	LastLogin     *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	LoginAttempts int        `json:"-" bson:"login_attempts"`
	LockUntil     *time.Time `json:"-" bson:"lock_until,omitempty"`
}

// Locked reports whether the account is inside its lockout window.
func (a *Account) Locked(now time.Time) bool {
	return a.LockUntil != nil && now.Before(*a.LockUntil)
}

// RecordFailure applies one failed login attempt.
//
// A lock that has already expired restarts the counter at 1. Otherwise the
// counter increments, and reaching MaxLoginAttempts starts a LockDuration
// lockout window. Calling this while still locked is a programming error;
// callers must reject locked accounts before verifying the password.
func (a *Account) RecordFailure(now time.Time) {
	if a.LockUntil != nil && !now.Before(*a.LockUntil) {
		a.LockUntil = nil
		a.LoginAttempts = 1
		return
	}
	a.LoginAttempts++
	if a.LoginAttempts >= MaxLoginAttempts && !a.Locked(now) {
		until := now.Add(LockDuration)
		a.LockUntil = &until
	}
}

// RecordSuccess resets the failure counter, clears any lock, and stamps the
// last-login time.
func (a *Account) RecordSuccess(now time.Time) {
	a.LoginAttempts = 0
	a.LockUntil = nil
	a.LastLogin = &now
}
