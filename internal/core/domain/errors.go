package domain

import "errors"

// Authentication errors. ErrInvalidCredentials deliberately covers both
// "no such account" and "wrong password" so responses cannot be used to
// enumerate registered emails.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrAccountExists      = errors.New("account with this email or ID already exists")
	ErrTokenMalformed     = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
)

// Record and relationship errors.
var (
	ErrFarmerNotFound     = errors.New("farmer not found")
	ErrCRPNotFound        = errors.New("crp not found")
	ErrExpertNotFound     = errors.New("expert not found")
	ErrSupervisorNotFound = errors.New("supervisor not found")
	ErrTrainingNotFound   = errors.New("training not found")
	ErrProblemNotFound    = errors.New("problem not found")
	ErrTaskNotFound       = errors.New("follow-up task not found")

	ErrAlreadyAssigned  = errors.New("farmer is already assigned")
	ErrNotAssigned      = errors.New("farmer is not assigned")
	ErrCRPAlreadyLinked = errors.New("crp is already linked to another expert")
	ErrExpertLinked     = errors.New("expert already has a linked crp")
	ErrNoLinkedCRP      = errors.New("expert has no linked crp")
	ErrExpertClaimed    = errors.New("expert is already assigned to another supervisor")
	ErrExpertNotUnder   = errors.New("expert is not assigned to this supervisor")

	ErrValidation = errors.New("validation failed")
)
