package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Directory Errors =====
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadySignedUp     = errors.New("student is already signed up for this activity")
)

// ===== Input Errors =====
var (
	ErrEmailRequired = errors.New("email is required")
)

// ===== Store Errors =====
var (
	ErrStoreUnavailable = errors.New("activity store unavailable")
)
