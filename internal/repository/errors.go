package repository

import "errors"

// Roster outcomes every DirectoryStore reports the same way
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrParticipantExists   = errors.New("participant already on roster")
	ErrParticipantNotFound = errors.New("participant not on roster")
)
