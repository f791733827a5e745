// Package repository implements activity directory storage for the sign-up API.
//
// Three stores satisfy service.DirectoryStore:
//
//   - MemoryDirectory keeps the directory in process behind a RWMutex
//   - RedisDirectory keeps metadata in hashes and rosters in lists, and
//     changes rosters with Lua scripts so each change is atomic
//   - SurrealDirectory keeps one record per activity in SurrealDB and changes
//     rosters with conditional UPDATE statements
//
// # Roster Semantics
//
// Rosters preserve insertion order. AddParticipant appends and refuses an
// email already present; RemoveParticipant deletes the first occurrence.
// Every store reports outcomes with the sentinel errors in errors.go:
//
//	if errors.Is(err, repository.ErrParticipantNotFound) {
//	    // email was not on the roster; nothing changed
//	}
//
// # Seeding
//
// Seed replaces the whole directory. It runs once at startup with the
// configured catalog.
package repository
