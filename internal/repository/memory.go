package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/forgo/signup/api/internal/model"
)

// MemoryDirectory keeps the directory in process memory.
// A single RWMutex guards every roster, so concurrent sign-ups and removals
// never lose updates.
type MemoryDirectory struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*model.Activity
}

// NewMemoryDirectory creates an empty in-memory directory
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{activities: make(map[string]*model.Activity)}
}

// Seed replaces the directory contents
func (r *MemoryDirectory) Seed(_ context.Context, d model.Directory) error {
	order := make([]string, 0, len(d))
	activities := make(map[string]*model.Activity, len(d))
	for _, a := range d {
		c := a.Clone()
		activities[a.Name] = &c
		order = append(order, a.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = order
	r.activities = activities
	return nil
}

// List returns a snapshot of every activity in catalog order
func (r *MemoryDirectory) List(_ context.Context) (model.Directory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(model.Directory, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.activities[name].Clone())
	}
	return out, nil
}

// Get returns a snapshot of one activity, or nil if it does not exist
func (r *MemoryDirectory) Get(_ context.Context, name string) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, nil
	}
	c := a.Clone()
	return &c, nil
}

// AddParticipant appends email to the roster
func (r *MemoryDirectory) AddParticipant(_ context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activity]
	if !ok {
		return ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return ErrParticipantExists
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// RemoveParticipant drops email from the roster, keeping the order of the rest
func (r *MemoryDirectory) RemoveParticipant(_ context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activity]
	if !ok {
		return ErrActivityNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return ErrParticipantNotFound
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return nil
}

// Ping always succeeds
func (r *MemoryDirectory) Ping(_ context.Context) error {
	return nil
}
