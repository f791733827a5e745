package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/forgo/signup/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// directoryStore is the behavior every backend shares
type directoryStore interface {
	Seed(ctx context.Context, d model.Directory) error
	List(ctx context.Context) (model.Directory, error)
	Get(ctx context.Context, name string) (*model.Activity, error)
	AddParticipant(ctx context.Context, activity, email string) error
	RemoveParticipant(ctx context.Context, activity, email string) error
	Ping(ctx context.Context) error
}

func seedDirectory() model.Directory {
	return model.Directory{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and mixed media",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
		},
	}
}

// runStoreSuite exercises the roster contract against a freshly seeded store
func runStoreSuite(t *testing.T, newStore func(t *testing.T) directoryStore) {
	ctx := context.Background()

	t.Run("list keeps catalog order and metadata", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		d, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"Chess Club", "Art Club"}, d.Names())

		assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", d[0].Schedule)
		assert.Equal(t, 12, d[0].MaxParticipants)
		assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, d[0].Participants)
		assert.NotNil(t, d[1].Participants)
		assert.Empty(t, d[1].Participants)
	})

	t.Run("get unknown activity returns nil", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		a, err := s.Get(ctx, "Knitting Circle")
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("add appends in order", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		require.NoError(t, s.AddParticipant(ctx, "Chess Club", "pytest-user@example.com"))

		a, err := s.Get(ctx, "Chess Club")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "pytest-user@example.com"}, a.Participants)
	})

	t.Run("add rejects duplicate", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		err := s.AddParticipant(ctx, "Chess Club", "michael@mergington.edu")
		assert.ErrorIs(t, err, ErrParticipantExists)
	})

	t.Run("add to unknown activity", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		err := s.AddParticipant(ctx, "Knitting Circle", "a@example.com")
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("remove drops only that participant", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		require.NoError(t, s.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu"))

		a, err := s.Get(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Equal(t, []string{"daniel@mergington.edu"}, a.Participants)
	})

	t.Run("remove missing participant leaves rosters alone", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		err := s.RemoveParticipant(ctx, "Art Club", "does-not-exist@example.com")
		assert.ErrorIs(t, err, ErrParticipantNotFound)

		d, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, d[0].Participants, 2)
		assert.Empty(t, d[1].Participants)
	})

	t.Run("remove from unknown activity", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))

		err := s.RemoveParticipant(ctx, "Knitting Circle", "a@example.com")
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("reseed replaces previous state", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, seedDirectory()))
		require.NoError(t, s.AddParticipant(ctx, "Art Club", "a@example.com"))

		require.NoError(t, s.Seed(ctx, model.Directory{{Name: "Book Club"}}))

		d, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Book Club"}, d.Names())

		a, err := s.Get(ctx, "Art Club")
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}

func runConcurrencySuite(t *testing.T, s directoryStore) {
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, model.Directory{{Name: "Chess Club"}}))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// everyone signs up twice; exactly one of each pair must win
			email := fmt.Sprintf("student%d@example.com", i)
			_ = s.AddParticipant(ctx, "Chess Club", email)
			_ = s.AddParticipant(ctx, "Chess Club", email)
		}(i)
	}
	wg.Wait()

	a, err := s.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Len(t, a.Participants, n)
}
