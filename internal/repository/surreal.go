package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/signup/api/internal/database"
	"github.com/forgo/signup/api/internal/model"
)

const activityFields = `name, description, schedule, max_participants, participants`

// SurrealDirectory stores the directory as `activity` records in SurrealDB.
// Roster changes are single conditional UPDATE statements, so the existence
// and duplicate checks happen atomically with the write.
type SurrealDirectory struct {
	db database.Database
}

// NewSurrealDirectory creates a SurrealDB-backed directory
func NewSurrealDirectory(db database.Database) *SurrealDirectory {
	return &SurrealDirectory{db: db}
}

// Seed deletes every activity record and recreates the catalog in one transaction
func (r *SurrealDirectory) Seed(ctx context.Context, d model.Directory) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE activity`, nil)

	for i, a := range d {
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		batch.Add(`
			CREATE activity SET
				name = $name,
				description = $description,
				schedule = $schedule,
				max_participants = $max_participants,
				participants = $participants,
				position = $position
		`, map[string]interface{}{
			"name":             a.Name,
			"description":      a.Description,
			"schedule":         a.Schedule,
			"max_participants": a.MaxParticipants,
			"participants":     participants,
			"position":         i,
		})
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	return nil
}

// List returns every activity ordered by catalog position
func (r *SurrealDirectory) List(ctx context.Context) (model.Directory, error) {
	query := `SELECT ` + activityFields + `, position FROM activity ORDER BY position`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows, _ := extractQueryResults(result)
	out := make(model.Directory, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, activityFromRecord(data))
	}
	return out, nil
}

// Get returns one activity, or nil if it does not exist
func (r *SurrealDirectory) Get(ctx context.Context, name string) (*model.Activity, error) {
	query := `SELECT ` + activityFields + ` FROM activity WHERE name = $name LIMIT 1`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	a := activityFromRecord(data)
	return &a, nil
}

// AddParticipant appends email unless it is already on the roster
func (r *SurrealDirectory) AddParticipant(ctx context.Context, activity, email string) error {
	query := `
		UPDATE activity SET participants = array::append(participants, $email)
		WHERE name = $name AND $email NOTINSIDE participants
		RETURN AFTER
	`
	vars := map[string]interface{}{"name": activity, "email": email}

	updated, err := r.update(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	if updated {
		return nil
	}
	return r.explainMiss(ctx, activity, ErrParticipantExists)
}

// RemoveParticipant removes email if it is on the roster
func (r *SurrealDirectory) RemoveParticipant(ctx context.Context, activity, email string) error {
	query := `
		UPDATE activity SET participants -= $email
		WHERE name = $name AND $email INSIDE participants
		RETURN AFTER
	`
	vars := map[string]interface{}{"name": activity, "email": email}

	updated, err := r.update(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	if updated {
		return nil
	}
	return r.explainMiss(ctx, activity, ErrParticipantNotFound)
}

// Ping checks the database connection
func (r *SurrealDirectory) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// update runs a conditional UPDATE and reports whether any record matched
func (r *SurrealDirectory) update(ctx context.Context, query string, vars map[string]interface{}) (bool, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}
	rows, _ := extractQueryResults(result)
	return len(rows) > 0, nil
}

// explainMiss tells an unknown activity apart from a failed roster condition
func (r *SurrealDirectory) explainMiss(ctx context.Context, activity string, rosterErr error) error {
	a, err := r.Get(ctx, activity)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrActivityNotFound
	}
	return rosterErr
}

func activityFromRecord(data map[string]interface{}) model.Activity {
	return model.Activity{
		Name:            getString(data, "name"),
		Description:     getString(data, "description"),
		Schedule:        getString(data, "schedule"),
		MaxParticipants: getInt(data, "max_participants"),
		Participants:    getStringSlice(data, "participants"),
	}
}
