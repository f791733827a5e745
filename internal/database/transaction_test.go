package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	query string
	vars  map[string]interface{}
	err   error
}

func (d *recordingDB) Connect(context.Context) error { return nil }
func (d *recordingDB) Close() error                  { return nil }
func (d *recordingDB) Ping(context.Context) error    { return nil }

func (d *recordingDB) Query(_ context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	d.query, d.vars = query, vars
	return nil, d.err
}

func (d *recordingDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	_, err := d.Query(ctx, query, vars)
	return nil, err
}

func (d *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := d.Query(ctx, query, vars)
	return err
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	m1 := tb.Add("CREATE activity SET name = $name", map[string]interface{}{"name": "Chess Club"})
	m2 := tb.Add("CREATE activity SET name = $name", map[string]interface{}{"name": "Art Club"})

	query, vars := tb.Build()

	assert.NotEqual(t, m1["name"], m2["name"])
	assert.Equal(t, "Chess Club", vars[m1["name"]])
	assert.Equal(t, "Art Club", vars[m2["name"]])
	assert.True(t, strings.HasPrefix(query, "BEGIN TRANSACTION;"))
	assert.True(t, strings.HasSuffix(query, "COMMIT TRANSACTION;"))
	assert.Contains(t, query, "$"+m1["name"])
	assert.Contains(t, query, "$"+m2["name"])
}

func TestTxBuilder_PrefixedVariableNames(t *testing.T) {
	t.Parallel()

	tb := NewTxBuilder()
	m := tb.Add("UPDATE x SET a = $email, b = $email_lower", map[string]interface{}{
		"email":       "A@example.com",
		"email_lower": "a@example.com",
	})

	query, vars := tb.Build()

	assert.Contains(t, query, "a = $"+m["email"]+",")
	assert.Contains(t, query, "b = $"+m["email_lower"]+";")
	assert.Equal(t, "a@example.com", vars[m["email_lower"]])
}

func TestTxBuilder_Empty(t *testing.T) {
	t.Parallel()

	query, vars := NewTxBuilder().Build()
	assert.Empty(t, query)
	assert.Nil(t, vars)
}

func TestAtomicBatch_ExecutesSingleTransaction(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	batch := NewAtomicBatch().
		Add("DELETE activity", nil).
		Add("CREATE activity SET name = $name", map[string]interface{}{"name": "Chess Club"})

	require.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Execute(context.Background(), db))

	assert.Equal(t, 1, strings.Count(db.query, "BEGIN TRANSACTION"))
	assert.Contains(t, db.query, "DELETE activity;")
	assert.Len(t, db.vars, 1)
}

func TestAtomicBatch_EmptyDoesNothing(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	require.NoError(t, NewAtomicBatch().Execute(context.Background(), db))
	assert.Empty(t, db.query)
}

func TestAtomicBatch_PropagatesError(t *testing.T) {
	t.Parallel()

	db := &recordingDB{err: ErrQuery}
	err := NewAtomicBatch().Add("DELETE activity", nil).Execute(context.Background(), db)
	assert.True(t, errors.Is(err, ErrQuery))
}

func TestFirstRecord(t *testing.T) {
	t.Parallel()

	record := map[string]interface{}{"name": "Chess Club"}

	got, err := FirstRecord([]interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{record}},
	})
	require.NoError(t, err)
	assert.Equal(t, record, got)

	_, err = FirstRecord([]interface{}{
		map[string]interface{}{"status": "OK", "result": []interface{}{}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FirstRecord(nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
