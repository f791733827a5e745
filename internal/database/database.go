// Package database provides the storage connections for the sign-up API.
//
// Two backends are supported for sharing the activity directory between
// replicas:
//   - SurrealDB, behind the Database interface (Query/QueryOne/Execute)
//   - Redis, through RedisClient
//
// # Transactions
//
// SurrealDB transactions are BATCH-BASED: statements accumulate in an
// AtomicBatch and are sent wrapped in BEGIN/COMMIT TRANSACTION when Execute
// is called. All statements succeed or fail together.
//
// # Error Handling
//
// Use errors.Is() against the sentinel errors below:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds SurrealDB connection settings
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
