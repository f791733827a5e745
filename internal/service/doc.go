// Package service implements the business logic layer for the sign-up API.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with input validation
//   - Errors are returned as sentinel errors defined in errors.go
//   - Context is passed through for cancellation and request-scoped values
//
// # Store Interfaces
//
// Services declare the storage interface they need (DirectoryStore), so the
// in-memory, Redis and SurrealDB implementations in the repository package are
// interchangeable and tests can substitute a mock.
//
// # Example Usage
//
//	svc := NewDirectoryService(DirectoryServiceConfig{
//	    Store:   repository.NewMemoryDirectory(),
//	    Catalog: catalog.Default(),
//	    Logger:  logger,
//	})
//	if err := svc.Init(ctx); err != nil { ... }
//	err := svc.SignUp(ctx, "Chess Club", "student@example.com")
package service
