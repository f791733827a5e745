package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/signup/api/internal/model"
	"github.com/forgo/signup/api/internal/repository"
	"go.uber.org/zap"
)

// DirectoryStore defines the interface for activity roster storage.
// Implementations must apply AddParticipant and RemoveParticipant atomically
// per activity and report outcomes with the repository sentinel errors.
type DirectoryStore interface {
	Seed(ctx context.Context, d model.Directory) error
	List(ctx context.Context) (model.Directory, error)
	Get(ctx context.Context, name string) (*model.Activity, error)
	AddParticipant(ctx context.Context, activity, email string) error
	RemoveParticipant(ctx context.Context, activity, email string) error
	Ping(ctx context.Context) error
}

// RosterRecorder receives successful roster changes (metrics)
type RosterRecorder interface {
	SignedUp(activity string)
	Unregistered(activity string)
}

type nopRecorder struct{}

func (nopRecorder) SignedUp(string)     {}
func (nopRecorder) Unregistered(string) {}

// DirectoryServiceConfig holds the service dependencies
type DirectoryServiceConfig struct {
	Store    DirectoryStore
	Catalog  model.Directory
	Logger   *zap.Logger
	Recorder RosterRecorder
}

// DirectoryService owns the activity directory. It is built once at startup
// and handed to the HTTP handlers.
type DirectoryService struct {
	store    DirectoryStore
	catalog  model.Directory
	logger   *zap.Logger
	recorder RosterRecorder
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(cfg DirectoryServiceConfig) *DirectoryService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var recorder RosterRecorder = nopRecorder{}
	if cfg.Recorder != nil {
		recorder = cfg.Recorder
	}
	return &DirectoryService{
		store:    cfg.Store,
		catalog:  cfg.Catalog,
		logger:   logger.Named("directory"),
		recorder: recorder,
	}
}

// Init loads the catalog into the store, replacing whatever it held
func (s *DirectoryService) Init(ctx context.Context) error {
	if err := s.store.Seed(ctx, s.catalog.Clone()); err != nil {
		return fmt.Errorf("seed directory: %w", err)
	}
	s.logger.Info("directory seeded", zap.Int("activities", len(s.catalog)))
	return nil
}

// ListActivities returns every activity with its current roster
func (s *DirectoryService) ListActivities(ctx context.Context) (model.Directory, error) {
	d, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storeError("list activities", err)
	}
	return d, nil
}

// GetActivity returns a single activity
func (s *DirectoryService) GetActivity(ctx context.Context, name string) (*model.Activity, error) {
	a, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, s.storeError("get activity", err)
	}
	if a == nil {
		return nil, ErrActivityNotFound
	}
	return a, nil
}

// SignUp appends email to the activity roster. The email is stored exactly as
// given; only an empty one is rejected.
func (s *DirectoryService) SignUp(ctx context.Context, activity, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	if err := s.store.AddParticipant(ctx, activity, email); err != nil {
		return s.storeError("sign up", err)
	}

	s.recorder.SignedUp(activity)
	s.logger.Info("participant signed up",
		zap.String("activity", activity),
		zap.String("email", email),
	)
	return nil
}

// Unregister removes email from the activity roster
func (s *DirectoryService) Unregister(ctx context.Context, activity, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	if err := s.store.RemoveParticipant(ctx, activity, email); err != nil {
		return s.storeError("unregister", err)
	}

	s.recorder.Unregistered(activity)
	s.logger.Info("participant unregistered",
		zap.String("activity", activity),
		zap.String("email", email),
	)
	return nil
}

// Ping reports whether the backing store is reachable
func (s *DirectoryService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *DirectoryService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return ErrActivityNotFound
	case errors.Is(err, repository.ErrParticipantExists):
		return ErrAlreadySignedUp
	case errors.Is(err, repository.ErrParticipantNotFound):
		return ErrParticipantNotFound
	}
	s.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
