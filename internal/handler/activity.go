package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/forgo/signup/api/internal/model"
	"go.uber.org/zap"
)

// ActivityService is the directory behavior the handler needs
type ActivityService interface {
	ListActivities(ctx context.Context) (model.Directory, error)
	GetActivity(ctx context.Context, name string) (*model.Activity, error)
	SignUp(ctx context.Context, activity, email string) error
	Unregister(ctx context.Context, activity, email string) error
}

// ActivityHandlerConfig holds the handler dependencies
type ActivityHandlerConfig struct {
	Service ActivityService
	Logger  *zap.Logger
}

// ActivityHandler handles activity directory endpoints
type ActivityHandler struct {
	service ActivityService
	logger  *zap.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(cfg ActivityHandlerConfig) *ActivityHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityHandler{
		service: cfg.Service,
		logger:  logger,
	}
}

// List handles GET /activities - every activity keyed by name
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		h.handleError(w, r, err, "list activities")
		return
	}

	WriteJSON(w, http.StatusOK, activities)
}

// Get handles GET /activities/{activity}
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity, err := h.service.GetActivity(r.Context(), r.PathValue("activity"))
	if err != nil {
		h.handleError(w, r, err, "get activity")
		return
	}

	if activity.Participants == nil {
		activity.Participants = []string{}
	}
	WriteJSON(w, http.StatusOK, activity)
}

// Signup handles POST /activities/{activity}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("activity")
	email := r.URL.Query().Get("email")

	if err := h.service.SignUp(r.Context(), name, email); err != nil {
		h.handleError(w, r, err, "sign up")
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("Signed up %s for %s", email, name))
}

// Unregister handles DELETE /activities/{activity}/participants?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("activity")
	email := r.URL.Query().Get("email")

	if err := h.service.Unregister(r.Context(), name, email); err != nil {
		h.handleError(w, r, err, "unregister")
		return
	}

	WriteMessage(w, http.StatusOK, fmt.Sprintf("Unregistered %s from %s", email, name))
}

func (h *ActivityHandler) handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("operation", operation),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	WriteError(w, pd)
}
