package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forgo/signup/api/internal/model"
	"github.com/forgo/signup/api/internal/service"
)

// ============================================================================
// Mock ActivityService
// ============================================================================

type mockActivityService struct {
	listFunc       func(ctx context.Context) (model.Directory, error)
	getFunc        func(ctx context.Context, name string) (*model.Activity, error)
	signUpFunc     func(ctx context.Context, activity, email string) error
	unregisterFunc func(ctx context.Context, activity, email string) error
}

func (m *mockActivityService) ListActivities(ctx context.Context) (model.Directory, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return model.Directory{}, nil
}

func (m *mockActivityService) GetActivity(ctx context.Context, name string) (*model.Activity, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, name)
	}
	return nil, service.ErrActivityNotFound
}

func (m *mockActivityService) SignUp(ctx context.Context, activity, email string) error {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, activity, email)
	}
	return nil
}

func (m *mockActivityService) Unregister(ctx context.Context, activity, email string) error {
	if m.unregisterFunc != nil {
		return m.unregisterFunc(ctx, activity, email)
	}
	return nil
}

// serve routes req through a mux so path values are populated
func serve(h *ActivityHandler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", h.List)
	mux.HandleFunc("GET /activities/{activity}", h.Get)
	mux.HandleFunc("POST /activities/{activity}/signup", h.Signup)
	mux.HandleFunc("DELETE /activities/{activity}/participants", h.Unregister)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rr.Body.String(), err)
	}
	return body
}

// ============================================================================
// List
// ============================================================================

func TestList_ReturnsObjectKeyedByName(t *testing.T) {
	t.Parallel()

	svc := &mockActivityService{
		listFunc: func(ctx context.Context) (model.Directory, error) {
			return model.Directory{
				{Name: "Soccer Team", MaxParticipants: 22, Participants: []string{"liam@mergington.edu"}},
				{Name: "Art Club", MaxParticipants: 15},
			}, nil
		},
	}
	h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/activities", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	body := decodeBody(t, rr)
	soccer, ok := body["Soccer Team"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected Soccer Team key, got %v", body)
	}
	if _, ok := soccer["participants"].([]interface{}); !ok {
		t.Errorf("participants should be a list, got %T", soccer["participants"])
	}
	art := body["Art Club"].(map[string]interface{})
	if parts, ok := art["participants"].([]interface{}); !ok || len(parts) != 0 {
		t.Errorf("empty roster should be [], got %v", art["participants"])
	}
}

func TestList_StoreFailure_Returns500(t *testing.T) {
	t.Parallel()

	svc := &mockActivityService{
		listFunc: func(ctx context.Context) (model.Directory, error) {
			return nil, errors.New("connection reset")
		},
	}
	h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/activities", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "connection reset") {
		t.Error("internal error text must not leak to clients")
	}
}

// ============================================================================
// Get
// ============================================================================

func TestGet_DecodesPathValue(t *testing.T) {
	t.Parallel()

	var gotName string
	svc := &mockActivityService{
		getFunc: func(ctx context.Context, name string) (*model.Activity, error) {
			gotName = name
			return &model.Activity{Name: name}, nil
		},
	}
	h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/activities/Chess%20Club", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotName != "Chess Club" {
		t.Errorf("expected decoded name, got %q", gotName)
	}
	body := decodeBody(t, rr)
	if _, ok := body["participants"].([]interface{}); !ok {
		t.Errorf("participants should be a list, got %v", body["participants"])
	}
}

func TestGet_UnknownActivity_Returns404(t *testing.T) {
	t.Parallel()

	h := NewActivityHandler(ActivityHandlerConfig{Service: &mockActivityService{}})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/activities/Knitting%20Circle", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["detail"] != "Activity not found" {
		t.Errorf("unexpected detail: %v", body["detail"])
	}
}

// ============================================================================
// Signup
// ============================================================================

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	var gotActivity, gotEmail string
	svc := &mockActivityService{
		signUpFunc: func(ctx context.Context, activity, email string) error {
			gotActivity, gotEmail = activity, email
			return nil
		},
	}
	h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=pytest-user@example.com", nil)
	rr := serve(h, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotActivity != "Chess Club" || gotEmail != "pytest-user@example.com" {
		t.Errorf("service got (%q, %q)", gotActivity, gotEmail)
	}
	msg, _ := decodeBody(t, rr)["message"].(string)
	if msg != "Signed up pytest-user@example.com for Chess Club" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestSignup_EncodedEmail(t *testing.T) {
	t.Parallel()

	var gotEmail string
	svc := &mockActivityService{
		signUpFunc: func(ctx context.Context, activity, email string) error {
			gotEmail = email
			return nil
		},
	}
	h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

	serve(h, httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=first%2Blast%40example.com", nil))

	if gotEmail != "first+last@example.com" {
		t.Errorf("expected decoded email, got %q", gotEmail)
	}
}

func TestSignup_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"unknown activity", service.ErrActivityNotFound, http.StatusNotFound, "Activity not found"},
		{"already signed up", service.ErrAlreadySignedUp, http.StatusConflict, "Student is already signed up for this activity"},
		{"missing email", service.ErrEmailRequired, http.StatusUnprocessableEntity, "email: email is required"},
		{"store down", service.ErrStoreUnavailable, http.StatusServiceUnavailable, "Activity store is unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockActivityService{
				signUpFunc: func(ctx context.Context, activity, email string) error { return tt.err },
			}
			h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

			rr := serve(h, httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=a@example.com", nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("expected problem+json, got %q", ct)
			}
			if body := decodeBody(t, rr); body["detail"] != tt.wantDetail {
				t.Errorf("expected detail %q, got %v", tt.wantDetail, body["detail"])
			}
		})
	}
}

func TestSignup_WrongMethod_Returns405(t *testing.T) {
	t.Parallel()

	h := NewActivityHandler(ActivityHandlerConfig{Service: &mockActivityService{}})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/activities/Chess%20Club/signup?email=a@example.com", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}

// ============================================================================
// Unregister
// ============================================================================

func TestUnregister_Success(t *testing.T) {
	t.Parallel()

	h := NewActivityHandler(ActivityHandlerConfig{Service: &mockActivityService{}})

	req := httptest.NewRequest(http.MethodDelete, "/activities/Chess%20Club/participants?email=pytest-user@example.com", nil)
	rr := serve(h, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	msg, _ := decodeBody(t, rr)["message"].(string)
	if !strings.Contains(msg, "Unregistered") {
		t.Errorf("expected Unregistered message, got %q", msg)
	}
}

func TestUnregister_ParticipantNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockActivityService{
		unregisterFunc: func(ctx context.Context, activity, email string) error {
			return service.ErrParticipantNotFound
		},
	}
	h := NewActivityHandler(ActivityHandlerConfig{Service: svc})

	req := httptest.NewRequest(http.MethodDelete, "/activities/Art%20Club/participants?email=does-not-exist@example.com", nil)
	rr := serve(h, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	detail, _ := decodeBody(t, rr)["detail"].(string)
	if !strings.Contains(detail, "Participant not found") {
		t.Errorf("expected Participant not found detail, got %q", detail)
	}
}
