package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"github.com/japanesestudent/learn-navigator/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockNavigationService is a mock implementation of NavigationService
type mockNavigationService struct {
	resp   *models.SessionResponse
	events []models.NavigationEvent
	err    error
	calls  []string
	page   int
	count  int
}

func (m *mockNavigationService) result(call string) (*models.SessionResponse, error) {
	m.calls = append(m.calls, call)
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockNavigationService) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	return m.result("create:" + req.CategoryID + "/" + req.CategoryItemID)
}

func (m *mockNavigationService) GetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	return m.result("get:" + id)
}

func (m *mockNavigationService) DeleteSession(ctx context.Context, id string) error {
	_, err := m.result("delete:" + id)
	return err
}

func (m *mockNavigationService) SelectItem(ctx context.Context, id, categoryItemID string) (*models.SessionResponse, error) {
	return m.result("select:" + id + "/" + categoryItemID)
}

func (m *mockNavigationService) NavigateItem(ctx context.Context, id string, direction models.Direction) (*models.SessionResponse, error) {
	return m.result("item:" + id + "/" + string(direction))
}

func (m *mockNavigationService) NavigateSubQuiz(ctx context.Context, id string, direction models.Direction) (*models.SessionResponse, error) {
	return m.result("sub_quiz:" + id + "/" + string(direction))
}

func (m *mockNavigationService) JumpToFirstSubQuiz(ctx context.Context, id string) (*models.SessionResponse, error) {
	return m.result("sub_quiz:" + id + "/first")
}

func (m *mockNavigationService) JumpToLastSubQuiz(ctx context.Context, id string) (*models.SessionResponse, error) {
	return m.result("sub_quiz:" + id + "/last")
}

func (m *mockNavigationService) GetHistory(ctx context.Context, id string, page, count int) ([]models.NavigationEvent, error) {
	m.calls = append(m.calls, "history:"+id)
	m.page, m.count = page, count
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func setupRouter(svc NavigationService) chi.Router {
	r := chi.NewRouter()
	NewNavigationHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestNavigationHandler_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedCall   string
	}{
		{name: "create session", method: http.MethodPost, path: "/sessions", body: `{"categoryId":"cat-1","categoryItemId":"ci-1"}`, expectedStatus: http.StatusCreated, expectedCall: "create:cat-1/ci-1"},
		{name: "get session", method: http.MethodGet, path: "/sessions/s-1", expectedStatus: http.StatusOK, expectedCall: "get:s-1"},
		{name: "delete session", method: http.MethodDelete, path: "/sessions/s-1", expectedStatus: http.StatusNoContent, expectedCall: "delete:s-1"},
		{name: "select item", method: http.MethodPost, path: "/sessions/s-1/items/select", body: `{"categoryItemId":"ci-3"}`, expectedStatus: http.StatusOK, expectedCall: "select:s-1/ci-3"},
		{name: "next item", method: http.MethodPost, path: "/sessions/s-1/items/next", expectedStatus: http.StatusOK, expectedCall: "item:s-1/next"},
		{name: "previous item", method: http.MethodPost, path: "/sessions/s-1/items/previous", expectedStatus: http.StatusOK, expectedCall: "item:s-1/previous"},
		{name: "next sub-quiz", method: http.MethodPost, path: "/sessions/s-1/sub-quizzes/next", expectedStatus: http.StatusOK, expectedCall: "sub_quiz:s-1/next"},
		{name: "previous sub-quiz", method: http.MethodPost, path: "/sessions/s-1/sub-quizzes/previous", expectedStatus: http.StatusOK, expectedCall: "sub_quiz:s-1/previous"},
		{name: "first sub-quiz", method: http.MethodPost, path: "/sessions/s-1/sub-quizzes/first", expectedStatus: http.StatusOK, expectedCall: "sub_quiz:s-1/first"},
		{name: "last sub-quiz", method: http.MethodPost, path: "/sessions/s-1/sub-quizzes/last", expectedStatus: http.StatusOK, expectedCall: "sub_quiz:s-1/last"},
		{name: "history", method: http.MethodGet, path: "/sessions/s-1/history", expectedStatus: http.StatusOK, expectedCall: "history:s-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNavigationService{
				resp:   &models.SessionResponse{ID: "s-1", CategoryID: "cat-1"},
				events: []models.NavigationEvent{},
			}
			router := setupRouter(svc)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, []string{tt.expectedCall}, svc.calls)
		})
	}
}

func TestNavigationHandler_InvalidRequests(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "create with malformed body", method: http.MethodPost, path: "/sessions", body: "{broken", expectedStatus: http.StatusBadRequest},
		{name: "create without category", method: http.MethodPost, path: "/sessions", body: `{"categoryId":"  "}`, expectedStatus: http.StatusBadRequest},
		{name: "select without item", method: http.MethodPost, path: "/sessions/s-1/items/select", body: `{}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown item command", method: http.MethodPost, path: "/sessions/s-1/items/sideways", expectedStatus: http.StatusNotFound},
		{name: "unknown sub-quiz command", method: http.MethodPost, path: "/sessions/s-1/sub-quizzes/middle", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNavigationService{}
			router := setupRouter(svc)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestNavigationHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedKind   string
	}{
		{name: "session not found", err: fmt.Errorf("lookup: %w", session.ErrSessionNotFound), expectedStatus: http.StatusNotFound, expectedKind: "SessionNotFound"},
		{name: "completion required", err: models.NewNavigationError(models.ErrorKindCompletionRequired, "complete the item first"), expectedStatus: http.StatusConflict, expectedKind: "CompletionRequired"},
		{name: "navigation not allowed", err: models.NewNavigationError(models.ErrorKindNavigationNotAllowed, "not allowed"), expectedStatus: http.StatusConflict, expectedKind: "NavigationNotAllowed"},
		{name: "validation failed", err: models.NewNavigationError(models.ErrorKindValidationFailed, "locked"), expectedStatus: http.StatusConflict, expectedKind: "ValidationFailed"},
		{name: "invalid content type", err: models.NewNavigationError(models.ErrorKindInvalidContentType, "not a quiz"), expectedStatus: http.StatusBadRequest, expectedKind: "InvalidContentType"},
		{name: "invalid question type", err: models.NewNavigationError(models.ErrorKindInvalidQuestionType, "matching"), expectedStatus: http.StatusBadRequest, expectedKind: "InvalidQuestionType"},
		{name: "no previous sub-quiz", err: models.NewNavigationError(models.ErrorKindNoPreviousSubQuiz, "first"), expectedStatus: http.StatusNotFound, expectedKind: "NoPreviousSubQuiz"},
		{name: "no adjacent sub-quiz", err: models.NewNavigationError(models.ErrorKindNoAdjacentSubQuiz, "last"), expectedStatus: http.StatusNotFound, expectedKind: "NoAdjacentSubQuiz"},
		{name: "fetch error", err: models.WrapNavigationError(models.ErrorKindFetchError, "backend", errors.New("timeout")), expectedStatus: http.StatusBadGateway, expectedKind: "FetchError"},
		{name: "no strategy found", err: models.NewNavigationError(models.ErrorKindNoStrategyFound, "missing"), expectedStatus: http.StatusInternalServerError, expectedKind: "NoStrategyFound"},
		{name: "plain error", err: errors.New("redis down"), expectedStatus: http.StatusInternalServerError, expectedKind: "UnknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&mockNavigationService{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/sessions/s-1/sub-quizzes/next", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedKind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestNavigationHandler_SessionBody(t *testing.T) {
	svc := &mockNavigationService{resp: &models.SessionResponse{
		ID:           "s-1",
		CategoryID:   "cat-1",
		Availability: models.Availability{CanNavigateNext: true},
		QuizStep:     models.QuizStepWelcome,
	}}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/s-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "s-1", body.ID)
	assert.True(t, body.Availability.CanNavigateNext)
	assert.Equal(t, models.QuizStepWelcome, body.QuizStep)
}

func TestNavigationHandler_HistoryPagination(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedCount int
	}{
		{name: "defaults", query: "", expectedPage: 1, expectedCount: 20},
		{name: "explicit", query: "?page=3&count=5", expectedPage: 3, expectedCount: 5},
		{name: "count capped", query: "?count=500", expectedPage: 1, expectedCount: 100},
		{name: "invalid values ignored", query: "?page=-1&count=abc", expectedPage: 1, expectedCount: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNavigationService{events: []models.NavigationEvent{{ID: 1}}}
			router := setupRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/sessions/s-1/history"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedPage, svc.page)
			assert.Equal(t, tt.expectedCount, svc.count)
		})
	}
}

func TestNavigationHandler_HistoryUnknownSession(t *testing.T) {
	svc := &mockNavigationService{err: session.ErrSessionNotFound}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SessionNotFound", resp.Kind)
	assert.Equal(t, []string{"history:missing"}, svc.calls)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		dependencies   map[string]Pinger
		expectedStatus int
	}{
		{name: "no dependencies", dependencies: nil, expectedStatus: http.StatusOK},
		{
			name: "healthy",
			dependencies: map[string]Pinger{
				"database": PingFunc(func(ctx context.Context) error { return nil }),
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unhealthy",
			dependencies: map[string]Pinger{
				"database": PingFunc(func(ctx context.Context) error { return nil }),
				"redis":    PingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.dependencies, zap.NewNop())

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
