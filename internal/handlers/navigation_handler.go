package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

const maxHistoryCount = 100

// NavigationService is the interface that wraps methods for navigation session business logic
type NavigationService interface {
	// CreateSession opens a session on a category.
	//
	// The item named by "req.CategoryItemID" is selected, or the first item of the category when it is empty.
	// If the item can not be selected, a NavigationError will be returned.
	CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error)
	// GetSession returns the session with its selection reloaded.
	GetSession(ctx context.Context, id string) (*models.SessionResponse, error)
	// DeleteSession closes the session.
	DeleteSession(ctx context.Context, id string) error
	// SelectItem selects a content item of the session's category directly.
	SelectItem(ctx context.Context, id, categoryItemID string) (*models.SessionResponse, error)
	// NavigateItem moves the session to the next or previous content item.
	NavigateItem(ctx context.Context, id string, direction models.Direction) (*models.SessionResponse, error)
	// NavigateSubQuiz moves the session to the next or previous sub-quiz of the selected quiz.
	NavigateSubQuiz(ctx context.Context, id string, direction models.Direction) (*models.SessionResponse, error)
	// JumpToFirstSubQuiz selects the first sub-quiz of the selected quiz.
	JumpToFirstSubQuiz(ctx context.Context, id string) (*models.SessionResponse, error)
	// JumpToLastSubQuiz selects the last sub-quiz of the selected quiz.
	JumpToLastSubQuiz(ctx context.Context, id string) (*models.SessionResponse, error)
	// GetHistory returns a page of the session's navigation events, newest first.
	GetHistory(ctx context.Context, id string, page, count int) ([]models.NavigationEvent, error)
}

// NavigationHandler handles navigation session requests
type NavigationHandler struct {
	BaseHandler
	service NavigationService
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(service NavigationService, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers navigation handler routes
func (h *NavigationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Get("/history", h.GetHistory)
			r.Post("/items/select", h.SelectItem)
			r.Post("/items/{direction}", h.NavigateItem)
			r.Post("/sub-quizzes/{direction}", h.NavigateSubQuiz)
		})
	})
}

// CreateSession handles POST /sessions
// @Summary Open navigation session
// @Description Open a navigation session on a category. The given item, or the first item of the category, is selected.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateSessionRequest true "Session creation request"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Category has no items"
// @Failure 409 {object} ErrorResponse "Item is locked or does not belong to the category"
// @Failure 502 {object} ErrorResponse "Learning backend is unavailable"
// @Router /sessions [post]
func (h *NavigationHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.CategoryItemID = strings.TrimSpace(req.CategoryItemID)
	if req.CategoryID == "" {
		h.respondError(w, http.StatusBadRequest, "categoryId is required")
		return
	}

	resp, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

// GetSession handles GET /sessions/{sessionId}
// @Summary Get navigation session
// @Description Get the session with its current selection, available navigation and quiz step
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 502 {object} ErrorResponse "Learning backend is unavailable"
// @Router /sessions/{sessionId} [get]
func (h *NavigationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetSession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /sessions/{sessionId}
// @Summary Close navigation session
// @Tags sessions
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /sessions/{sessionId} [delete]
func (h *NavigationHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SelectItem handles POST /sessions/{sessionId}/items/select
// @Summary Select content item
// @Description Select a content item of the session's category directly. Locked items can not be selected.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param request body models.SelectItemRequest true "Item selection request"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 409 {object} ErrorResponse "Item is locked or does not belong to the category"
// @Failure 502 {object} ErrorResponse "Learning backend is unavailable"
// @Router /sessions/{sessionId}/items/select [post]
func (h *NavigationHandler) SelectItem(w http.ResponseWriter, r *http.Request) {
	var req models.SelectItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.CategoryItemID = strings.TrimSpace(req.CategoryItemID)
	if req.CategoryItemID == "" {
		h.respondError(w, http.StatusBadRequest, "categoryItemId is required")
		return
	}

	resp, err := h.service.SelectItem(r.Context(), chi.URLParam(r, "sessionId"), req.CategoryItemID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// NavigateItem handles POST /sessions/{sessionId}/items/{direction}
// @Summary Navigate between content items
// @Description Move to the next or previous content item. Moving forward requires the current item to be completed and starts the next item when it has no progress yet.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param direction path string true "Direction" Enums(next, previous)
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse "Unsupported direction or content type"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 409 {object} ErrorResponse "Current item is not completed"
// @Failure 502 {object} ErrorResponse "Learning backend is unavailable or there is no adjacent item"
// @Router /sessions/{sessionId}/items/{direction} [post]
func (h *NavigationHandler) NavigateItem(w http.ResponseWriter, r *http.Request) {
	direction, ok := parseDirection(chi.URLParam(r, "direction"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "unknown navigation command")
		return
	}

	resp, err := h.service.NavigateItem(r.Context(), chi.URLParam(r, "sessionId"), direction)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// NavigateSubQuiz handles POST /sessions/{sessionId}/sub-quizzes/{direction}
// @Summary Navigate between sub-quizzes
// @Description Move to the next or previous sub-quiz of the selected quiz, or jump to the first or last one. Moving forward requires the current sub-quiz to be completed.
// @Tags sub-quizzes
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param direction path string true "Direction" Enums(next, previous, first, last)
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse "Selected item is not a quiz or question type is not supported"
// @Failure 404 {object} ErrorResponse "Session or adjacent sub-quiz not found"
// @Failure 409 {object} ErrorResponse "Current sub-quiz is not completed"
// @Failure 502 {object} ErrorResponse "Learning backend is unavailable"
// @Router /sessions/{sessionId}/sub-quizzes/{direction} [post]
func (h *NavigationHandler) NavigateSubQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionId")

	var (
		resp *models.SessionResponse
		err  error
	)
	switch command := chi.URLParam(r, "direction"); command {
	case "first":
		resp, err = h.service.JumpToFirstSubQuiz(ctx, sessionID)
	case "last":
		resp, err = h.service.JumpToLastSubQuiz(ctx, sessionID)
	default:
		direction, ok := parseDirection(command)
		if !ok {
			h.respondError(w, http.StatusNotFound, "unknown navigation command")
			return
		}
		resp, err = h.service.NavigateSubQuiz(ctx, sessionID, direction)
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /sessions/{sessionId}/history
// @Summary Get navigation history
// @Description Get the navigation attempts of the session, newest first
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 20, max: 100)"
// @Success 200 {array} models.NavigationEvent
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /sessions/{sessionId}/history [get]
func (h *NavigationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	page := 1
	count := 20

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = min(c, maxHistoryCount)
		}
	}

	events, err := h.service.GetHistory(r.Context(), chi.URLParam(r, "sessionId"), page, count)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, events)
}

func parseDirection(value string) (models.Direction, bool) {
	switch models.Direction(value) {
	case models.DirectionNext:
		return models.DirectionNext, true
	case models.DirectionPrevious:
		return models.DirectionPrevious, true
	default:
		return "", false
	}
}
