package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/japanesestudent/learn-navigator/internal/models"
	"github.com/japanesestudent/learn-navigator/internal/session"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to its HTTP status and sends it
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		h.respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: "SessionNotFound"})
		return
	}

	var navErr *models.NavigationError
	if !errors.As(err, &navErr) {
		h.logger.Error("request failed", zap.Error(err))
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Kind: string(models.ErrorKindUnknownError)})
		return
	}

	status := statusForKind(navErr.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("navigation failed", zap.String("kind", string(navErr.Kind)), zap.Error(err))
	}
	h.respondJSON(w, status, ErrorResponse{Error: navErr.Error(), Kind: string(navErr.Kind)})
}

// statusForKind returns the HTTP status of a navigation error kind
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrorKindInvalidContentType,
		models.ErrorKindInvalidQuestionType,
		models.ErrorKindRouterError:
		return http.StatusBadRequest
	case models.ErrorKindNoNextItem,
		models.ErrorKindNoPreviousItem,
		models.ErrorKindNoNextSubQuiz,
		models.ErrorKindNoPreviousSubQuiz,
		models.ErrorKindNoAdjacentSubQuiz:
		return http.StatusNotFound
	case models.ErrorKindCompletionRequired,
		models.ErrorKindNavigationNotAllowed,
		models.ErrorKindValidationFailed:
		return http.StatusConflict
	case models.ErrorKindFetchError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
