package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/japanesestudent/learn-navigator/internal/metrics"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

const maxErrorBodySize = 64 * 1024

// BackendError is returned when the learning backend answers with a non-2xx status
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

// TokenSource returns the learner's bearer token for an outgoing request
type TokenSource func(ctx context.Context) string

type backendClient struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *zap.Logger
}

// NewBackendClient creates a client of the learning backend REST API.
//
// It serves as the content repository and the remote action capability of the navigators.
// token may be nil, in which case no Authorization header is sent.
func NewBackendClient(baseURL string, timeout time.Duration, token TokenSource, logger *zap.Logger) *backendClient {
	return &backendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
		logger:     logger,
	}
}

// ListCategoryItems retrieves every content item of a category with the learner's progress
func (c *backendClient) ListCategoryItems(ctx context.Context, categoryID string) ([]models.CategoryContentItem, error) {
	var items []models.CategoryContentItem
	path := fmt.Sprintf("/categories/%s/items", url.PathEscape(categoryID))
	if err := c.do(ctx, http.MethodGet, path, &items); err != nil {
		return nil, fmt.Errorf("failed to list category items: %w", err)
	}
	return items, nil
}

// ListSubQuizzes retrieves every sub-quiz of a quiz with the learner's progress
func (c *backendClient) ListSubQuizzes(ctx context.Context, categoryID, quizID string) ([]models.SubQuiz, error) {
	var subQuizzes []models.SubQuiz
	path := fmt.Sprintf("/categories/%s/quizzes/%s/sub-quizzes", url.PathEscape(categoryID), url.PathEscape(quizID))
	if err := c.do(ctx, http.MethodGet, path, &subQuizzes); err != nil {
		return nil, fmt.Errorf("failed to list sub-quizzes: %w", err)
	}
	return subQuizzes, nil
}

// StartSkill marks a skill as started for the learner
func (c *backendClient) StartSkill(ctx context.Context, categoryID, skillID string) error {
	path := fmt.Sprintf("/categories/%s/skills/%s/start", url.PathEscape(categoryID), url.PathEscape(skillID))
	if err := c.do(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to start skill: %w", err)
	}
	return nil
}

// StartQuiz marks a quiz as started for the learner
func (c *backendClient) StartQuiz(ctx context.Context, categoryID, quizID string) error {
	path := fmt.Sprintf("/categories/%s/quizzes/%s/start", url.PathEscape(categoryID), url.PathEscape(quizID))
	if err := c.do(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to start quiz: %w", err)
	}
	return nil
}

// StartChoiceQuestion marks a choice question of a quiz as started
func (c *backendClient) StartChoiceQuestion(ctx context.Context, categoryID, quizID, questionID string) error {
	path := fmt.Sprintf("/categories/%s/quizzes/%s/choice-questions/%s/start",
		url.PathEscape(categoryID), url.PathEscape(quizID), url.PathEscape(questionID))
	if err := c.do(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to start choice question: %w", err)
	}
	return nil
}

// StartSequenceOrder marks a sequence order question of a quiz as started
func (c *backendClient) StartSequenceOrder(ctx context.Context, categoryID, quizID, questionID string) error {
	path := fmt.Sprintf("/categories/%s/quizzes/%s/sequence-orders/%s/start",
		url.PathEscape(categoryID), url.PathEscape(quizID), url.PathEscape(questionID))
	if err := c.do(ctx, http.MethodPost, path, nil); err != nil {
		return fmt.Errorf("failed to start sequence order: %w", err)
	}
	return nil
}

// do sends a request and decodes a successful JSON response into out when out is not nil
func (c *backendClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackendRequest(method, "error", time.Since(start))
		c.logger.Error("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()
	metrics.ObserveBackendRequest(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		backendErr := &BackendError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.logger.Warn("backend responded with error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", backendErr.Message),
		)
		return backendErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts the "error" field of a JSON error body or falls back to the raw body
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
