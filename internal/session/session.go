// Package session drives navigation for one learner session: it loads the
// content chains, calls the item and sub-quiz navigators and commits the
// resulting selection.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/japanesestudent/learn-navigator/internal/models"
)

// ErrSessionNotFound is returned by a Store when no session has the requested ID
var ErrSessionNotFound = errors.New("session not found")

// Session is the navigation state of one learner device
type Session struct {
	ID              string                      `json:"id"`
	CategoryID      string                      `json:"categoryId"`
	SelectedItem    *models.CategoryContentItem `json:"selectedItem,omitempty"`
	SelectedSubQuiz *models.SubQuiz             `json:"selectedSubQuiz,omitempty"`
	NavigationState models.NavigationState      `json:"navigationState"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

// New creates an empty session for the category
func New(id, categoryID string) *Session {
	return &Session{
		ID:         id,
		CategoryID: categoryID,
		UpdatedAt:  time.Now().UTC(),
	}
}

// SelectedItemID returns the category item ID of the selection or nil
func (s *Session) SelectedItemID() *string {
	if s.SelectedItem == nil {
		return nil
	}
	id := s.SelectedItem.CategoryItemID
	return &id
}

// SelectedSubQuizID returns the sub-quiz ID of the selection or nil
func (s *Session) SelectedSubQuizID() *string {
	if s.SelectedSubQuiz == nil {
		return nil
	}
	id := s.SelectedSubQuiz.SubQuizID
	return &id
}

// Store is the interface that wraps session persistence
type Store interface {
	// Get returns the session with the given ID or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Save creates or replaces the session and refreshes its expiration.
	Save(ctx context.Context, s *Session) error
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
