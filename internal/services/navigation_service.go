// Package services exposes navigation sessions to the HTTP layer
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/japanesestudent/learn-navigator/internal/metrics"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"github.com/japanesestudent/learn-navigator/internal/session"
	"go.uber.org/zap"
)

// SessionNavigator is the interface that wraps navigation of a loaded session
type SessionNavigator interface {
	NavigateItem(ctx context.Context, s *session.Session, direction models.Direction) (*models.CategoryContentItem, error)
	SelectItem(ctx context.Context, s *session.Session, categoryItemID string) (*models.CategoryContentItem, error)
	NavigateSubQuiz(ctx context.Context, s *session.Session, direction models.Direction) (*models.SubQuiz, error)
	JumpToFirstSubQuiz(ctx context.Context, s *session.Session) (*models.SubQuiz, error)
	JumpToLastSubQuiz(ctx context.Context, s *session.Session) (*models.SubQuiz, error)
	Refresh(ctx context.Context, s *session.Session) error
	Availability(ctx context.Context, s *session.Session) models.Availability
}

// NavigationHistoryRepository is the interface that wraps read access to navigation events
type NavigationHistoryRepository interface {
	// ListBySession returns a page of the session's navigation events, newest first.
	ListBySession(ctx context.Context, sessionID string, page, count int) ([]models.NavigationEvent, error)
}

type navigationService struct {
	store     session.Store
	navigator SessionNavigator
	history   NavigationHistoryRepository
	locks     *sessionLocks
	newID     func() string
	logger    *zap.Logger
}

// NewNavigationService creates a new navigation service
func NewNavigationService(store session.Store, navigator SessionNavigator, history NavigationHistoryRepository, logger *zap.Logger) *navigationService {
	return &navigationService{
		store:     store,
		navigator: navigator,
		history:   history,
		locks:     newSessionLocks(),
		newID:     func() string { return uuid.New().String() },
		logger:    logger,
	}
}

// CreateSession opens a session on the category and selects the requested item,
// or the first item of the category when none is given
func (s *navigationService) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	sess := session.New(s.newID(), req.CategoryID)

	if _, err := s.navigator.SelectItem(ctx, sess, req.CategoryItemID); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	metrics.SessionOpened()

	s.logger.Info("navigation session created",
		zap.String("session_id", sess.ID),
		zap.String("category_id", sess.CategoryID),
	)
	return s.response(ctx, sess), nil
}

// GetSession returns the session with its selection reloaded from the backend
func (s *navigationService) GetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.navigator.Refresh(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return s.response(ctx, sess), nil
}

// DeleteSession closes the session
func (s *navigationService) DeleteSession(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	metrics.SessionClosed()

	return nil
}

// SelectItem selects a content item of the session's category directly
func (s *navigationService) SelectItem(ctx context.Context, id, categoryItemID string) (*models.SessionResponse, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		_, err := s.navigator.SelectItem(ctx, sess, categoryItemID)
		return err
	})
}

// NavigateItem moves the session to the adjacent content item
func (s *navigationService) NavigateItem(ctx context.Context, id string, direction models.Direction) (*models.SessionResponse, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		_, err := s.navigator.NavigateItem(ctx, sess, direction)
		return err
	})
}

// NavigateSubQuiz moves the session to the adjacent sub-quiz of the selected quiz
func (s *navigationService) NavigateSubQuiz(ctx context.Context, id string, direction models.Direction) (*models.SessionResponse, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		_, err := s.navigator.NavigateSubQuiz(ctx, sess, direction)
		return err
	})
}

// JumpToFirstSubQuiz selects the first sub-quiz of the selected quiz
func (s *navigationService) JumpToFirstSubQuiz(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		_, err := s.navigator.JumpToFirstSubQuiz(ctx, sess)
		return err
	})
}

// JumpToLastSubQuiz selects the last sub-quiz of the selected quiz
func (s *navigationService) JumpToLastSubQuiz(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.mutate(ctx, id, func(sess *session.Session) error {
		_, err := s.navigator.JumpToLastSubQuiz(ctx, sess)
		return err
	})
}

// GetHistory returns a page of the session's navigation events, newest first.
// Unknown or deleted sessions fail with session.ErrSessionNotFound.
func (s *navigationService) GetHistory(ctx context.Context, id string, page, count int) ([]models.NavigationEvent, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	events, err := s.history.ListBySession(ctx, id, page, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get navigation history: %w", err)
	}
	return events, nil
}

// mutate runs fn on the stored session under the session lock and saves the
// result. A failed navigation leaves the stored session untouched.
func (s *navigationService) mutate(ctx context.Context, id string, fn func(*session.Session) error) (*models.SessionResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return s.response(ctx, sess), nil
}

func (s *navigationService) load(ctx context.Context, id string) (*session.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// response builds the view state of the session
func (s *navigationService) response(ctx context.Context, sess *session.Session) *models.SessionResponse {
	resp := &models.SessionResponse{
		ID:              sess.ID,
		CategoryID:      sess.CategoryID,
		SelectedItem:    sess.SelectedItem,
		SelectedSubQuiz: sess.SelectedSubQuiz,
		NavigationState: sess.NavigationState,
		Availability:    s.navigator.Availability(ctx, sess),
		UpdatedAt:       sess.UpdatedAt,
	}

	if sess.SelectedItem != nil {
		resp.ProgressPercent = sess.SelectedItem.ProgressPercent()
		if step, err := session.QuizEntryStep(sess.SelectedItem); err == nil {
			resp.QuizStep = step
			if sess.SelectedSubQuiz != nil {
				resp.QuizStep = models.QuizStepSubQuiz
			}
		}
	}

	return resp
}
