// Package navigation implements content item completion rules and item level navigation
package navigation

import (
	"context"
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// RemoteActions is the interface that wraps the remote "start" calls for content items
type RemoteActions interface {
	// StartSkill marks a skill as started for the learner on the backend.
	//
	// "categoryID" is the category the skill belongs to, "skillID" is the item ID of the skill.
	// Any returned error means the skill was not started.
	StartSkill(ctx context.Context, categoryID, skillID string) error
	// StartQuiz marks a quiz as started for the learner on the backend.
	//
	// Please reference StartSkill method for more information about parameters and error values.
	StartQuiz(ctx context.Context, categoryID, quizID string) error
}

// CompletionService is the interface that wraps the completion rules of one content type
type CompletionService interface {
	// IsItemCompleted reports whether the item progress marks it as completed.
	IsItemCompleted(item *models.CategoryContentItem) bool
	// IsItemStarted reports whether the item has a progress record and is not completed yet.
	IsItemStarted(item *models.CategoryContentItem) bool
	// CanStartItem reports whether the item may be started.
	//
	// Prerequisite ordering is not checked here, it is enforced by the navigation managers.
	CanStartItem(item *models.CategoryContentItem) bool
	// ValidateAndStartItem starts the item on the backend unless it is already started or completed.
	//
	// Returns true without a remote call for started or completed items.
	// Returns false if the item can not be started or the remote call failed; in the latter case
	// a FetchError is returned as well. At most one remote call is issued.
	// Callers must not invoke it concurrently for the same item.
	ValidateAndStartItem(ctx context.Context, item *models.CategoryContentItem) (bool, error)
}

// startFunc issues the remote start call for an item
type startFunc func(ctx context.Context, categoryID, itemID string) error

// completionService implements CompletionService for a single content type
type completionService struct {
	contentType models.ContentType
	start       startFunc
	logger      *zap.Logger
}

func (s *completionService) IsItemCompleted(item *models.CategoryContentItem) bool {
	if !s.matches(item) {
		return false
	}
	return item.IsCompleted()
}

func (s *completionService) IsItemStarted(item *models.CategoryContentItem) bool {
	if !s.matches(item) {
		return false
	}
	return item.HasProgress() && !item.IsCompleted()
}

func (s *completionService) CanStartItem(item *models.CategoryContentItem) bool {
	if !s.matches(item) {
		return false
	}
	return !s.IsItemCompleted(item)
}

func (s *completionService) ValidateAndStartItem(ctx context.Context, item *models.CategoryContentItem) (bool, error) {
	if !s.matches(item) {
		return false, models.NewNavigationError(models.ErrorKindInvalidContentType,
			fmt.Sprintf("expected %s item", s.contentType))
	}

	if s.IsItemCompleted(item) || s.IsItemStarted(item) {
		return true, nil
	}
	if !s.CanStartItem(item) {
		return false, nil
	}

	if err := s.start(ctx, item.CategoryID, item.ItemID); err != nil {
		s.logger.Error("failed to start item",
			zap.String("content_type", string(s.contentType)),
			zap.String("category_id", item.CategoryID),
			zap.String("item_id", item.ItemID),
			zap.Error(err),
		)
		return false, models.WrapNavigationError(models.ErrorKindFetchError,
			fmt.Sprintf("failed to start %s item %s", s.contentType, item.ItemID), err)
	}

	return true, nil
}

func (s *completionService) matches(item *models.CategoryContentItem) bool {
	return item != nil && item.ContentType == s.contentType
}
