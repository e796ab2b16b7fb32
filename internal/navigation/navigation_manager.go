package navigation

import (
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
)

// NavigationContext carries the items a navigation decision is made on.
// The caller resolves AdjacentItem; managers never look it up themselves.
type NavigationContext struct {
	CurrentItem  *models.CategoryContentItem
	AdjacentItem *models.CategoryContentItem
	CategoryID   string
}

// NavigationManager is the interface that wraps item level transition rules
type NavigationManager interface {
	// NavigateToNext returns the adjacent item if the current item is completed.
	//
	// Fails with InvalidContentType, CompletionRequired or FetchError (no adjacent item).
	// No remote call is issued.
	NavigateToNext(nctx NavigationContext) (*models.CategoryContentItem, error)
	// NavigateToPrevious returns the adjacent item. There is no completion requirement backward.
	//
	// Fails with InvalidContentType or FetchError (no adjacent item).
	NavigateToPrevious(nctx NavigationContext) (*models.CategoryContentItem, error)
	// CanNavigateNext reports whether NavigateToNext would succeed.
	CanNavigateNext(nctx NavigationContext) bool
	// CanNavigatePrevious reports whether NavigateToPrevious would succeed.
	CanNavigatePrevious(nctx NavigationContext) bool
}

type navigationManager struct {
	contentType models.ContentType
	completion  CompletionService
}

// NewSkillNavigationManager creates a navigation manager for skill items
func NewSkillNavigationManager(completion CompletionService) *navigationManager {
	return &navigationManager{
		contentType: models.ContentTypeSkills,
		completion:  completion,
	}
}

// NewQuizNavigationManager creates a navigation manager for quiz items
func NewQuizNavigationManager(completion CompletionService) *navigationManager {
	return &navigationManager{
		contentType: models.ContentTypeQuizzes,
		completion:  completion,
	}
}

func (m *navigationManager) NavigateToNext(nctx NavigationContext) (*models.CategoryContentItem, error) {
	if err := m.validateContentType(nctx.CurrentItem); err != nil {
		return nil, err
	}
	if !m.completion.IsItemCompleted(nctx.CurrentItem) {
		return nil, models.NewNavigationError(models.ErrorKindCompletionRequired,
			fmt.Sprintf("%s item %s must be completed first", m.contentType, nctx.CurrentItem.CategoryItemID))
	}
	if nctx.AdjacentItem == nil {
		return nil, models.NewNavigationError(models.ErrorKindFetchError, "next item is not available")
	}
	return nctx.AdjacentItem, nil
}

func (m *navigationManager) NavigateToPrevious(nctx NavigationContext) (*models.CategoryContentItem, error) {
	if err := m.validateContentType(nctx.CurrentItem); err != nil {
		return nil, err
	}
	if nctx.AdjacentItem == nil {
		return nil, models.NewNavigationError(models.ErrorKindFetchError, "previous item is not available")
	}
	return nctx.AdjacentItem, nil
}

func (m *navigationManager) CanNavigateNext(nctx NavigationContext) bool {
	if m.validateContentType(nctx.CurrentItem) != nil {
		return false
	}
	return m.completion.IsItemCompleted(nctx.CurrentItem) && nctx.AdjacentItem != nil
}

func (m *navigationManager) CanNavigatePrevious(nctx NavigationContext) bool {
	if m.validateContentType(nctx.CurrentItem) != nil {
		return false
	}
	return nctx.AdjacentItem != nil
}

// validateContentType checks that the current item is handled by this manager
func (m *navigationManager) validateContentType(item *models.CategoryContentItem) error {
	if item == nil {
		return models.NewNavigationError(models.ErrorKindInvalidContentType, "current item is missing")
	}
	if item.ContentType != m.contentType {
		return models.NewNavigationError(models.ErrorKindInvalidContentType,
			fmt.Sprintf("expected %s item, got %s", m.contentType, item.ContentType))
	}
	return nil
}
