package navigation

import (
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// Navigator is the single entry point for item level navigation.
// It dispatches to the skill or quiz manager by the current item content type.
type Navigator struct {
	skillCompletion CompletionService
	quizCompletion  CompletionService
	skillManager    NavigationManager
	quizManager     NavigationManager
}

// NewNavigator creates a navigator with skill and quiz rules wired to the given remote actions
func NewNavigator(actions RemoteActions, logger *zap.Logger) *Navigator {
	skillCompletion := NewSkillCompletionService(actions, logger)
	quizCompletion := NewQuizCompletionService(actions, logger)

	return &Navigator{
		skillCompletion: skillCompletion,
		quizCompletion:  quizCompletion,
		skillManager:    NewSkillNavigationManager(skillCompletion),
		quizManager:     NewQuizNavigationManager(quizCompletion),
	}
}

// NavigateToNext dispatches NavigateToNext to the manager of the current item
func (n *Navigator) NavigateToNext(nctx NavigationContext) (*models.CategoryContentItem, error) {
	manager, err := n.managerFor(nctx.CurrentItem)
	if err != nil {
		return nil, err
	}
	return manager.NavigateToNext(nctx)
}

// NavigateToPrevious dispatches NavigateToPrevious to the manager of the current item
func (n *Navigator) NavigateToPrevious(nctx NavigationContext) (*models.CategoryContentItem, error) {
	manager, err := n.managerFor(nctx.CurrentItem)
	if err != nil {
		return nil, err
	}
	return manager.NavigateToPrevious(nctx)
}

// CanNavigateNext dispatches CanNavigateNext, unknown content types yield false
func (n *Navigator) CanNavigateNext(nctx NavigationContext) bool {
	manager, err := n.managerFor(nctx.CurrentItem)
	if err != nil {
		return false
	}
	return manager.CanNavigateNext(nctx)
}

// CanNavigatePrevious dispatches CanNavigatePrevious, unknown content types yield false
func (n *Navigator) CanNavigatePrevious(nctx NavigationContext) bool {
	manager, err := n.managerFor(nctx.CurrentItem)
	if err != nil {
		return false
	}
	return manager.CanNavigatePrevious(nctx)
}

// CompletionService returns the completion rules of the given content type
func (n *Navigator) CompletionService(contentType models.ContentType) (CompletionService, error) {
	switch contentType {
	case models.ContentTypeSkills:
		return n.skillCompletion, nil
	case models.ContentTypeQuizzes:
		return n.quizCompletion, nil
	default:
		return nil, models.NewNavigationError(models.ErrorKindInvalidContentType,
			fmt.Sprintf("unsupported content type %q", contentType))
	}
}

func (n *Navigator) managerFor(item *models.CategoryContentItem) (NavigationManager, error) {
	if item == nil {
		return nil, models.NewNavigationError(models.ErrorKindInvalidContentType, "current item is missing")
	}
	switch item.ContentType {
	case models.ContentTypeSkills:
		return n.skillManager, nil
	case models.ContentTypeQuizzes:
		return n.quizManager, nil
	default:
		return nil, models.NewNavigationError(models.ErrorKindInvalidContentType,
			fmt.Sprintf("unsupported content type %q", item.ContentType))
	}
}
