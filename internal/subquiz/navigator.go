package subquiz

import (
	"context"
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// Navigator dispatches sub-quiz navigation to the manager of the current question type
type Navigator struct {
	managers map[models.QuestionType]NavigationManager
}

// NewNavigator creates a navigator with choice question and sequence order managers
func NewNavigator(starter Starter, logger *zap.Logger) *Navigator {
	selector := NewStrategySelector(starter, logger)

	n := &Navigator{managers: make(map[models.QuestionType]NavigationManager)}
	n.RegisterManager(models.QuestionTypeChoiceQuestions, NewChoiceQuestionNavigationManager(selector))
	n.RegisterManager(models.QuestionTypeSequenceOrders, NewSequenceOrderNavigationManager(selector))

	return n
}

// RegisterManager adds or replaces the manager of a question type
func (n *Navigator) RegisterManager(questionType models.QuestionType, manager NavigationManager) {
	n.managers[questionType] = manager
}

// CanNavigateNext dispatches CanNavigateNext, unregistered types yield false
func (n *Navigator) CanNavigateNext(nctx NavigationContext) bool {
	manager, err := n.managerFor(nctx.CurrentSubQuiz)
	if err != nil {
		return false
	}
	return manager.CanNavigateNext(nctx)
}

// NavigateNext dispatches NavigateNext to the manager of the current sub-quiz
func (n *Navigator) NavigateNext(ctx context.Context, nctx NavigationContext) (*models.SubQuiz, error) {
	manager, err := n.managerFor(nctx.CurrentSubQuiz)
	if err != nil {
		return nil, err
	}
	return manager.NavigateNext(ctx, nctx)
}

// CanNavigatePrevious dispatches CanNavigatePrevious, unregistered types yield false
func (n *Navigator) CanNavigatePrevious(nctx NavigationContext) bool {
	manager, err := n.managerFor(nctx.CurrentSubQuiz)
	if err != nil {
		return false
	}
	return manager.CanNavigatePrevious(nctx)
}

// NavigatePrevious dispatches NavigatePrevious to the manager of the current sub-quiz
func (n *Navigator) NavigatePrevious(nctx NavigationContext) (*models.SubQuiz, error) {
	manager, err := n.managerFor(nctx.CurrentSubQuiz)
	if err != nil {
		return nil, err
	}
	return manager.NavigatePrevious(nctx)
}

func (n *Navigator) managerFor(current *models.SubQuiz) (NavigationManager, error) {
	if current == nil {
		return nil, models.NewNavigationError(models.ErrorKindInvalidQuestionType, "current sub-quiz is missing")
	}
	manager, ok := n.managers[current.QuestionType]
	if !ok {
		return nil, models.NewNavigationError(models.ErrorKindInvalidQuestionType,
			fmt.Sprintf("unsupported question type %q", current.QuestionType))
	}
	return manager, nil
}
