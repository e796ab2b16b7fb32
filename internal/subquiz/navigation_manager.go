package subquiz

import (
	"context"
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
)

// NavigationManager is the interface that wraps sub-quiz transitions for one question type
type NavigationManager interface {
	// CanNavigateNext reports whether the resolved strategy allows moving forward.
	// Strategy resolution failures yield false.
	CanNavigateNext(nctx NavigationContext) bool
	// NavigateNext moves to the next sub-quiz through the resolved strategy.
	//
	// Fails with NavigationNotAllowed when CanNavigateNext is false, otherwise returns
	// the strategy result.
	NavigateNext(ctx context.Context, nctx NavigationContext) (*models.SubQuiz, error)
	// CanNavigatePrevious reports whether a previous sub-quiz exists.
	CanNavigatePrevious(nctx NavigationContext) bool
	// NavigatePrevious returns the previous sub-quiz or fails with NoPreviousSubQuiz.
	// No remote call is issued.
	NavigatePrevious(nctx NavigationContext) (*models.SubQuiz, error)
}

type navigationManager struct {
	questionType models.QuestionType
	selector     *StrategySelector
}

// NewNavigationManager creates a navigation manager for sub-quizzes of the given type
func NewNavigationManager(questionType models.QuestionType, selector *StrategySelector) *navigationManager {
	return &navigationManager{
		questionType: questionType,
		selector:     selector,
	}
}

// NewChoiceQuestionNavigationManager creates a navigation manager for choice questions
func NewChoiceQuestionNavigationManager(selector *StrategySelector) *navigationManager {
	return NewNavigationManager(models.QuestionTypeChoiceQuestions, selector)
}

// NewSequenceOrderNavigationManager creates a navigation manager for sequence order questions
func NewSequenceOrderNavigationManager(selector *StrategySelector) *navigationManager {
	return NewNavigationManager(models.QuestionTypeSequenceOrders, selector)
}

func (m *navigationManager) CanNavigateNext(nctx NavigationContext) bool {
	if m.validateQuestionType(nctx.CurrentSubQuiz) != nil {
		return false
	}
	strategy, err := m.selector.GetStrategy(nctx)
	if err != nil {
		return false
	}
	return strategy.CanNavigate(nctx)
}

func (m *navigationManager) NavigateNext(ctx context.Context, nctx NavigationContext) (*models.SubQuiz, error) {
	if err := m.validateQuestionType(nctx.CurrentSubQuiz); err != nil {
		return nil, err
	}
	strategy, err := m.selector.GetStrategy(nctx)
	if err != nil {
		return nil, err
	}
	if !strategy.CanNavigate(nctx) {
		return nil, models.NewNavigationError(models.ErrorKindNavigationNotAllowed,
			fmt.Sprintf("sub-quiz %s must be completed first", nctx.CurrentSubQuiz.SubQuizID))
	}
	return strategy.Navigate(ctx, nctx)
}

func (m *navigationManager) CanNavigatePrevious(nctx NavigationContext) bool {
	if m.validateQuestionType(nctx.CurrentSubQuiz) != nil {
		return false
	}
	return nctx.AdjacentSubQuiz != nil
}

func (m *navigationManager) NavigatePrevious(nctx NavigationContext) (*models.SubQuiz, error) {
	if err := m.validateQuestionType(nctx.CurrentSubQuiz); err != nil {
		return nil, err
	}
	if nctx.AdjacentSubQuiz == nil {
		return nil, models.NewNavigationError(models.ErrorKindNoPreviousSubQuiz, "previous sub-quiz is not available")
	}
	return nctx.AdjacentSubQuiz, nil
}

func (m *navigationManager) validateQuestionType(current *models.SubQuiz) error {
	if current == nil {
		return models.NewNavigationError(models.ErrorKindInvalidQuestionType, "current sub-quiz is missing")
	}
	if current.QuestionType != m.questionType {
		return models.NewNavigationError(models.ErrorKindInvalidQuestionType,
			fmt.Sprintf("expected %s sub-quiz, got %s", m.questionType, current.QuestionType))
	}
	return nil
}
