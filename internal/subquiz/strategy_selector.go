package subquiz

import (
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// StrategySelector resolves the transition strategy for a pair of adjacent sub-quizzes
type StrategySelector struct {
	strategies map[string]Strategy
}

// NewStrategySelector creates a selector with strategies for every pair of
// choice question and sequence order types
func NewStrategySelector(starter Starter, logger *zap.Logger) *StrategySelector {
	starts := map[models.QuestionType]StartFunc{
		models.QuestionTypeChoiceQuestions: starter.StartChoiceQuestion,
		models.QuestionTypeSequenceOrders:  starter.StartSequenceOrder,
	}

	selector := &StrategySelector{strategies: make(map[string]Strategy)}
	for from := range starts {
		for to, start := range starts {
			selector.Register(from, to, NewTransitionStrategy(from, to, start, logger))
		}
	}

	return selector
}

// Register adds or replaces the strategy for the transition from -> to
func (s *StrategySelector) Register(from, to models.QuestionType, strategy Strategy) {
	s.strategies[StrategyKey(from, to)] = strategy
}

// GetStrategy returns the strategy for the current and adjacent sub-quiz types.
//
// Fails with NoAdjacentSubQuiz before inspecting types if there is no adjacent sub-quiz,
// and with NoStrategyFound if the pair is not registered.
func (s *StrategySelector) GetStrategy(nctx NavigationContext) (Strategy, error) {
	if nctx.AdjacentSubQuiz == nil {
		return nil, models.NewNavigationError(models.ErrorKindNoAdjacentSubQuiz, "no adjacent sub-quiz to navigate to")
	}
	if nctx.CurrentSubQuiz == nil {
		return nil, models.NewNavigationError(models.ErrorKindInvalidQuestionType, "current sub-quiz is missing")
	}

	key := StrategyKey(nctx.CurrentSubQuiz.QuestionType, nctx.AdjacentSubQuiz.QuestionType)
	strategy, ok := s.strategies[key]
	if !ok {
		return nil, models.NewNavigationError(models.ErrorKindNoStrategyFound,
			fmt.Sprintf("no strategy registered for %s", key))
	}

	return strategy, nil
}
