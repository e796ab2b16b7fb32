// Package subquiz implements navigation between the questions of a quiz.
//
// A transition between two adjacent sub-quizzes is handled by a strategy selected by
// the pair (current question type, adjacent question type). Strategies are kept in a
// registration table, so supporting a new question type means registering the new
// pairs rather than branching on types.
package subquiz

import (
	"context"
	"fmt"

	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// Starter is the interface that wraps the remote "start" calls for sub-quizzes
type Starter interface {
	// StartChoiceQuestion marks a choice question as started for the learner on the backend.
	//
	// "categoryID" and "quizID" identify the quiz, "questionID" the question within it.
	// Any returned error means the question was not started.
	StartChoiceQuestion(ctx context.Context, categoryID, quizID, questionID string) error
	// StartSequenceOrder marks a sequence order question as started for the learner on the backend.
	//
	// Please reference StartChoiceQuestion method for more information about parameters and error values.
	StartSequenceOrder(ctx context.Context, categoryID, quizID, questionID string) error
}

// StartFunc issues the remote start call for one question type
type StartFunc func(ctx context.Context, categoryID, quizID, questionID string) error

// NavigationContext carries the sub-quizzes a navigation decision is made on
type NavigationContext struct {
	CurrentSubQuiz  *models.SubQuiz
	AdjacentSubQuiz *models.SubQuiz
	CategoryID      string
}

// Strategy is the interface that wraps a transition between two sub-quiz types
type Strategy interface {
	// CanNavigate reports whether an adjacent sub-quiz exists and the current one is completed.
	CanNavigate(nctx NavigationContext) bool
	// Navigate starts the adjacent sub-quiz on the backend and returns it.
	//
	// Fails with NoNextSubQuiz if there is no adjacent sub-quiz and FetchError if the remote call fails.
	Navigate(ctx context.Context, nctx NavigationContext) (*models.SubQuiz, error)
}

// StrategyKey returns the registration key of a transition, e.g. "choiceQuestions-to-sequenceOrders"
func StrategyKey(from, to models.QuestionType) string {
	return fmt.Sprintf("%s-to-%s", from, to)
}

// transitionStrategy moves from a sub-quiz of type "from" to one of type "to".
// The completion check only depends on "from"; the start call only depends on "to".
type transitionStrategy struct {
	from   models.QuestionType
	to     models.QuestionType
	start  StartFunc
	logger *zap.Logger
}

// NewTransitionStrategy creates a strategy that starts the target with the given start call
func NewTransitionStrategy(from, to models.QuestionType, start StartFunc, logger *zap.Logger) *transitionStrategy {
	return &transitionStrategy{
		from:   from,
		to:     to,
		start:  start,
		logger: logger,
	}
}

func (s *transitionStrategy) CanNavigate(nctx NavigationContext) bool {
	if nctx.AdjacentSubQuiz == nil || nctx.CurrentSubQuiz == nil {
		return false
	}
	return nctx.CurrentSubQuiz.IsCompleted()
}

func (s *transitionStrategy) Navigate(ctx context.Context, nctx NavigationContext) (*models.SubQuiz, error) {
	target := nctx.AdjacentSubQuiz
	if target == nil {
		return nil, models.NewNavigationError(models.ErrorKindNoNextSubQuiz, "next sub-quiz is not available")
	}

	if err := s.start(ctx, nctx.CategoryID, target.QuizID, target.QuestionID); err != nil {
		s.logger.Error("failed to start sub-quiz",
			zap.String("strategy", StrategyKey(s.from, s.to)),
			zap.String("category_id", nctx.CategoryID),
			zap.String("quiz_id", target.QuizID),
			zap.String("question_id", target.QuestionID),
			zap.Error(err),
		)
		return nil, models.WrapNavigationError(models.ErrorKindFetchError,
			fmt.Sprintf("failed to start %s question %s", s.to, target.QuestionID), err)
	}

	return target, nil
}
