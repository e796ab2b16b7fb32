package navigation

import (
	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// NewQuizCompletionService creates a completion service for quiz items.
// A quiz is completed when its progress status is "completed".
func NewQuizCompletionService(actions RemoteActions, logger *zap.Logger) *completionService {
	return &completionService{
		contentType: models.ContentTypeQuizzes,
		start:       actions.StartQuiz,
		logger:      logger,
	}
}
