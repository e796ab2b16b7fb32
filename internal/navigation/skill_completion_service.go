package navigation

import (
	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// NewSkillCompletionService creates a completion service for skill items.
// A skill is completed when its progress has isCompleted set.
func NewSkillCompletionService(actions RemoteActions, logger *zap.Logger) *completionService {
	return &completionService{
		contentType: models.ContentTypeSkills,
		start:       actions.StartSkill,
		logger:      logger,
	}
}
