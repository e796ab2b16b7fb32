package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/japanesestudent/learn-navigator/internal/metrics"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

// NavigationHistoryRepository is the interface that wraps navigation_events table access of the worker
type NavigationHistoryRepository interface {
	// Create inserts a navigation event.
	//
	// If some error occurs during data insert, the error will be returned.
	Create(ctx context.Context, event *models.NavigationEvent) error
	// DeleteOlderThan removes events that occurred before the given time and returns how many were removed.
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Worker persists navigation events and prunes the navigation history
type Worker struct {
	repo      NavigationHistoryRepository
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewWorker creates a new worker instance
func NewWorker(repo NavigationHistoryRepository, retention time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		repo:      repo,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Register adds the worker task handlers to the mux
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeNavigationEvent, w.HandleNavigationEvent)
}

// HandleNavigationEvent stores the navigation event carried by the task.
// Malformed payloads are not retried.
func (w *Worker) HandleNavigationEvent(ctx context.Context, t *asynq.Task) error {
	var event models.NavigationEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		metrics.RecordPersistedEvent("invalid")
		w.logger.Error("invalid navigation event payload", zap.Error(err))
		return fmt.Errorf("failed to decode navigation event: %v: %w", err, asynq.SkipRetry)
	}
	if event.SessionID == "" {
		metrics.RecordPersistedEvent("invalid")
		return fmt.Errorf("navigation event without session: %w", asynq.SkipRetry)
	}

	if err := w.repo.Create(ctx, &event); err != nil {
		metrics.RecordPersistedEvent("failed")
		w.logger.Error("failed to store navigation event",
			zap.String("session_id", event.SessionID),
			zap.Error(err),
		)
		return err
	}

	metrics.RecordPersistedEvent("stored")
	w.logger.Debug("navigation event stored",
		zap.Int("event_id", event.ID),
		zap.String("session_id", event.SessionID),
	)
	return nil
}

// PruneHistory removes navigation events older than the retention period
func (w *Worker) PruneHistory(ctx context.Context) error {
	before := w.now().UTC().Add(-w.retention)

	deleted, err := w.repo.DeleteOlderThan(ctx, before)
	if err != nil {
		w.logger.Error("failed to prune navigation history", zap.Error(err))
		return err
	}

	w.logger.Info("navigation history pruned",
		zap.Int64("deleted", deleted),
		zap.Time("before", before),
	)
	return nil
}
