// Package tasks carries navigation events from the API to the worker through asynq
package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/japanesestudent/learn-navigator/internal/models"
	"go.uber.org/zap"
)

const (
	// TypeNavigationEvent is the asynq task type of a navigation event
	TypeNavigationEvent = "navigation:event"
	// QueueEvents is the queue navigation events are enqueued to
	QueueEvents = "events"

	maxEventRetry = 5
)

// NewNavigationEventTask creates an asynq task carrying the event as JSON
func NewNavigationEventTask(event models.NavigationEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode navigation event: %w", err)
	}
	return asynq.NewTask(TypeNavigationEvent, payload), nil
}

// Enqueuer is the interface that wraps asynq task submission
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher records navigation events by enqueuing them for the worker
type Publisher struct {
	client Enqueuer
	logger *zap.Logger
}

// NewPublisher creates a new navigation event publisher
func NewPublisher(client Enqueuer, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// Record enqueues the event to the events queue
func (p *Publisher) Record(ctx context.Context, event models.NavigationEvent) error {
	task, err := NewNavigationEventTask(event)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task, asynq.Queue(QueueEvents), asynq.MaxRetry(maxEventRetry))
	if err != nil {
		return fmt.Errorf("failed to enqueue navigation event: %w", err)
	}

	p.logger.Debug("navigation event enqueued",
		zap.String("task_id", info.ID),
		zap.String("session_id", event.SessionID),
	)
	return nil
}

// LogRecorder records navigation events to the log only.
// It is used when no Redis instance is configured.
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a new log-only navigation event recorder
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(ctx context.Context, event models.NavigationEvent) error {
	r.logger.Info("navigation event",
		zap.String("session_id", event.SessionID),
		zap.String("category_id", event.CategoryID),
		zap.String("level", string(event.Level)),
		zap.String("action", string(event.Action)),
		zap.String("from_id", event.FromID),
		zap.String("to_id", event.ToID),
		zap.String("outcome", string(event.Outcome)),
		zap.String("error_kind", string(event.ErrorKind)),
	)
	return nil
}
