package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/japanesestudent/learn-navigator/internal/models"
)

// navigationHistoryRepository implements NavigationHistoryRepository
type navigationHistoryRepository struct {
	db *sql.DB
}

// NewNavigationHistoryRepository creates a new navigation history repository
func NewNavigationHistoryRepository(db *sql.DB) *navigationHistoryRepository {
	return &navigationHistoryRepository{
		db: db,
	}
}

// Create inserts a navigation event and sets its ID
func (r *navigationHistoryRepository) Create(ctx context.Context, event *models.NavigationEvent) error {
	query := `
		INSERT INTO navigation_events (session_id, category_id, level, action, from_id, to_id, outcome, error_kind, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.SessionID,
		event.CategoryID,
		event.Level,
		event.Action,
		event.FromID,
		event.ToID,
		event.Outcome,
		event.ErrorKind,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert navigation event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted navigation event ID: %w", err)
	}
	event.ID = int(id)

	return nil
}

// ListBySession retrieves navigation events of a session, newest first
//
// "page" is 1-based and "count" is the page size.
func (r *navigationHistoryRepository) ListBySession(ctx context.Context, sessionID string, page, count int) ([]models.NavigationEvent, error) {
	query := `
		SELECT id, session_id, category_id, level, action, from_id, to_id, outcome, error_kind, occurred_at
		FROM navigation_events
		WHERE session_id = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	offset := (page - 1) * count
	rows, err := r.db.QueryContext(ctx, query, sessionID, count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query navigation events: %w", err)
	}
	defer rows.Close()

	events := []models.NavigationEvent{}
	for rows.Next() {
		var event models.NavigationEvent
		if err := rows.Scan(
			&event.ID,
			&event.SessionID,
			&event.CategoryID,
			&event.Level,
			&event.Action,
			&event.FromID,
			&event.ToID,
			&event.Outcome,
			&event.ErrorKind,
			&event.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan navigation event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

// DeleteOlderThan removes navigation events that occurred before the given time
// and returns the number of removed rows
func (r *navigationHistoryRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM navigation_events WHERE occurred_at < ?`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete navigation events: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted rows count: %w", err)
	}

	return deleted, nil
}
