package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pointagehq/attendance-backend-go/internal/domain/punch"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/database"
)

type punchEventRepositoryImpl struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) punch.EventRepository {
	return &punchEventRepositoryImpl{db: db}
}

// ListByUser implements punch.EventRepository. The `to` bound is an inclusive
// calendar date, so the query filters strictly before the following midnight.
func (r *punchEventRepositoryImpl) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, kind, timestamp
		FROM punch_events
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to.AddDate(0, 0, 1))
		query += fmt.Sprintf(" AND timestamp < $%d", len(args))
	}
	query += " ORDER BY timestamp ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByDate implements punch.EventRepository.
func (r *punchEventRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, kind, timestamp
		FROM punch_events
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events by date: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]punch.Event, error) {
	events := make([]punch.Event, 0)
	for rows.Next() {
		var ev punch.Event
		var kind string
		if err := rows.Scan(&ev.ID, &ev.UserID, &kind, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		ev.Kind = punch.Kind(kind)
		ev.Timestamp = ev.Timestamp.UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}
	return events, nil
}
