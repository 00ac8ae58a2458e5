package punch

import (
	"context"
	"time"
)

// EventRepository defines read-only access to the punch event log.
// The statistics core never writes events; ingestion happens upstream.
type EventRepository interface {
	// ListByUser retrieves one user's events ordered by timestamp ascending.
	// Zero-value from/to mean an unbounded side of the range; to is inclusive
	// as a calendar date (events up to the end of that day are returned).
	ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]Event, error)

	// ListByDate retrieves all users' events on a single UTC calendar date,
	// ordered by timestamp ascending.
	ListByDate(ctx context.Context, date time.Time) ([]Event, error)
}
