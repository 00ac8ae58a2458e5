package punch

import (
	"time"
)

// Kind is the direction of a punch event.
type Kind string

const (
	KindArrival   Kind = "Arrival"
	KindDeparture Kind = "Departure"
)

// Event is a single immutable punch record produced by a clock-in action.
// Events are append-only; this service never mutates or deletes them.
type Event struct {
	ID        int64
	UserID    int64
	Kind      Kind
	Timestamp time.Time // always UTC
}

// Date returns the event's calendar date in UTC, truncated to midnight.
func (e Event) Date() time.Time {
	y, m, d := e.Timestamp.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
