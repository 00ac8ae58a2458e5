package session

import (
	"math"

	"github.com/pointagehq/attendance-backend-go/internal/domain/punch"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
)

// DuplicateArrivalPolicy decides which arrival wins when a second Arrival is
// seen before any Departure. The raw punch stream can be ambiguous here, so
// the policy is explicit rather than implied.
type DuplicateArrivalPolicy int

const (
	// KeepLatestArrival lets the later arrival overwrite the pending one.
	KeepLatestArrival DuplicateArrivalPolicy = iota
	// KeepEarliestArrival keeps the first arrival and discards later ones.
	KeepEarliestArrival
)

// Reconstructor converts one user's chronologically ordered punch events
// into work sessions. Purely functional: the same input always yields the
// same output.
type Reconstructor struct {
	duplicateArrival DuplicateArrivalPolicy
}

func NewReconstructor() *Reconstructor {
	return &Reconstructor{duplicateArrival: KeepLatestArrival}
}

func NewReconstructorWithPolicy(policy DuplicateArrivalPolicy) *Reconstructor {
	return &Reconstructor{duplicateArrival: policy}
}

// Reconstruct pairs events into work sessions and reports anomalies for
// everything that could not be paired. Events must be ordered by timestamp
// ascending. Unmatched events never contribute to any session. A trailing
// arrival without a departure is reported as an OpenSession anomaly and
// excluded from totals. O(n) in event count.
func (r *Reconstructor) Reconstruct(events []punch.Event) ([]stats.WorkSession, []stats.Anomaly) {
	sessions := make([]stats.WorkSession, 0, len(events)/2)
	anomalies := make([]stats.Anomaly, 0)

	var pending *punch.Event
	for i := range events {
		ev := events[i]
		switch ev.Kind {
		case punch.KindArrival:
			if pending == nil {
				pending = &events[i]
				continue
			}
			anomalies = append(anomalies, newAnomaly(stats.AnomalyDuplicateArrival, ev))
			if r.duplicateArrival == KeepLatestArrival {
				pending = &events[i]
			}
		case punch.KindDeparture:
			if pending == nil {
				anomalies = append(anomalies, newAnomaly(stats.AnomalyUnmatchedDeparture, ev))
				continue
			}
			sessions = append(sessions, newSession(*pending, ev))
			pending = nil
		}
	}

	if pending != nil {
		anomalies = append(anomalies, newAnomaly(stats.AnomalyOpenSession, *pending))
	}

	return sessions, anomalies
}

// newSession attributes the session to the arrival's calendar date, even when
// it crosses midnight. Duration is the literal timestamp difference.
func newSession(arrival, departure punch.Event) stats.WorkSession {
	return stats.WorkSession{
		Date:      arrival.Date().Format("2006-01-02"),
		Arrival:   arrival.Timestamp,
		Departure: departure.Timestamp,
		Hours:     round2(departure.Timestamp.Sub(arrival.Timestamp).Hours()),
	}
}

func newAnomaly(kind stats.AnomalyKind, ev punch.Event) stats.Anomaly {
	return stats.Anomaly{
		Kind:      kind,
		EventID:   ev.ID,
		UserID:    ev.UserID,
		Timestamp: ev.Timestamp,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
