package stats

import (
	"time"
)

// DateRange is an inclusive UTC calendar date range. A zero Start or End
// leaves that side unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from already-parsed bounds.
// Returns ErrInvalidRange when the end date precedes the start date.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// Validate re-checks the range invariant before computation.
func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Period echoes the requested range back to the caller.
func (r DateRange) Period() Period {
	var p Period
	if !r.Start.IsZero() {
		s := r.Start.Format("2006-01-02")
		p.StartDate = &s
	}
	if !r.End.IsZero() {
		e := r.End.Format("2006-01-02")
		p.EndDate = &e
	}
	return p
}

type Period struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// WorkSession is a reconstructed (arrival, departure) interval.
// Derived on every query, never persisted. The session is attributed to the
// arrival's calendar date even when it crosses midnight.
type WorkSession struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
	Hours     float64   `json:"hours"`
}

// AnomalyKind classifies a non-fatal irregularity in the punch stream.
type AnomalyKind string

const (
	AnomalyUnmatchedDeparture AnomalyKind = "UnmatchedDeparture"
	AnomalyDuplicateArrival   AnomalyKind = "DuplicateArrival"
	AnomalyOpenSession        AnomalyKind = "OpenSession"
)

// Anomaly records a detected data-quality issue. Anomalies are reported
// alongside statistics, never surfaced as errors; the affected events are
// excluded from totals.
type Anomaly struct {
	Kind      AnomalyKind `json:"kind"`
	EventID   int64       `json:"event_id"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// UserStatistics are per-user totals derived from work sessions.
// PunctualityRate is omitted when the user's team has no timetable or the
// user has no sessions in range.
type UserStatistics struct {
	UserID             int64         `json:"user_id"`
	Name               string        `json:"name"`
	TotalHours         float64       `json:"total_hours"`
	TotalDays          int           `json:"total_days"`
	AverageHoursPerDay float64       `json:"average_hours_per_day"`
	PunctualityRate    *int          `json:"punctuality_rate,omitempty"`
	PunctualityLabel   *string       `json:"punctuality_label,omitempty"`
	WorkSessions       []WorkSession `json:"work_sessions"`
	Anomalies          []Anomaly     `json:"anomalies,omitempty"`
}

// TeamStatsAggregated is the commutative rollup over a team's members.
type TeamStatsAggregated struct {
	TotalMembers       int     `json:"total_members"`
	TotalHours         float64 `json:"total_hours"`
	AverageDaysWorked  float64 `json:"average_days_worked"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

// UserSummary identifies a user in nested responses.
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TeamStatsResponse struct {
	TeamID     int64               `json:"team_id"`
	TeamName   string              `json:"team_name"`
	Manager    *UserSummary        `json:"manager,omitempty"`
	Statistics []UserStatistics    `json:"statistics"`
	Aggregated TeamStatsAggregated `json:"aggregated"`
	Period     Period              `json:"period"`
}

// AdminStatsResponse is the organization-wide dashboard payload.
type AdminStatsResponse struct {
	TotalUsers            int     `json:"total_users"`
	TotalEmployees        int     `json:"total_employees"`
	TotalManagers         int     `json:"total_managers"`
	TotalAdmins           int     `json:"total_admins"`
	TotalTeams            int     `json:"total_teams"`
	TodayRecordings       int     `json:"today_recordings"`
	CurrentlyPresent      int     `json:"currently_present"`
	TeamsWithoutTimetable int     `json:"teams_without_timetable"`
	AvgTeamSize           float64 `json:"avg_team_size"`
	ActiveManagers        int     `json:"active_managers"`
	InactiveManagers      int     `json:"inactive_managers"`
}
