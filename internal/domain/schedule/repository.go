package schedule

import "context"

// Repository defines read-only access to shift schedules.
type Repository interface {
	// GetByTeam retrieves the schedule assigned to a team.
	// Returns ErrTimetableNotFound when the team has none.
	GetByTeam(ctx context.Context, teamID int64) (ShiftSchedule, error)

	// ListTeamIDsWithTimetable returns the IDs of all teams that have a schedule.
	ListTeamIDsWithTimetable(ctx context.Context) ([]int64, error)
}
