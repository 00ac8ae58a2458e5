package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pointagehq/attendance-backend-go/internal/domain/schedule"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/database"
)

type shiftScheduleRepositoryImpl struct {
	db *database.DB
}

func NewShiftScheduleRepository(db *database.DB) schedule.Repository {
	return &shiftScheduleRepositoryImpl{db: db}
}

// GetByTeam implements schedule.Repository. Shift bounds are stored as
// "HH:MM" text and parsed into minutes-of-day.
func (r *shiftScheduleRepositoryImpl) GetByTeam(ctx context.Context, teamID int64) (schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT team_id, shift_start, shift_end
		FROM shift_schedules
		WHERE team_id = $1
	`

	var sched schedule.ShiftSchedule
	var start, end string
	err := q.QueryRow(ctx, query, teamID).Scan(&sched.TeamID, &start, &end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftSchedule{}, schedule.ErrTimetableNotFound
		}
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}

	if sched.ShiftStart, err = schedule.ParseTimeOfDay(start); err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to parse shift start: %w", err)
	}
	if sched.ShiftEnd, err = schedule.ParseTimeOfDay(end); err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to parse shift end: %w", err)
	}
	return sched, nil
}

// ListTeamIDsWithTimetable implements schedule.Repository.
func (r *shiftScheduleRepositoryImpl) ListTeamIDsWithTimetable(ctx context.Context) ([]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT team_id FROM shift_schedules ORDER BY team_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetabled teams: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timetabled teams: %w", err)
	}
	return ids, nil
}
