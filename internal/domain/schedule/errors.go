package schedule

import "errors"

var (
	ErrTimetableNotFound = errors.New("no timetable assigned to this team")
)
