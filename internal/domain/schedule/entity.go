package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns t as a duration since midnight.
func (t TimeOfDay) Minutes() time.Duration {
	return time.Duration(t) * time.Minute
}

// ShiftSchedule is the expected working window assigned to a team.
// A team may have no schedule at all; punctuality is then not computed.
type ShiftSchedule struct {
	TeamID     int64
	ShiftStart TimeOfDay
	ShiftEnd   TimeOfDay
}
