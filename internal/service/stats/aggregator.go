package stats

import (
	"math"
	"time"

	"github.com/pointagehq/attendance-backend-go/internal/domain/schedule"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
	"github.com/pointagehq/attendance-backend-go/internal/domain/user"
)

// DefaultGracePeriod is the tolerance added to the shift start before an
// arrival counts as late.
const DefaultGracePeriod = 5 * time.Minute

// PunctualityLabel maps a numeric rate to its display label.
func PunctualityLabel(rate int) string {
	switch {
	case rate >= 90:
		return "Excellent"
	case rate >= 70:
		return "Bien"
	default:
		return "À améliorer"
	}
}

// AggregateUser computes one user's totals from reconstructed sessions.
// Anomalous events were already excluded by the reconstructor; anomalies are
// carried through for diagnostics only. sched may be nil, in which case the
// punctuality rate is omitted. Also omitted when there are no sessions, so
// the rate is never a division by zero.
func AggregateUser(u user.User, sessions []stats.WorkSession, anomalies []stats.Anomaly, sched *schedule.ShiftSchedule, grace time.Duration) stats.UserStatistics {
	var total float64
	days := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		total += s.Hours
		days[s.Date] = struct{}{}
	}

	totalHours := round2(total)
	totalDays := len(days)
	var avg float64
	if totalDays > 0 {
		avg = round2(totalHours / float64(totalDays))
	}

	result := stats.UserStatistics{
		UserID:             u.ID,
		Name:               u.Name,
		TotalHours:         totalHours,
		TotalDays:          totalDays,
		AverageHoursPerDay: avg,
		WorkSessions:       sessions,
		Anomalies:          anomalies,
	}

	if sched != nil && len(sessions) > 0 {
		threshold := sched.ShiftStart.Minutes() + grace
		onTime := 0
		for _, s := range sessions {
			if timeOfDay(s.Arrival) <= threshold {
				onTime++
			}
		}
		rate := int(math.Round(float64(onTime) / float64(len(sessions)) * 100))
		label := PunctualityLabel(rate)
		result.PunctualityRate = &rate
		result.PunctualityLabel = &label
	}

	return result
}

// timeOfDay returns the UTC wall-clock offset since midnight.
func timeOfDay(t time.Time) time.Duration {
	t = t.UTC()
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
