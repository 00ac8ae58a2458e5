package stats

import (
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
)

// RollupTeam merges member statistics into a team aggregate. Sums and means
// are commutative and associative, so member iteration order never affects
// the result; this is what makes parallel per-member computation safe.
func RollupTeam(members []stats.UserStatistics) stats.TeamStatsAggregated {
	agg := stats.TeamStatsAggregated{TotalMembers: len(members)}
	if len(members) == 0 {
		return agg
	}

	var hours, daysSum, avgSum float64
	for _, m := range members {
		hours += m.TotalHours
		daysSum += float64(m.TotalDays)
		avgSum += m.AverageHoursPerDay
	}

	n := float64(len(members))
	agg.TotalHours = round2(hours)
	agg.AverageDaysWorked = round2(daysSum / n)
	agg.AverageHoursPerDay = round2(avgSum / n)
	return agg
}
