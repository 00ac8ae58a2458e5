package stats

import "context"

// StatisticsService is the query facade consumed by the HTTP layer.
// All operations are pure reads: safe to call concurrently and repeatedly,
// with identical results for identical underlying data.
type StatisticsService interface {
	// GetUserStatistics recomputes one user's statistics over the range.
	GetUserStatistics(ctx context.Context, userID int64, rng DateRange) (UserStatistics, error)

	// GetTeamStatistics recomputes statistics for every member of a team
	// and rolls them up into a team aggregate.
	GetTeamStatistics(ctx context.Context, teamID int64, rng DateRange) (TeamStatsResponse, error)

	// GetAdminStatistics computes organization-wide counters for today.
	GetAdminStatistics(ctx context.Context) (AdminStatsResponse, error)
}
