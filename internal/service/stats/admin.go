package stats

import (
	"github.com/pointagehq/attendance-backend-go/internal/domain/punch"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
	"github.com/pointagehq/attendance-backend-go/internal/domain/team"
	"github.com/pointagehq/attendance-backend-go/internal/domain/user"
)

// AdminSnapshot is the in-memory data needed for organization-wide counters,
// fetched once per request from the data source.
type AdminSnapshot struct {
	Users              []user.User
	Teams              []team.Team
	TodayEvents        []punch.Event // ordered by timestamp ascending
	TeamsWithTimetable map[int64]bool
}

// ActiveManagerPredicate decides whether a manager counts as active.
// The exact rule is a policy choice, so it is injectable.
type ActiveManagerPredicate func(manager user.User, reports []user.User, openSession map[int64]bool) bool

// DefaultActiveManager: a manager is active when at least one direct report
// has an open session today.
func DefaultActiveManager(_ user.User, reports []user.User, openSession map[int64]bool) bool {
	for _, r := range reports {
		if openSession[r.ID] {
			return true
		}
	}
	return false
}

// OpenSessionsByUser reports, per user, whether the most recent event today
// is an Arrival with no following Departure. Events must be ordered by
// timestamp ascending.
func OpenSessionsByUser(events []punch.Event) map[int64]bool {
	open := make(map[int64]bool)
	for _, ev := range events {
		open[ev.UserID] = ev.Kind == punch.KindArrival
	}
	return open
}

// ComputeAdminStats derives organization-wide counters from a snapshot.
// Pure function of its input.
func ComputeAdminStats(snap AdminSnapshot, isActive ActiveManagerPredicate) stats.AdminStatsResponse {
	if isActive == nil {
		isActive = DefaultActiveManager
	}

	result := stats.AdminStatsResponse{
		TotalUsers:      len(snap.Users),
		TotalTeams:      len(snap.Teams),
		TodayRecordings: len(snap.TodayEvents),
	}

	membersByTeam := make(map[int64][]user.User)
	for _, u := range snap.Users {
		switch u.Role {
		case user.RoleManager:
			result.TotalManagers++
		case user.RoleAdmin:
			result.TotalAdmins++
		default:
			result.TotalEmployees++
		}
		if u.TeamID != nil {
			membersByTeam[*u.TeamID] = append(membersByTeam[*u.TeamID], u)
		}
	}

	open := OpenSessionsByUser(snap.TodayEvents)
	for _, present := range open {
		if present {
			result.CurrentlyPresent++
		}
	}

	teamsByManager := make(map[int64][]team.Team)
	var assigned int
	for _, t := range snap.Teams {
		if !snap.TeamsWithTimetable[t.ID] {
			result.TeamsWithoutTimetable++
		}
		if t.ManagerID != nil {
			teamsByManager[*t.ManagerID] = append(teamsByManager[*t.ManagerID], t)
		}
		assigned += len(membersByTeam[t.ID])
	}
	if len(snap.Teams) > 0 {
		result.AvgTeamSize = round2(float64(assigned) / float64(len(snap.Teams)))
	}

	for _, u := range snap.Users {
		if u.Role != user.RoleManager {
			continue
		}
		var reports []user.User
		for _, t := range teamsByManager[u.ID] {
			reports = append(reports, membersByTeam[t.ID]...)
		}
		if isActive(u, reports, open) {
			result.ActiveManagers++
		} else {
			result.InactiveManagers++
		}
	}

	return result
}
