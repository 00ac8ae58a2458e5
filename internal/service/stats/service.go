package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pointagehq/attendance-backend-go/internal/domain/punch"
	"github.com/pointagehq/attendance-backend-go/internal/domain/schedule"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
	"github.com/pointagehq/attendance-backend-go/internal/domain/team"
	"github.com/pointagehq/attendance-backend-go/internal/domain/user"
	sessionsvc "github.com/pointagehq/attendance-backend-go/internal/service/session"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkerLimit bounds parallel per-member computations.
const DefaultWorkerLimit = 8

type StatisticsServiceImpl struct {
	punchRepo    punch.EventRepository
	userRepo     user.Repository
	teamRepo     team.Repository
	scheduleRepo schedule.Repository

	reconstructor *sessionsvc.Reconstructor
	grace         time.Duration
	workerLimit   int
	activeManager ActiveManagerPredicate
	now           func() time.Time
}

func NewStatisticsService(
	punchRepo punch.EventRepository,
	userRepo user.Repository,
	teamRepo team.Repository,
	scheduleRepo schedule.Repository,
	grace time.Duration,
	workerLimit int,
) stats.StatisticsService {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	if workerLimit <= 0 {
		workerLimit = DefaultWorkerLimit
	}
	return &StatisticsServiceImpl{
		punchRepo:     punchRepo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		scheduleRepo:  scheduleRepo,
		reconstructor: sessionsvc.NewReconstructor(),
		grace:         grace,
		workerLimit:   workerLimit,
		activeManager: DefaultActiveManager,
		now:           time.Now,
	}
}

// GetUserStatistics implements stats.StatisticsService.
func (s *StatisticsServiceImpl) GetUserStatistics(ctx context.Context, userID int64, rng stats.DateRange) (stats.UserStatistics, error) {
	if err := rng.Validate(); err != nil {
		return stats.UserStatistics{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return stats.UserStatistics{}, stats.ErrUnknownUser
		}
		return stats.UserStatistics{}, fmt.Errorf("failed to get user: %w", err)
	}

	sched, err := s.scheduleForUser(ctx, u)
	if err != nil {
		return stats.UserStatistics{}, err
	}

	events, err := s.punchRepo.ListByUser(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return stats.UserStatistics{}, fmt.Errorf("failed to list punch events: %w", err)
	}

	sessions, anomalies := s.reconstructor.Reconstruct(events)
	return AggregateUser(u, sessions, anomalies, sched, s.grace), nil
}

// GetTeamStatistics implements stats.StatisticsService.
// Per-member computations are independent and run on a bounded worker pool;
// the rollup is commutative, so completion order never changes the result.
func (s *StatisticsServiceImpl) GetTeamStatistics(ctx context.Context, teamID int64, rng stats.DateRange) (stats.TeamStatsResponse, error) {
	if err := rng.Validate(); err != nil {
		return stats.TeamStatsResponse{}, err
	}

	t, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			return stats.TeamStatsResponse{}, stats.ErrUnknownTeam
		}
		return stats.TeamStatsResponse{}, fmt.Errorf("failed to get team: %w", err)
	}

	manager, err := s.resolveManager(ctx, t)
	if err != nil {
		return stats.TeamStatsResponse{}, err
	}

	members, err := s.userRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return stats.TeamStatsResponse{}, fmt.Errorf("failed to list team members: %w", err)
	}

	sched, err := s.scheduleForTeam(ctx, teamID)
	if err != nil {
		return stats.TeamStatsResponse{}, err
	}

	results := make([]stats.UserStatistics, len(members))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			events, err := s.punchRepo.ListByUser(gCtx, member.ID, rng.Start, rng.End)
			if err != nil {
				return fmt.Errorf("failed to list punch events for user %d: %w", member.ID, err)
			}
			sessions, anomalies := s.reconstructor.Reconstruct(events)
			results[i] = AggregateUser(member, sessions, anomalies, sched, s.grace)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats.TeamStatsResponse{}, err
	}

	return stats.TeamStatsResponse{
		TeamID:     t.ID,
		TeamName:   t.Name,
		Manager:    manager,
		Statistics: results,
		Aggregated: RollupTeam(results),
		Period:     rng.Period(),
	}, nil
}

// GetAdminStatistics implements stats.StatisticsService.
func (s *StatisticsServiceImpl) GetAdminStatistics(ctx context.Context) (stats.AdminStatsResponse, error) {
	today := s.today()

	var snap AdminSnapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := s.userRepo.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		snap.Users = users
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		snap.Teams = teams
		return nil
	})
	g.Go(func() error {
		events, err := s.punchRepo.ListByDate(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to list today's punch events: %w", err)
		}
		snap.TodayEvents = events
		return nil
	})
	g.Go(func() error {
		ids, err := s.scheduleRepo.ListTeamIDsWithTimetable(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list timetabled teams: %w", err)
		}
		snap.TeamsWithTimetable = make(map[int64]bool, len(ids))
		for _, id := range ids {
			snap.TeamsWithTimetable[id] = true
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return stats.AdminStatsResponse{}, err
	}

	return ComputeAdminStats(snap, s.activeManager), nil
}

// resolveManager is the explicit hierarchy check invoked before computation:
// a team referencing a missing manager is a data invariant violation, not a
// computable scope.
func (s *StatisticsServiceImpl) resolveManager(ctx context.Context, t team.Team) (*stats.UserSummary, error) {
	if t.ManagerID == nil {
		return nil, nil
	}
	m, err := s.userRepo.GetByID(ctx, *t.ManagerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, fmt.Errorf("team %d references missing manager %d: %w", t.ID, *t.ManagerID, err)
		}
		return nil, fmt.Errorf("failed to get team manager: %w", err)
	}
	return &stats.UserSummary{ID: m.ID, Name: m.Name}, nil
}

func (s *StatisticsServiceImpl) scheduleForUser(ctx context.Context, u user.User) (*schedule.ShiftSchedule, error) {
	if u.TeamID == nil {
		return nil, nil
	}
	return s.scheduleForTeam(ctx, *u.TeamID)
}

// scheduleForTeam returns nil when the team has no timetable; punctuality is
// then simply not computed.
func (s *StatisticsServiceImpl) scheduleForTeam(ctx context.Context, teamID int64) (*schedule.ShiftSchedule, error) {
	sched, err := s.scheduleRepo.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, schedule.ErrTimetableNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift schedule: %w", err)
	}
	return &sched, nil
}

func (s *StatisticsServiceImpl) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
