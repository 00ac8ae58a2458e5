package stats

import (
	"context"
	"testing"
	"time"

	"github.com/pointagehq/attendance-backend-go/internal/domain/punch"
	"github.com/pointagehq/attendance-backend-go/internal/domain/schedule"
	"github.com/pointagehq/attendance-backend-go/internal/domain/stats"
	"github.com/pointagehq/attendance-backend-go/internal/domain/team"
	"github.com/pointagehq/attendance-backend-go/internal/domain/user"
	sessionsvc "github.com/pointagehq/attendance-backend-go/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The statistics core performs no I/O itself; it operates on a snapshot
// served by the repositories. In-memory fakes stand in for the data source.

type fakePunchRepo struct {
	byUser map[int64][]punch.Event
	byDate []punch.Event
}

func (f *fakePunchRepo) ListByUser(_ context.Context, userID int64, from, to time.Time) ([]punch.Event, error) {
	events := make([]punch.Event, 0)
	for _, ev := range f.byUser[userID] {
		if !from.IsZero() && ev.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !ev.Timestamp.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (f *fakePunchRepo) ListByDate(_ context.Context, date time.Time) ([]punch.Event, error) {
	events := make([]punch.Event, 0)
	for _, ev := range f.byDate {
		if !ev.Timestamp.Before(date) && ev.Timestamp.Before(date.AddDate(0, 0, 1)) {
			events = append(events, ev)
		}
	}
	return events, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByTeam(_ context.Context, teamID int64) ([]user.User, error) {
	members := make([]user.User, 0)
	for _, u := range f.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			members = append(members, u)
		}
	}
	return members, nil
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]user.User, error) {
	return f.users, nil
}

type fakeTeamRepo struct {
	teams []team.Team
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (team.Team, error) {
	for _, t := range f.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return team.Team{}, team.ErrTeamNotFound
}

func (f *fakeTeamRepo) ListAll(_ context.Context) ([]team.Team, error) {
	return f.teams, nil
}

type fakeScheduleRepo struct {
	byTeam map[int64]schedule.ShiftSchedule
}

func (f *fakeScheduleRepo) GetByTeam(_ context.Context, teamID int64) (schedule.ShiftSchedule, error) {
	sched, ok := f.byTeam[teamID]
	if !ok {
		return schedule.ShiftSchedule{}, schedule.ErrTimetableNotFound
	}
	return sched, nil
}

func (f *fakeScheduleRepo) ListTeamIDsWithTimetable(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.byTeam))
	for id := range f.byTeam {
		ids = append(ids, id)
	}
	return ids, nil
}

func punchEvent(id, userID int64, kind punch.Kind, ts string) punch.Event {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic("bad timestamp in test: " + ts)
	}
	return punch.Event{ID: id, UserID: userID, Kind: kind, Timestamp: parsed}
}

func teamSchedule(teamID int64, start string) schedule.ShiftSchedule {
	s, err := schedule.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	e, err := schedule.ParseTimeOfDay("17:00")
	if err != nil {
		panic(err)
	}
	return schedule.ShiftSchedule{TeamID: teamID, ShiftStart: s, ShiftEnd: e}
}

func newTestService(punchRepo *fakePunchRepo, userRepo *fakeUserRepo, teamRepo *fakeTeamRepo, scheduleRepo *fakeScheduleRepo) *StatisticsServiceImpl {
	return &StatisticsServiceImpl{
		punchRepo:     punchRepo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		scheduleRepo:  scheduleRepo,
		reconstructor: sessionsvc.NewReconstructor(),
		grace:         DefaultGracePeriod,
		workerLimit:   DefaultWorkerLimit,
		activeManager: DefaultActiveManager,
		now:           func() time.Time { return time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC) },
	}
}

func dateRange(start, end string) stats.DateRange {
	var rng stats.DateRange
	if start != "" {
		rng.Start, _ = time.Parse("2006-01-02", start)
	}
	if end != "" {
		rng.End, _ = time.Parse("2006-01-02", end)
	}
	return rng
}

func TestGetUserStatistics_Success(t *testing.T) {
	t.Parallel()
	teamID := int64(100)
	punchRepo := &fakePunchRepo{byUser: map[int64][]punch.Event{
		10: {
			punchEvent(1, 10, punch.KindArrival, "2026-01-05T07:58:00Z"),
			punchEvent(2, 10, punch.KindDeparture, "2026-01-05T16:00:00Z"),
			punchEvent(3, 10, punch.KindArrival, "2026-01-06T08:30:00Z"),
			punchEvent(4, 10, punch.KindDeparture, "2026-01-06T16:30:00Z"),
		},
	}}
	userRepo := &fakeUserRepo{users: []user.User{{ID: 10, Name: "Alice", Role: user.RoleEmployee, TeamID: &teamID}}}
	scheduleRepo := &fakeScheduleRepo{byTeam: map[int64]schedule.ShiftSchedule{100: teamSchedule(100, "08:00")}}
	svc := newTestService(punchRepo, userRepo, &fakeTeamRepo{}, scheduleRepo)

	result, err := svc.GetUserStatistics(context.Background(), 10, stats.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, int64(10), result.UserID)
	assert.Equal(t, 16.03, result.TotalHours)
	assert.Equal(t, 2, result.TotalDays)
	require.NotNil(t, result.PunctualityRate)
	assert.Equal(t, 50, *result.PunctualityRate)
	require.NotNil(t, result.PunctualityLabel)
	assert.Equal(t, "À améliorer", *result.PunctualityLabel)
	assert.Empty(t, result.Anomalies)
}

func TestGetUserStatistics_UnknownUser(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakePunchRepo{}, &fakeUserRepo{}, &fakeTeamRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetUserStatistics(context.Background(), 99, stats.DateRange{})

	assert.ErrorIs(t, err, stats.ErrUnknownUser)
}

func TestGetUserStatistics_InvalidRange(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakePunchRepo{}, &fakeUserRepo{}, &fakeTeamRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetUserStatistics(context.Background(), 10, dateRange("2026-01-10", "2026-01-05"))

	assert.ErrorIs(t, err, stats.ErrInvalidRange)
}

func TestGetUserStatistics_RangeIsInclusive(t *testing.T) {
	t.Parallel()
	punchRepo := &fakePunchRepo{byUser: map[int64][]punch.Event{
		10: {
			punchEvent(1, 10, punch.KindArrival, "2026-01-05T08:00:00Z"),
			punchEvent(2, 10, punch.KindDeparture, "2026-01-05T16:00:00Z"),
			punchEvent(3, 10, punch.KindArrival, "2026-01-06T08:00:00Z"),
			punchEvent(4, 10, punch.KindDeparture, "2026-01-06T16:00:00Z"),
			punchEvent(5, 10, punch.KindArrival, "2026-01-07T08:00:00Z"),
			punchEvent(6, 10, punch.KindDeparture, "2026-01-07T16:00:00Z"),
		},
	}}
	userRepo := &fakeUserRepo{users: []user.User{{ID: 10, Name: "Alice", Role: user.RoleEmployee}}}
	svc := newTestService(punchRepo, userRepo, &fakeTeamRepo{}, &fakeScheduleRepo{})

	result, err := svc.GetUserStatistics(context.Background(), 10, dateRange("2026-01-06", "2026-01-06"))

	require.NoError(t, err)
	require.Len(t, result.WorkSessions, 1)
	assert.Equal(t, "2026-01-06", result.WorkSessions[0].Date)
}

func TestGetUserStatistics_NoTimetable(t *testing.T) {
	t.Parallel()
	punchRepo := &fakePunchRepo{byUser: map[int64][]punch.Event{
		10: {
			punchEvent(1, 10, punch.KindArrival, "2026-01-06T08:00:00Z"),
			punchEvent(2, 10, punch.KindDeparture, "2026-01-06T16:00:00Z"),
		},
	}}
	// User belongs to a team, but the team has no timetable.
	teamID := int64(100)
	userRepo := &fakeUserRepo{users: []user.User{{ID: 10, Name: "Alice", Role: user.RoleEmployee, TeamID: &teamID}}}
	svc := newTestService(punchRepo, userRepo, &fakeTeamRepo{}, &fakeScheduleRepo{byTeam: map[int64]schedule.ShiftSchedule{}})

	result, err := svc.GetUserStatistics(context.Background(), 10, stats.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, 8.0, result.TotalHours)
	assert.Nil(t, result.PunctualityRate)
}

func TestGetTeamStatistics_Success(t *testing.T) {
	t.Parallel()
	teamID := int64(100)
	managerID := int64(2)
	punchRepo := &fakePunchRepo{byUser: map[int64][]punch.Event{
		10: {
			punchEvent(1, 10, punch.KindArrival, "2026-01-06T08:00:00Z"),
			punchEvent(2, 10, punch.KindDeparture, "2026-01-06T16:00:00Z"),
		},
		11: {
			punchEvent(3, 11, punch.KindArrival, "2026-01-06T09:00:00Z"),
			punchEvent(4, 11, punch.KindDeparture, "2026-01-06T15:00:00Z"),
		},
	}}
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: 2, Name: "Marie", Role: user.RoleManager},
		{ID: 10, Name: "Alice", Role: user.RoleEmployee, TeamID: &teamID},
		{ID: 11, Name: "Bob", Role: user.RoleEmployee, TeamID: &teamID},
	}}
	teamRepo := &fakeTeamRepo{teams: []team.Team{{ID: 100, Name: "Support", ManagerID: &managerID}}}
	scheduleRepo := &fakeScheduleRepo{byTeam: map[int64]schedule.ShiftSchedule{100: teamSchedule(100, "08:00")}}
	svc := newTestService(punchRepo, userRepo, teamRepo, scheduleRepo)

	result, err := svc.GetTeamStatistics(context.Background(), 100, dateRange("2026-01-01", "2026-01-31"))

	require.NoError(t, err)
	assert.Equal(t, int64(100), result.TeamID)
	assert.Equal(t, "Support", result.TeamName)
	require.NotNil(t, result.Manager)
	assert.Equal(t, "Marie", result.Manager.Name)
	require.Len(t, result.Statistics, 2)

	assert.Equal(t, 2, result.Aggregated.TotalMembers)
	assert.Equal(t, 14.0, result.Aggregated.TotalHours)
	assert.Equal(t, 1.0, result.Aggregated.AverageDaysWorked)
	assert.Equal(t, 7.0, result.Aggregated.AverageHoursPerDay)

	require.NotNil(t, result.Period.StartDate)
	assert.Equal(t, "2026-01-01", *result.Period.StartDate)
	require.NotNil(t, result.Period.EndDate)
	assert.Equal(t, "2026-01-31", *result.Period.EndDate)
}

func TestGetTeamStatistics_UnknownTeam(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakePunchRepo{}, &fakeUserRepo{}, &fakeTeamRepo{}, &fakeScheduleRepo{})

	_, err := svc.GetTeamStatistics(context.Background(), 999, stats.DateRange{})

	assert.ErrorIs(t, err, stats.ErrUnknownTeam)
}

func TestGetAdminStatistics(t *testing.T) {
	t.Parallel()
	teamA := int64(100)
	teamB := int64(200)
	managerA := int64(2)
	managerB := int64(3)
	punchRepo := &fakePunchRepo{byDate: []punch.Event{
		// now is fixed to 2026-01-06; yesterday's event must not count.
		punchEvent(1, 10, punch.KindArrival, "2026-01-05T08:00:00Z"),
		punchEvent(2, 10, punch.KindArrival, "2026-01-06T08:00:00Z"),
		punchEvent(3, 12, punch.KindArrival, "2026-01-06T08:05:00Z"),
		punchEvent(4, 12, punch.KindDeparture, "2026-01-06T12:00:00Z"),
	}}
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: 1, Name: "Root", Role: user.RoleAdmin},
		{ID: 2, Name: "Marie", Role: user.RoleManager},
		{ID: 3, Name: "Paul", Role: user.RoleManager},
		{ID: 10, Name: "Alice", Role: user.RoleEmployee, TeamID: &teamA},
		{ID: 12, Name: "Carol", Role: user.RoleEmployee, TeamID: &teamB},
	}}
	teamRepo := &fakeTeamRepo{teams: []team.Team{
		{ID: 100, Name: "Support", ManagerID: &managerA},
		{ID: 200, Name: "Ventes", ManagerID: &managerB},
	}}
	scheduleRepo := &fakeScheduleRepo{byTeam: map[int64]schedule.ShiftSchedule{100: teamSchedule(100, "08:00")}}
	svc := newTestService(punchRepo, userRepo, teamRepo, scheduleRepo)

	result, err := svc.GetAdminStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalUsers)
	assert.Equal(t, 2, result.TotalEmployees)
	assert.Equal(t, 2, result.TotalManagers)
	assert.Equal(t, 1, result.TotalAdmins)
	assert.Equal(t, 3, result.TodayRecordings)
	assert.Equal(t, 1, result.CurrentlyPresent)
	assert.Equal(t, 1, result.TeamsWithoutTimetable)
	assert.Equal(t, 1.0, result.AvgTeamSize)
	assert.Equal(t, 1, result.ActiveManagers)
	assert.Equal(t, 1, result.InactiveManagers)
}
