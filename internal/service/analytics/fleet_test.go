package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/employee"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func march(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

var testFleetPolicy = FleetPolicy{
	Scoring:     analytics.DefaultScoringPolicy(),
	WorkWeek:    dateutil.DefaultWorkWeek,
	TrendMonths: 1,
	RankingDays: 9,
}

func fleetInput() FleetInput {
	return FleetInput{
		Today: march(12).Add(10 * time.Hour),
		Employees: []employee.Employee{
			{ID: "e1", Name: "Ana"},
			{ID: "e2", Name: "Budi"},
		},
		Records: []attendance.Attendance{
			{EmployeeID: "e1", Date: march(3), Status: attendance.StatusPresent},
			{EmployeeID: "e1", Date: march(4), Status: attendance.StatusPresent},
			{EmployeeID: "e1", Date: march(5), Status: attendance.StatusLate},
			{EmployeeID: "e2", Date: march(3), Status: attendance.StatusLate},
			{EmployeeID: "e2", Date: march(4), Status: attendance.StatusLate},
			{EmployeeID: "ghost", Date: march(4), Status: attendance.StatusLate},
		},
		Leaves: []leave.LeaveRequest{
			{EmployeeID: "e2", Category: leave.CategoryVacation, StartDate: march(6), EndDate: march(7), Status: leave.LeaveRequestStatusApproved},
		},
	}
}

func TestComputeFleet(t *testing.T) {
	got := ComputeFleet(fleetInput(), testFleetPolicy)

	assert.Equal(t, []analytics.MonthlyTrendPoint{{Month: "2025-03", Present: 2, Late: 3, Absent: 9}}, got.MonthlyTrend)
	assert.Equal(t, []analytics.LeaveUsagePoint{{Month: "2025-03", Leaves: 1}}, got.LeaveUsageTrend)
	assert.Equal(t, []analytics.BreakdownItem{
		{Label: "Unexcused Absence", Value: 9},
		{Label: "Vacation", Value: 1},
	}, got.AbsenteeismBreakdown)
	assert.Equal(t, []analytics.LatenessPoint{{Name: "Budi", Lates: 2}, {Name: "Ana", Lates: 1}}, got.LatenessByEmployee)
	assert.Equal(t, []analytics.RadarPoint{
		{Metric: "Presence", Value: 12.5},
		{Metric: "Lateness", Value: 18.8},
		{Metric: "Absences", Value: 56.3},
		{Metric: "Leave Usage", Value: 12.5},
	}, got.Radar)
	assert.Equal(t, []analytics.RankingRow{
		{ID: "e2", Name: "Budi", Score: 76, Absences: 4, Lates: 2, Rank: 1},
		{ID: "e1", Name: "Ana", Score: 73, Absences: 5, Lates: 1, Rank: 2},
	}, got.Ranking)
	assert.Equal(t, 74.5, got.Score)
	require.Len(t, got.Insights, 3)
	assert.Equal(t, "Reduce Absenteeism", got.Insights[0].Title)
}

func TestComputeFleet_NoEmployees(t *testing.T) {
	got := ComputeFleet(FleetInput{Today: march(12)}, testFleetPolicy)

	assert.Equal(t, float64(0), got.Score)
	assert.Empty(t, got.Ranking)
	assert.NotNil(t, got.Ranking)
	assert.NotNil(t, got.LatenessByEmployee)
	require.Len(t, got.Insights, 1)
	assert.Equal(t, "Stable Attendance", got.Insights[0].Title)
}

type fakeEmployeeRepo struct{ rows []normalizer.Raw }

func (f *fakeEmployeeRepo) ListRaw(context.Context) ([]normalizer.Raw, error) { return f.rows, nil }

type fakeAttendanceRepo struct {
	rows []normalizer.Raw
	last attendance.Query
}

func (f *fakeAttendanceRepo) ListRaw(_ context.Context, q attendance.Query) ([]normalizer.Raw, error) {
	f.last = q
	return f.rows, nil
}

type fakeLeaveRepo struct {
	leave.LeaveRequestRepository
	rows []normalizer.Raw
	last leave.Query
}

func (f *fakeLeaveRepo) ListRaw(_ context.Context, q leave.Query) ([]normalizer.Raw, error) {
	f.last = q
	return f.rows, nil
}

func TestAnalyticsService_Analytics(t *testing.T) {
	// Arrange
	employees := &fakeEmployeeRepo{rows: []normalizer.Raw{
		{"id": "e1", "first_name": "Ana", "last_name": "Lima"},
	}}
	att := &fakeAttendanceRepo{rows: []normalizer.Raw{
		{"employee_id": "e1", "date": "2025-03-10", "time_in": "2025-03-10T08:00:00Z"},
		{"employee_id": "e1", "date": "2025-03-11", "time_in": "2025-03-11T09:15:00Z"},
	}}
	leaves := &fakeLeaveRepo{rows: []normalizer.Raw{
		{"employee_id": "e1", "leave_type": "sick", "start_date": "2025-03-12", "end_date": "2025-03-12", "status": "Pending"},
	}}
	cutoff := 9 * time.Hour
	svc := NewAnalyticsService(employees, att, leaves, Options{
		Lateness: attendance.LatenessPolicy{Cutoff: &cutoff},
		Fleet:    testFleetPolicy,
		Clock:    func() time.Time { return march(12) },
	})

	// Act
	got, err := svc.Analytics(context.Background(), auth.Caller{EmployeeID: "admin", Role: auth.RoleAdmin})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, march(1), att.last.StartDate)
	assert.Equal(t, march(31), att.last.EndDate)
	assert.Equal(t, []leave.LeaveRequestStatus{leave.LeaveRequestStatusApproved}, leaves.last.Statuses)
	require.Len(t, got.Ranking, 1)
	// 03-03..03-12 has 8 working days: 1 present, 1 late, pending leave does not excuse
	assert.Equal(t, analytics.RankingRow{ID: "e1", Name: "Ana Lima", Score: 68, Absences: 6, Lates: 1, Rank: 1}, got.Ranking[0])
}

func TestAnalyticsService_RequiresAdmin(t *testing.T) {
	svc := NewAnalyticsService(&fakeEmployeeRepo{}, &fakeAttendanceRepo{}, &fakeLeaveRepo{}, Options{})

	_, err := svc.Analytics(context.Background(), auth.Caller{EmployeeID: "e1", Role: auth.RoleEmployee})

	assert.ErrorIs(t, err, auth.ErrAdminAccessRequired)
}
