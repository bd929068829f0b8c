package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceRepo struct {
	rows []normalizer.Raw
	got  attendance.Query
}

func (s *stubAttendanceRepo) ListRaw(_ context.Context, q attendance.Query) ([]normalizer.Raw, error) {
	s.got = q
	return s.rows, nil
}

func newTestService(repo *stubAttendanceRepo) attendance.AttendanceService {
	cutoff := 9 * time.Hour
	return NewAttendanceService(repo, Options{
		Lateness: attendance.LatenessPolicy{Cutoff: &cutoff, Location: time.UTC},
	})
}

func TestAttendanceService_ListRange(t *testing.T) {
	// Arrange
	repo := &stubAttendanceRepo{rows: []normalizer.Raw{
		{"id": "1", "employee_id": "e2", "employee_name": "Budi", "date": "2025-03-10", "time_in": "2025-03-10T08:00:00Z"},
		{"id": "2", "employee_id": "e1", "employee_name": "Ana", "date": "2025-03-10", "time_in": "2025-03-10T09:15:00Z"},
		{"id": "3", "employee_id": "e1", "employee_name": "Ana", "date": "2025-03-11"},
		{"id": "4", "employee_id": "e1", "employee_name": "Ana", "date": "2025-04-01"},
	}}
	svc := newTestService(repo)
	admin := auth.Caller{EmployeeID: "a1", Role: auth.RoleAdmin}

	// Act
	got, err := svc.ListRange(context.Background(), admin, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalCount)
	assert.Equal(t, "2025-03-01", got.StartDate)
	assert.Equal(t, []string{"3", "2", "1"}, []string{got.Attendances[0].ID, got.Attendances[1].ID, got.Attendances[2].ID})
	assert.Equal(t, attendance.StatusAbsent, got.Attendances[0].Status)
	assert.Equal(t, attendance.StatusLate, got.Attendances[1].Status)
	assert.Empty(t, repo.got.EmployeeID)
}

func TestAttendanceService_ListRange_StatusFilter(t *testing.T) {
	repo := &stubAttendanceRepo{rows: []normalizer.Raw{
		{"id": "1", "employee_id": "e1", "date": "2025-03-10", "time_in": "2025-03-10T08:00:00Z"},
		{"id": "2", "employee_id": "e1", "date": "2025-03-11", "time_in": "2025-03-11T10:00:00Z"},
	}}
	svc := newTestService(repo)
	late := "late"

	got, err := svc.ListRange(context.Background(), auth.Caller{Role: auth.RoleAdmin}, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-03-31", Status: &late})

	require.NoError(t, err)
	require.Len(t, got.Attendances, 1)
	assert.Equal(t, "2", got.Attendances[0].ID)
}

func TestAttendanceService_ListRange_Errors(t *testing.T) {
	svc := newTestService(&stubAttendanceRepo{})
	ctx := context.Background()

	_, err := svc.ListRange(ctx, auth.Caller{EmployeeID: "e1", Role: auth.RoleEmployee}, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	assert.ErrorIs(t, err, auth.ErrAdminAccessRequired)

	_, err = svc.ListRange(ctx, auth.Caller{Role: auth.RoleAdmin}, attendance.RangeFilter{StartDate: "2025-03-31", EndDate: "2025-03-01"})
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)

	_, err = svc.ListRange(ctx, auth.Caller{Role: auth.RoleAdmin}, attendance.RangeFilter{StartDate: "03/01/2025", EndDate: "2025-03-01"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "startDate")
}

func TestAttendanceService_ListRange_WindowLimit(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := NewAttendanceService(repo, Options{MaxWindowDays: 31})
	admin := auth.Caller{Role: auth.RoleAdmin}

	_, err := svc.ListRange(context.Background(), admin, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-04-01"})
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
	assert.True(t, repo.got.StartDate.IsZero(), "repository must not be queried")

	_, err = svc.ListRange(context.Background(), admin, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	assert.NoError(t, err)
}

func TestAttendanceService_ListMine(t *testing.T) {
	repo := &stubAttendanceRepo{rows: []normalizer.Raw{
		{"id": "1", "employee_id": "e1", "date": "2025-03-10"},
		{"id": "2", "employee_id": "e2", "date": "2025-03-10"},
	}}
	svc := newTestService(repo)

	got, err := svc.ListMine(context.Background(), auth.Caller{EmployeeID: "e1"}, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})

	require.NoError(t, err)
	assert.Equal(t, "e1", repo.got.EmployeeID)
	require.Len(t, got.Attendances, 1)
	assert.Equal(t, "1", got.Attendances[0].ID)

	_, err = svc.ListMine(context.Background(), auth.Caller{}, attendance.RangeFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	assert.ErrorIs(t, err, auth.ErrMissingIdentity)
}
