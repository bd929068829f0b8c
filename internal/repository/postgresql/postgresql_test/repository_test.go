package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/employee"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	require.NoError(t, err)
	if setup == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(func() {
		_ = setup.TruncateAllTables(context.Background())
		setup.Close()
	})
	return setup
}

func TestRepositories_RoundTrip(t *testing.T) {
	setup := setupDatabase(t)
	ctx := context.Background()
	db := setup.DB

	// Arrange
	ana := uuid.NewString()
	_, err := db.Exec(ctx, `INSERT INTO employees (id, first_name, last_name, role) VALUES ($1, 'Ana', 'Putri', 'employee')`, ana)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO attendances (id, employee_id, date, clock_in, clock_out, hours_worked)
		VALUES ($1, $2, '2025-03-10', '2025-03-10T08:00:00Z', '2025-03-10T17:00:00Z', 9),
		       ($3, $2, '2025-04-01', '2025-04-01T09:30:00Z', NULL, NULL)`,
		uuid.NewString(), ana, uuid.NewString())
	require.NoError(t, err)

	employees, err := postgresql.NewEmployeeRepository(db).ListRaw(ctx)
	require.NoError(t, err)
	roster := employee.NormalizeAll(employees)
	require.Len(t, roster, 1)
	assert.Equal(t, "Ana Putri", roster[0].Name)

	// Act
	rows, err := postgresql.NewAttendanceRepository(db).ListRaw(ctx, attendance.Query{
		EmployeeID: ana,
		StartDate:  dateutil.Date(2025, 3, 1),
		EndDate:    dateutil.Date(2025, 3, 31),
	})

	// Assert
	require.NoError(t, err)
	records := attendance.NormalizeAll(rows, attendance.LatenessPolicy{})
	require.Len(t, records, 1)
	assert.Equal(t, "Ana Putri", records[0].EmployeeName)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)
	assert.Equal(t, 9*time.Hour, records[0].Worked)
	assert.Equal(t, dateutil.Date(2025, 3, 10), records[0].Date)
}

func TestLeaveRequestRepository_Lifecycle(t *testing.T) {
	setup := setupDatabase(t)
	ctx := context.Background()
	db := setup.DB
	repo := postgresql.NewLeaveRequestRepository(db)

	ana := uuid.NewString()
	_, err := db.Exec(ctx, `INSERT INTO employees (id, first_name) VALUES ($1, 'Ana')`, ana)
	require.NoError(t, err)

	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	request := leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: ana,
		Category:   leave.CategorySick,
		StartDate:  dateutil.Date(2025, 3, 13),
		EndDate:    dateutil.Date(2025, 3, 14),
		Status:     leave.LeaveRequestStatusPending,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	require.NoError(t, repo.Create(ctx, request))

	pending, err := repo.ListRaw(ctx, leave.Query{
		Statuses: []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending},
		From:     dateutil.Date(2025, 3, 14),
		To:       dateutil.Date(2025, 3, 20),
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	got := leave.Normalize(pending[0], 0)
	assert.Equal(t, request.ID, got.ID)
	assert.Equal(t, "Ana", got.EmployeeName)
	assert.Equal(t, 2, got.Days())

	require.NoError(t, repo.UpdateStatus(ctx, request.ID, leave.LeaveRequestStatusApproved, created.Add(time.Hour)))
	err = repo.UpdateStatus(ctx, request.ID, leave.LeaveRequestStatusDenied, created.Add(2*time.Hour))
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	raw, err := repo.GetRaw(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, leave.Normalize(raw, 0).Status)

	_, err = repo.GetRaw(ctx, uuid.NewString())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
