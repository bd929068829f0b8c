package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLeaveRepo struct {
	rows    map[string]normalizer.Raw
	created []leave.LeaveRequest
	queries []leave.Query
}

func newMemoryLeaveRepo() *memoryLeaveRepo {
	return &memoryLeaveRepo{rows: map[string]normalizer.Raw{}}
}

func (m *memoryLeaveRepo) ListRaw(_ context.Context, q leave.Query) ([]normalizer.Raw, error) {
	m.queries = append(m.queries, q)
	var out []normalizer.Raw
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryLeaveRepo) GetRaw(_ context.Context, id string) (normalizer.Raw, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (m *memoryLeaveRepo) Create(_ context.Context, r leave.LeaveRequest) error {
	m.created = append(m.created, r)
	m.rows[r.ID] = normalizer.Raw{"id": r.ID, "status": string(r.Status), "start_date": "2025-03-13"}
	return nil
}

func (m *memoryLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.LeaveRequestStatus, _ time.Time) error {
	m.rows[id]["status"] = string(status)
	return nil
}

var (
	employeeCaller = auth.Caller{EmployeeID: "e1", Name: "Ana", Role: auth.RoleEmployee}
	adminCaller    = auth.Caller{EmployeeID: "a1", Name: "Boss", Role: auth.RoleAdmin}
)

func newTestLeaveService(repo *memoryLeaveRepo) leave.LeaveService {
	return NewLeaveService(repo, Options{
		Policy: leave.DefaultPolicy(),
		Clock:  func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) },
	})
}

func TestLeaveService_Submit(t *testing.T) {
	// Arrange
	repo := newMemoryLeaveRepo()
	svc := newTestLeaveService(repo)

	// Act
	got, err := svc.Submit(context.Background(), employeeCaller, leave.SubmitLeaveRequest{
		LeaveType: "sick",
		StartDate: "2025-03-13",
		EndDate:   "2025-03-14",
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, leave.LeaveRequestStatusPending, got.Status)
	assert.Equal(t, "e1", got.EmployeeID)
	assert.Equal(t, "Ana", got.EmployeeName)
	assert.Equal(t, 2, got.Days)
	assert.Equal(t, "2025-03-10T15:00:00Z", got.CreatedAt)
	assert.NotEmpty(t, got.ID)
}

func TestLeaveService_Submit_Rejected(t *testing.T) {
	repo := newMemoryLeaveRepo()
	svc := newTestLeaveService(repo)

	_, err := svc.Submit(context.Background(), employeeCaller, leave.SubmitLeaveRequest{
		LeaveType: "sick",
		StartDate: "2025-03-12",
		EndDate:   "2025-03-14",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("advance_notice"))
	assert.Empty(t, repo.created)

	_, err = svc.Submit(context.Background(), auth.Caller{}, leave.SubmitLeaveRequest{})
	assert.ErrorIs(t, err, auth.ErrMissingIdentity)
}

func TestLeaveService_ApproveAndDeny(t *testing.T) {
	repo := newMemoryLeaveRepo()
	repo.rows["l1"] = normalizer.Raw{"id": "l1", "status": "Pending", "start_date": "2025-03-13"}
	repo.rows["l2"] = normalizer.Raw{"id": "l2", "start_date": "2025-03-13"}
	svc := newTestLeaveService(repo)
	ctx := context.Background()

	_, err := svc.Approve(ctx, employeeCaller, "l1")
	assert.ErrorIs(t, err, auth.ErrAdminAccessRequired)

	approved, err := svc.Approve(ctx, adminCaller, "l1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)

	_, err = svc.Deny(ctx, adminCaller, "l1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	denied, err := svc.Deny(ctx, adminCaller, "l2")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusDenied, denied.Status)

	_, err = svc.Approve(ctx, adminCaller, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_Lists(t *testing.T) {
	repo := newMemoryLeaveRepo()
	repo.rows["l1"] = normalizer.Raw{"id": "l1", "employee_id": "e1", "start_date": "2025-03-13"}
	svc := newTestLeaveService(repo)
	ctx := context.Background()

	mine, err := svc.ListMine(ctx, employeeCaller)
	require.NoError(t, err)
	assert.Equal(t, 1, mine.TotalCount)
	assert.Equal(t, "e1", repo.queries[0].EmployeeID)

	_, err = svc.ListPending(ctx, employeeCaller)
	assert.ErrorIs(t, err, auth.ErrAdminAccessRequired)

	pending, err := svc.ListPending(ctx, adminCaller)
	require.NoError(t, err)
	assert.Equal(t, 1, pending.TotalCount)
	assert.Equal(t, []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending}, repo.queries[1].Statuses)
}
