package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/google/uuid"
)

type Options struct {
	Policy   leave.Policy
	Location *time.Location
	Clock    func() time.Time
	Logger   *slog.Logger
}

type LeaveServiceImpl struct {
	repo leave.LeaveRequestRepository
	opts Options
}

func NewLeaveService(repo leave.LeaveRequestRepository, opts Options) leave.LeaveService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &LeaveServiceImpl{
		repo: repo,
		opts: opts,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, caller auth.Caller, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if caller.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, auth.ErrMissingIdentity
	}

	now := s.opts.Clock()
	today := dateutil.CivilIn(now, s.opts.Location)

	sub, err := leave.ValidateSubmission(req, today, s.opts.Policy)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	created := now.UTC().Truncate(time.Second)
	request := leave.LeaveRequest{
		ID:           id.String(),
		EmployeeID:   caller.EmployeeID,
		EmployeeName: caller.Name,
		Category:     sub.Category,
		StartDate:    sub.StartDate,
		EndDate:      sub.EndDate,
		Reason:       sub.Reason,
		Status:       leave.LeaveRequestStatusPending,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.opts.Logger.InfoContext(ctx, "leave request submitted",
		slog.String("leave_request_id", request.ID),
		slog.String("employee_id", request.EmployeeID),
		slog.Int("days", request.Days()),
	)
	return leave.ToResponse(request), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, caller auth.Caller) (leave.ListLeaveRequestResponse, error) {
	if caller.EmployeeID == "" {
		return leave.ListLeaveRequestResponse{}, auth.ErrMissingIdentity
	}
	return s.list(ctx, leave.Query{EmployeeID: caller.EmployeeID})
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context, caller auth.Caller) (leave.ListLeaveRequestResponse, error) {
	if err := caller.RequireAdmin(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return s.list(ctx, leave.Query{Statuses: []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending}})
}

func (s *LeaveServiceImpl) list(ctx context.Context, q leave.Query) (leave.ListLeaveRequestResponse, error) {
	rows, err := s.repo.ListRaw(ctx, q)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	requests := leave.NormalizeAll(rows)
	return leave.ListLeaveRequestResponse{
		TotalCount:    len(requests),
		LeaveRequests: leave.ToResponses(requests),
	}, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, caller auth.Caller, id string) (leave.LeaveRequestResponse, error) {
	return s.transition(ctx, caller, id, leave.LeaveRequestStatusApproved)
}

// Deny implements leave.LeaveService.
func (s *LeaveServiceImpl) Deny(ctx context.Context, caller auth.Caller, id string) (leave.LeaveRequestResponse, error) {
	return s.transition(ctx, caller, id, leave.LeaveRequestStatusDenied)
}

func (s *LeaveServiceImpl) transition(ctx context.Context, caller auth.Caller, id string, status leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	if err := caller.RequireAdmin(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	request, err := s.decide(ctx, id, status)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	s.opts.Logger.InfoContext(ctx, "leave request decided",
		slog.String("leave_request_id", request.ID),
		slog.String("status", string(status)),
		slog.String("decided_by", caller.EmployeeID),
	)
	return leave.ToResponse(request), nil
}
