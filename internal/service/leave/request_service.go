package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
)

// decide moves a pending request to its final status.
func (s *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	raw, err := s.repo.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	request := leave.Normalize(raw, 0)
	if request.Status.IsFinal() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := s.opts.Clock().UTC().Truncate(time.Second)
	if err := s.repo.UpdateStatus(ctx, request.ID, status, now); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	request.Status = status
	request.UpdatedAt = now
	return request, nil
}
