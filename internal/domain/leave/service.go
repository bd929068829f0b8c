package leave

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
)

type LeaveService interface {
	// Submit validates a draft and stores it as Pending for the caller
	Submit(ctx context.Context, caller auth.Caller, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	ListMine(ctx context.Context, caller auth.Caller) (ListLeaveRequestResponse, error)

	// ListPending returns requests awaiting a decision (admin)
	ListPending(ctx context.Context, caller auth.Caller) (ListLeaveRequestResponse, error)

	Approve(ctx context.Context, caller auth.Caller, id string) (LeaveRequestResponse, error)
	Deny(ctx context.Context, caller auth.Caller, id string) (LeaveRequestResponse, error)
}
