package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

// Query filters raw leave rows. A request matches the window when its span
// overlaps [From, To]. Zero values do not filter.
type Query struct {
	EmployeeID string
	Statuses   []LeaveRequestStatus
	From       time.Time
	To         time.Time
	Limit      int
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	ListRaw(ctx context.Context, q Query) ([]normalizer.Raw, error)
	GetRaw(ctx context.Context, id string) (normalizer.Raw, error)
	Create(ctx context.Context, request LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, updatedAt time.Time) error
}
