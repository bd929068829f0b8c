package attendance

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
)

// AttendanceService exposes normalized attendance to callers
type AttendanceService interface {
	// ListRange returns every employee's records in the window (admin)
	ListRange(ctx context.Context, caller auth.Caller, filter RangeFilter) (ListAttendanceResponse, error)

	// ListMine returns the caller's own records in the window
	ListMine(ctx context.Context, caller auth.Caller, filter RangeFilter) (ListAttendanceResponse, error)
}
