package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

// Query bounds a fetch of raw attendance rows. Zero-valued fields do not filter.
type Query struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

// AttendanceRepository returns rows in their stored shape; callers normalize.
type AttendanceRepository interface {
	ListRaw(ctx context.Context, q Query) ([]normalizer.Raw, error)
}
