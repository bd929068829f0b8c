package dashboard

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Summary returns today's totals, the trailing trend, top late employees and recent leave requests
	Summary(ctx context.Context, caller auth.Caller) (DashboardResponse, error)
}
