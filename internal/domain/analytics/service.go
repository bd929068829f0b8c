package analytics

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
)

type AnalyticsService interface {
	// Analytics computes trends, ranking and insights across all employees (admin)
	Analytics(ctx context.Context, caller auth.Caller) (AnalyticsResponse, error)
}
