package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/jwt"
)

// RegisterTokenJobs schedules pruning of revoked tokens that have expired.
func RegisterTokenJobs(s *Scheduler, jwtService jwt.Service, interval time.Duration) {
	s.AddJob("prune_revoked_tokens", interval, func(ctx context.Context) error {
		removed := jwtService.PruneRevoked()
		if removed > 0 {
			s.logger.DebugContext(ctx, "revoked tokens pruned", "count", removed)
		}
		return nil
	})
}
