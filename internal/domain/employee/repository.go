package employee

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

type EmployeeRepository interface {
	// ListRaw returns every active employee
	ListRaw(ctx context.Context) ([]normalizer.Raw, error)
}
