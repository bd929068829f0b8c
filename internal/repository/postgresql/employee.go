package postgresql

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/domain/employee"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/database"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// ListRaw implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListRaw(ctx context.Context) ([]normalizer.Raw, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id::text AS id, e.first_name, e.last_name,
			   concat_ws(' ', nullif(e.first_name, ''), nullif(e.last_name, '')) AS full_name,
			   e.role
		FROM employees e
		ORDER BY e.first_name, e.last_name, e.id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return toRaw(collectRaw(rows))
}

func toRaw(maps []map[string]any, err error) ([]normalizer.Raw, error) {
	if err != nil {
		return nil, err
	}
	out := make([]normalizer.Raw, len(maps))
	for i, m := range maps {
		out[i] = normalizer.Raw(m)
	}
	return out, nil
}
