package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/database"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListRaw implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRaw(ctx context.Context, q attendance.Query) ([]normalizer.Raw, error) {
	querier := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	if q.EmployeeID != "" {
		args = append(args, q.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("a.employee_id::text = $%d", len(args)))
	}
	if !q.StartDate.IsZero() {
		args = append(args, q.StartDate)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", len(args)))
	}
	if !q.EndDate.IsZero() {
		args = append(args, q.EndDate)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT a.id::text AS id, a.employee_id::text AS employee_id,
			   concat_ws(' ', nullif(e.first_name, ''), nullif(e.last_name, '')) AS employee_name,
			   to_char(a.date, 'YYYY-MM-DD') AS date,
			   a.clock_in AS time_in, a.clock_out AS time_out,
			   a.status, a.hours_worked::float8 AS hours_worked
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
	`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY a.date, a.employee_id")

	rows, err := querier.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return toRaw(collectRaw(rows))
}
