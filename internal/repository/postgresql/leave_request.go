package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/database"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id::text AS id, lr.employee_id::text AS employee_id,
	concat_ws(' ', nullif(e.first_name, ''), nullif(e.last_name, '')) AS employee_name,
	lr.leave_type, to_char(lr.start_date, 'YYYY-MM-DD') AS start_date,
	to_char(lr.end_date, 'YYYY-MM-DD') AS end_date,
	lr.reason, lr.status, lr.created_at, lr.updated_at
`

// ListRaw implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListRaw(ctx context.Context, q leave.Query) ([]normalizer.Raw, error) {
	querier := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	if q.EmployeeID != "" {
		args = append(args, q.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("lr.employee_id::text = $%d", len(args)))
	}
	if len(q.Statuses) > 0 {
		args = append(args, statusSpellings(q.Statuses))
		conditions = append(conditions, fmt.Sprintf("lower(lr.status) = ANY($%d)", len(args)))
	}
	if !q.From.IsZero() {
		args = append(args, q.From)
		conditions = append(conditions, fmt.Sprintf("lr.end_date >= $%d::date", len(args)))
	}
	if !q.To.IsZero() {
		args = append(args, q.To)
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d::date", len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + leaveRequestColumns + " FROM leave_requests lr LEFT JOIN employees e ON e.id = lr.employee_id")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY lr.created_at DESC, lr.id")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := querier.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return toRaw(collectRaw(rows))
}

// GetRaw implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetRaw(ctx context.Context, id string) (normalizer.Raw, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+leaveRequestColumns+" FROM leave_requests lr LEFT JOIN employees e ON e.id = lr.employee_id WHERE lr.id::text = $1", id)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, err
	}
	return normalizer.Raw(row), nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query,
		request.ID,
		request.EmployeeID,
		string(request.Category),
		request.StartDate,
		request.EndDate,
		request.Reason,
		string(request.Status),
		request.CreatedAt,
		request.UpdatedAt,
	)
	return err
}

// UpdateStatus implements leave.LeaveRequestRepository. The row is locked so
// concurrent decisions on the same request cannot both succeed.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, updatedAt time.Time) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx, "SELECT status FROM leave_requests WHERE id::text = $1 FOR UPDATE", id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrLeaveRequestNotFound
			}
			return err
		}
		if leave.ParseStatus(current).IsFinal() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		_, err = tx.Exec(ctx, "UPDATE leave_requests SET status = $2, updated_at = $3 WHERE id::text = $1", id, string(status), updatedAt)
		return err
	})
}

// statusSpellings lowercases statuses and adds legacy spellings.
func statusSpellings(statuses []leave.LeaveRequestStatus) []string {
	out := make([]string, 0, len(statuses)+1)
	for _, s := range statuses {
		out = append(out, strings.ToLower(string(s)))
		if s == leave.LeaveRequestStatusDenied {
			out = append(out, "rejected")
		}
	}
	return out
}
