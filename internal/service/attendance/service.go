package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

type Options struct {
	Lateness      attendance.LatenessPolicy
	MaxWindowDays int
	Logger        *slog.Logger
}

type AttendanceServiceImpl struct {
	repo attendance.AttendanceRepository
	opts Options
}

func NewAttendanceService(repo attendance.AttendanceRepository, opts Options) attendance.AttendanceService {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxWindowDays <= 0 {
		opts.MaxWindowDays = report.DefaultMaxWindowDays
	}
	return &AttendanceServiceImpl{
		repo: repo,
		opts: opts,
	}
}

// ListRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRange(ctx context.Context, caller auth.Caller, filter attendance.RangeFilter) (attendance.ListAttendanceResponse, error) {
	if err := caller.RequireAdmin(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	employeeID := ""
	if filter.EmployeeID != nil {
		employeeID = *filter.EmployeeID
	}
	return s.list(ctx, employeeID, filter)
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, caller auth.Caller, filter attendance.RangeFilter) (attendance.ListAttendanceResponse, error) {
	if caller.EmployeeID == "" {
		return attendance.ListAttendanceResponse{}, auth.ErrMissingIdentity
	}
	return s.list(ctx, caller.EmployeeID, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, employeeID string, filter attendance.RangeFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	window, err := report.ParseWindow(filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := window.Limit(s.opts.MaxWindowDays); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	rows, err := s.repo.ListRaw(ctx, attendance.Query{EmployeeID: employeeID, StartDate: window.Start, EndDate: window.End})
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	var want attendance.Status
	if filter.Status != nil {
		want, _ = attendance.ParseStatus(*filter.Status)
	}

	records := make([]attendance.Attendance, 0, len(rows))
	for _, r := range attendance.NormalizeAll(rows, s.opts.Lateness) {
		if !window.Contains(r.Date) {
			continue
		}
		if employeeID != "" && r.EmployeeID != employeeID {
			continue
		}
		if want != "" && r.Status != want {
			continue
		}
		records = append(records, r)
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.EmployeeName < b.EmployeeName
	})

	s.opts.Logger.DebugContext(ctx, "attendance listed",
		slog.String("window", window.String()),
		slog.String("employee_id", employeeID),
		slog.Int("count", len(records)),
	)

	return attendance.ListAttendanceResponse{
		StartDate:   dateutil.Format(window.Start),
		EndDate:     dateutil.Format(window.End),
		TotalCount:  len(records),
		Attendances: attendance.ToResponses(records),
	}, nil
}
