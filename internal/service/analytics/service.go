package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/employee"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Lateness attendance.LatenessPolicy
	Fleet    FleetPolicy
	Clock    func() time.Time
	Logger   *slog.Logger
}

type AnalyticsServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	opts           Options
}

func NewAnalyticsService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	opts Options,
) analytics.AnalyticsService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Fleet.TrendMonths <= 0 {
		opts.Fleet.TrendMonths = 12
	}
	if opts.Fleet.RankingDays <= 0 {
		opts.Fleet.RankingDays = 90
	}
	if opts.Fleet.WorkWeek == nil {
		opts.Fleet.WorkWeek = dateutil.DefaultWorkWeek
	}
	return &AnalyticsServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		opts:           opts,
	}
}

// Analytics fetches the roster, attendance and approved leave for the trend
// and ranking windows in parallel, then computes the fleet view.
func (s *AnalyticsServiceImpl) Analytics(ctx context.Context, caller auth.Caller) (analytics.AnalyticsResponse, error) {
	if err := caller.RequireAdmin(); err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	today := dateutil.CivilIn(s.opts.Clock(), s.opts.Lateness.Location)
	months := dateutil.LastMonths(today, s.opts.Fleet.TrendMonths)
	from := minDate(months[0][0], dateutil.AddDays(today, -s.opts.Fleet.RankingDays))
	to := months[len(months)-1][1]

	var (
		employeeRaw   []normalizer.Raw
		attendanceRaw []normalizer.Raw
		leaveRaw      []normalizer.Raw
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.employeeRepo.ListRaw(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get employees: %w", err)
		}
		employeeRaw = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.attendanceRepo.ListRaw(gCtx, attendance.Query{StartDate: from, EndDate: to})
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		attendanceRaw = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.leaveRepo.ListRaw(gCtx, leave.Query{
			Statuses: []leave.LeaveRequestStatus{leave.LeaveRequestStatusApproved},
			From:     from,
			To:       to,
		})
		if err != nil {
			return fmt.Errorf("failed to get leave requests: %w", err)
		}
		leaveRaw = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.opts.Logger.ErrorContext(ctx, "analytics fetch failed", slog.String("error", err.Error()))
		return analytics.AnalyticsResponse{}, err
	}

	result := ComputeFleet(FleetInput{
		Today:     today,
		Employees: employee.NormalizeAll(employeeRaw),
		Records:   attendance.NormalizeAll(attendanceRaw, s.opts.Lateness),
		Leaves:    approvedOnly(leave.NormalizeAll(leaveRaw)),
	}, s.opts.Fleet)

	s.opts.Logger.DebugContext(ctx, "analytics computed",
		slog.Int("employees", len(employeeRaw)),
		slog.Int("records", len(attendanceRaw)),
		slog.Float64("score", result.Score),
	)
	return result, nil
}

func approvedOnly(requests []leave.LeaveRequest) []leave.LeaveRequest {
	out := requests[:0]
	for _, r := range requests {
		if r.Status == leave.LeaveRequestStatusApproved {
			out = append(out, r)
		}
	}
	return out
}
