package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"golang.org/x/sync/errgroup"
)

// Options carries the policy the report service applies.
type Options struct {
	Lateness      attendance.LatenessPolicy
	Heatmap       report.HeatmapPolicy
	RecentLimit   int
	MaxWindowDays int
	Clock         func() time.Time
	Logger        *slog.Logger
}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	opts           Options
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, leaveRepo leave.LeaveRequestRepository, opts Options) report.ReportService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 14
	}
	if opts.MaxWindowDays <= 0 {
		opts.MaxWindowDays = report.DefaultMaxWindowDays
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		opts:           opts,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	return dateutil.CivilIn(s.opts.Clock(), s.opts.Lateness.Location)
}

// EmployeeReport builds one employee's monthly report
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context, caller auth.Caller, req report.EmployeeReportRequest) (report.EmployeeReportResponse, error) {
	employeeID := caller.EmployeeID
	if req.EmployeeID != nil && *req.EmployeeID != "" && *req.EmployeeID != caller.EmployeeID {
		if err := caller.RequireAdmin(); err != nil {
			return report.EmployeeReportResponse{}, err
		}
		employeeID = *req.EmployeeID
	}
	if employeeID == "" {
		return report.EmployeeReportResponse{}, report.ErrEmployeeNotIdentified
	}

	today := s.today()
	month := req.Month
	if month == "" {
		month = today.Format(dateutil.MonthLayout)
	}
	window, err := report.MonthWindow(month)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}
	previous := window.Previous()

	var (
		currentRaw  []normalizer.Raw
		previousRaw []normalizer.Raw
		leaveRaw    []normalizer.Raw
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.attendanceRepo.ListRaw(gCtx, attendance.Query{EmployeeID: employeeID, StartDate: window.Start, EndDate: window.End})
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		currentRaw = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.attendanceRepo.ListRaw(gCtx, attendance.Query{EmployeeID: employeeID, StartDate: previous.Start, EndDate: previous.End})
		if err != nil {
			return fmt.Errorf("failed to get previous attendance: %w", err)
		}
		previousRaw = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.leaveRepo.ListRaw(gCtx, leave.Query{
			EmployeeID: employeeID,
			Statuses:   []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved},
			From:       previous.Start,
			To:         window.End,
		})
		if err != nil {
			return fmt.Errorf("failed to get leave requests: %w", err)
		}
		leaveRaw = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.opts.Logger.ErrorContext(ctx, "employee report fetch failed", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		return report.EmployeeReportResponse{}, err
	}

	current := attendance.NormalizeAll(currentRaw, s.opts.Lateness)
	before := attendance.NormalizeAll(previousRaw, s.opts.Lateness)
	leaves := leave.NormalizeAll(leaveRaw)

	onLeave := leave.CoveredDates(leaves, previous.Start, window.End)
	excluded := func(c report.HeatmapCell) bool { return onLeave[c.Date] }

	heatmap, err := BuildTrack(current, window)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}
	heatmap = PromoteUnknown(heatmap, today, s.opts.Heatmap, excluded)

	previousCells, err := BuildTrack(before, previous)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}
	previousCells = PromoteUnknown(previousCells, today, s.opts.Heatmap, excluded)

	displayed := CountCells(heatmap)
	prevDisplayed := CountCells(previousCells)

	comparisons, err := Compare(window, previous, displayed, prevDisplayed)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}

	summary, err := Summarize(current, window, s.opts.Lateness.Location)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}

	leaveRequests := 0
	for _, l := range leaves {
		if !l.EndDate.Before(window.Start) && !l.StartDate.After(window.End) {
			leaveRequests++
		}
	}

	s.opts.Logger.DebugContext(ctx, "employee report built",
		slog.String("employee_id", employeeID),
		slog.String("window", window.String()),
		slog.Int("records", len(current)),
	)

	return Compose(Parts{
		Window:        window,
		Summary:       summary,
		Displayed:     displayed,
		LeaveRequests: leaveRequests,
		Recent:        Recent(current, window, s.opts.RecentLimit),
		Heatmap:       heatmap,
		Comparisons:   comparisons,
		Insights:      EmployeeInsights(displayed, prevDisplayed, leaveRequests),
	}), nil
}
