package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-engine/internal/domain/employee"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
	"golang.org/x/sync/errgroup"
)

const (
	trendDays    = 7
	lateDays     = 30
	topLateLimit = 8
	recentLimit  = 8
)

type Options struct {
	Lateness attendance.LatenessPolicy
	WorkWeek dateutil.WorkWeek
	Clock    func() time.Time
	Logger   *slog.Logger
}

type DashboardServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	opts           Options
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	opts Options,
) dashboard.DashboardService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.WorkWeek == nil {
		opts.WorkWeek = dateutil.DefaultWorkWeek
	}
	return &DashboardServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		opts:           opts,
	}
}

// Summary returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) Summary(ctx context.Context, caller auth.Caller) (dashboard.DashboardResponse, error) {
	if err := caller.RequireAdmin(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	today := dateutil.CivilIn(s.opts.Clock(), s.opts.Lateness.Location)
	trendStart := dateutil.AddDays(today, -(trendDays - 1))
	lateStart := dateutil.AddDays(today, -(lateDays - 1))

	var (
		employeeRaw   []normalizer.Raw
		attendanceRaw []normalizer.Raw
		pendingRaw    []normalizer.Raw
		approvedRaw   []normalizer.Raw
		recentRaw     []normalizer.Raw
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Roster
	g.Go(func() error {
		rows, err := s.employeeRepo.ListRaw(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get employees: %w", err)
		}
		employeeRaw = rows
		return nil
	})

	// 2. Attendance for the lateness window, which contains the trend window
	g.Go(func() error {
		rows, err := s.attendanceRepo.ListRaw(gCtx, attendance.Query{StartDate: lateStart, EndDate: today})
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		attendanceRaw = rows
		return nil
	})

	// 3. Pending leave requests
	g.Go(func() error {
		rows, err := s.leaveRepo.ListRaw(gCtx, leave.Query{Statuses: []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending}})
		if err != nil {
			return fmt.Errorf("failed to get pending leave requests: %w", err)
		}
		pendingRaw = rows
		return nil
	})

	// 4. Approved leave overlapping the trend window
	g.Go(func() error {
		rows, err := s.leaveRepo.ListRaw(gCtx, leave.Query{
			Statuses: []leave.LeaveRequestStatus{leave.LeaveRequestStatusApproved},
			From:     trendStart,
			To:       today,
		})
		if err != nil {
			return fmt.Errorf("failed to get approved leave requests: %w", err)
		}
		approvedRaw = rows
		return nil
	})

	// 5. Latest leave requests
	g.Go(func() error {
		rows, err := s.leaveRepo.ListRaw(gCtx, leave.Query{Limit: recentLimit})
		if err != nil {
			return fmt.Errorf("failed to get recent leave requests: %w", err)
		}
		recentRaw = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.opts.Logger.ErrorContext(ctx, "dashboard fetch failed", slog.String("error", err.Error()))
		return dashboard.DashboardResponse{}, err
	}

	employees := employee.NormalizeAll(employeeRaw)
	roster := employee.Names(employees)
	records := attendance.NormalizeAll(attendanceRaw, s.opts.Lateness)
	pending := leave.NormalizeAll(pendingRaw)
	approved := leave.NormalizeAll(approvedRaw)

	byDate := dailyStatuses(records, roster)
	onLeave := leaveByDate(approved, roster, trendStart, today)

	out := dashboard.DashboardResponse{
		Date:         dateutil.Format(today),
		Trend:        make([]dashboard.TrendPoint, 0, trendDays),
		RecentLeaves: leave.ToResponses(latest(leave.NormalizeAll(recentRaw), recentLimit)),
	}

	dateutil.Each(trendStart, today, func(d time.Time) {
		key := dateutil.Format(d)
		point := dashboard.TrendPoint{Date: key}
		for _, status := range byDate[key] {
			switch status {
			case attendance.StatusPresent:
				point.Present++
			case attendance.StatusLate:
				point.Late++
			}
		}
		if s.opts.WorkWeek.Contains(d) {
			point.Absent = absentCount(len(employees), byDate[key], onLeave[key])
		}
		out.Trend = append(out.Trend, point)
	})

	todayKey := dateutil.Format(today)
	current := out.Trend[len(out.Trend)-1]
	out.Totals = dashboard.Totals{
		Employees:           len(employees),
		PresentToday:        current.Present,
		LateToday:           current.Late,
		AbsentToday:         absentCount(len(employees), byDate[todayKey], onLeave[todayKey]),
		PendingLeaves:       len(pending),
		ApprovedLeavesToday: len(onLeave[todayKey]),
	}
	out.TopLates = topLates(records, employees, lateStart, today)

	s.opts.Logger.DebugContext(ctx, "dashboard computed",
		slog.String("date", todayKey),
		slog.Int("employees", len(employees)),
		slog.Int("records", len(records)),
	)
	return out, nil
}

// dailyStatuses keeps one status per roster employee and date, late over present.
func dailyStatuses(records []attendance.Attendance, roster map[string]string) map[string]map[string]attendance.Status {
	out := make(map[string]map[string]attendance.Status)
	for _, r := range records {
		if _, ok := roster[r.EmployeeID]; !ok || r.Date.IsZero() {
			continue
		}
		if r.Status != attendance.StatusPresent && r.Status != attendance.StatusLate {
			continue
		}
		key := dateutil.Format(r.Date)
		if out[key] == nil {
			out[key] = make(map[string]attendance.Status)
		}
		if out[key][r.EmployeeID] != attendance.StatusLate {
			out[key][r.EmployeeID] = r.Status
		}
	}
	return out
}

// leaveByDate lists, per date, the roster employees on approved leave.
func leaveByDate(requests []leave.LeaveRequest, roster map[string]string, from, to time.Time) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, r := range requests {
		if _, ok := roster[r.EmployeeID]; !ok || r.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		for key := range leave.CoveredDates([]leave.LeaveRequest{r}, from, to) {
			if out[key] == nil {
				out[key] = make(map[string]bool)
			}
			out[key][r.EmployeeID] = true
		}
	}
	return out
}

func absentCount(employees int, recorded map[string]attendance.Status, onLeave map[string]bool) int {
	excused := 0
	for id := range onLeave {
		if _, ok := recorded[id]; !ok {
			excused++
		}
	}
	return max(0, employees-len(recorded)-excused)
}

func topLates(records []attendance.Attendance, employees []employee.Employee, from, to time.Time) []dashboard.LateEmployee {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Status == attendance.StatusLate && !r.Date.Before(from) && !r.Date.After(to) {
			counts[r.EmployeeID]++
		}
	}
	out := make([]dashboard.LateEmployee, 0, len(counts))
	for _, e := range employees {
		if n := counts[e.ID]; n > 0 {
			out = append(out, dashboard.LateEmployee{EmployeeID: e.ID, Name: e.Name, Lates: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Lates != out[j].Lates {
			return out[i].Lates > out[j].Lates
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topLateLimit {
		out = out[:topLateLimit]
	}
	return out
}

// latest orders requests newest first and keeps at most limit.
func latest(requests []leave.LeaveRequest, limit int) []leave.LeaveRequest {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	if len(requests) > limit {
		requests = requests[:limit]
	}
	return requests
}
