package report

import (
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// Parts are the already computed pieces of an employee report.
type Parts struct {
	Window        report.Window
	Summary       report.PeriodSummary
	Displayed     report.Counts
	LeaveRequests int
	Recent        []attendance.Attendance
	Heatmap       []report.HeatmapCell
	Comparisons   report.Comparisons
	Insights      []string
}

// Compose assembles the response. Missing lists become empty, never nil.
func Compose(p Parts) report.EmployeeReportResponse {
	recent := make([]report.RecentAttendance, 0, len(p.Recent))
	for _, a := range p.Recent {
		r := attendance.ToResponse(a)
		recent = append(recent, report.RecentAttendance{
			ID:          r.ID,
			Date:        r.Date,
			Status:      r.Status,
			TimeIn:      r.TimeIn,
			TimeOut:     r.TimeOut,
			HoursWorked: r.HoursWorked,
		})
	}

	heatmap := p.Heatmap
	if heatmap == nil {
		heatmap = []report.HeatmapCell{}
	}
	insights := p.Insights
	if insights == nil {
		insights = []string{}
	}

	return report.EmployeeReportResponse{
		KPIs: report.KPIs{
			TotalPresent:       p.Displayed.Present,
			TotalLate:          p.Displayed.Late,
			TotalAbsent:        p.Displayed.Absent,
			TotalLeaveRequests: p.LeaveRequests,
		},
		MonthSummary: report.MonthSummary{
			Month:         p.Window.Start.Format(dateutil.MonthLayout),
			Present:       p.Displayed.Present,
			Late:          p.Displayed.Late,
			Absent:        p.Displayed.Absent,
			AverageTimeIn: p.Summary.AverageTimeIn,
		},
		RecentAttendance: recent,
		Heatmap:          heatmap,
		Comparisons:      p.Comparisons,
		Insights:         insights,
	}
}
