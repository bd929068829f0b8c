package report

import (
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// Counts tallies daily statuses.
type Counts struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
}

func (c Counts) Total() int {
	return c.Present + c.Late + c.Absent
}

// Add tallies one status; Unknown and anything else is ignored.
func (c *Counts) Add(status string) {
	switch status {
	case string(attendance.StatusPresent):
		c.Present++
	case string(attendance.StatusLate):
		c.Late++
	case string(attendance.StatusAbsent):
		c.Absent++
	}
}

type DailyCount struct {
	Date string `json:"date"`
	Counts
}

// PeriodSummary totals a window. AverageTimeIn is HH:MM, or nil when no record had a time-in.
type PeriodSummary struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Counts
	AverageTimeIn *string `json:"averageTimeIn"`
}

type HeatmapStatus string

const (
	HeatmapPresent HeatmapStatus = "Present"
	HeatmapLate    HeatmapStatus = "Late"
	HeatmapAbsent  HeatmapStatus = "Absent"
	HeatmapUnknown HeatmapStatus = "Unknown"
)

type HeatmapCell struct {
	Date       string        `json:"date"`
	EmployeeID string        `json:"employeeId,omitempty"`
	Status     HeatmapStatus `json:"status"`
}

// HeatmapPolicy controls the Unknown to Absent display promotion.
type HeatmapPolicy struct {
	PromoteUnknown bool
	WorkWeek       dateutil.WorkWeek
}

type MetricComparison struct {
	Current  int `json:"current"`
	Previous int `json:"previous"`
}

type Comparisons struct {
	Present MetricComparison `json:"present"`
	Late    MetricComparison `json:"late"`
	Absent  MetricComparison `json:"absent"`
}

type KPIs struct {
	TotalPresent       int `json:"totalPresent"`
	TotalLate          int `json:"totalLate"`
	TotalAbsent        int `json:"totalAbsent"`
	TotalLeaveRequests int `json:"totalLeaveRequests"`
}

type MonthSummary struct {
	Month         string  `json:"month"`
	Present       int     `json:"present"`
	Late          int     `json:"late"`
	Absent        int     `json:"absent"`
	AverageTimeIn *string `json:"averageTimeIn"`
}

type RecentAttendance struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Status      attendance.Status `json:"status"`
	TimeIn      *string           `json:"timeIn"`
	TimeOut     *string           `json:"timeOut"`
	HoursWorked string            `json:"hoursWorked"`
}

// EmployeeReportResponse is the per-employee monthly report.
type EmployeeReportResponse struct {
	KPIs             KPIs               `json:"kpis"`
	MonthSummary     MonthSummary       `json:"monthSummary"`
	RecentAttendance []RecentAttendance `json:"recentAttendance"`
	Heatmap          []HeatmapCell      `json:"heatmap"`
	Comparisons      Comparisons        `json:"comparisons"`
	Insights         []string           `json:"insights"`
}

type EmployeeReportRequest struct {
	EmployeeID *string `json:"employeeId,omitempty"` // admin only; defaults to the caller
	Month      string  `json:"month"`                // YYYY-MM, defaults to the current month
}

// AggregateRequest carries attendance records in any supported shape plus the window to aggregate over.
type AggregateRequest struct {
	StartDate string           `json:"startDate"` // YYYY-MM-DD
	EndDate   string           `json:"endDate"`   // YYYY-MM-DD
	Records   []map[string]any `json:"records"`
}

type AggregateResponse struct {
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Trend       []DailyCount  `json:"trend"`
	Summary     PeriodSummary `json:"summary"`
	Heatmap     []HeatmapCell `json:"heatmap"`
	Comparisons Comparisons   `json:"comparisons"`
}
