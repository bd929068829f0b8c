package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/employee"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// FleetPolicy bundles the knobs of the fleet computation.
type FleetPolicy struct {
	Scoring     analytics.ScoringPolicy
	WorkWeek    dateutil.WorkWeek
	TrendMonths int
	RankingDays int
}

// FleetInput is everything the fleet computation reads. Leaves should hold
// approved requests only; records and leaves of employees missing from the
// roster are ignored.
type FleetInput struct {
	Today     time.Time
	Employees []employee.Employee
	Records   []attendance.Attendance
	Leaves    []leave.LeaveRequest
}

type employeeTally struct {
	present   int
	late      int
	leaveDays int
}

// ComputeFleet derives trends, breakdowns, ranking, health score and insights.
// Absence slots are working days up to today, per employee, not covered by a
// present or late record or by approved leave.
func ComputeFleet(in FleetInput, p FleetPolicy) analytics.AnalyticsResponse {
	today := dateutil.Civil(in.Today)
	roster := employee.Names(in.Employees)
	n := len(in.Employees)

	records := make([]attendance.Attendance, 0, len(in.Records))
	for _, r := range in.Records {
		if _, ok := roster[r.EmployeeID]; ok && !r.Date.IsZero() {
			records = append(records, r)
		}
	}
	leaves := make([]leave.LeaveRequest, 0, len(in.Leaves))
	for _, l := range in.Leaves {
		if _, ok := roster[l.EmployeeID]; ok && !l.StartDate.IsZero() {
			leaves = append(leaves, l)
		}
	}

	out := analytics.AnalyticsResponse{
		Insights:             []analytics.Insight{},
		MonthlyTrend:         []analytics.MonthlyTrendPoint{},
		AbsenteeismBreakdown: []analytics.BreakdownItem{},
		LeaveUsageTrend:      []analytics.LeaveUsagePoint{},
		LatenessByEmployee:   []analytics.LatenessPoint{},
		Radar:                []analytics.RadarPoint{},
		Ranking:              []analytics.RankingRow{},
	}

	for _, m := range dateutil.LastMonths(today, p.TrendMonths) {
		start, end := m[0], m[1]
		point := analytics.MonthlyTrendPoint{Month: start.Format(dateutil.MonthLayout)}
		for _, r := range records {
			if within(r.Date, start, end) {
				switch r.Status {
				case attendance.StatusPresent:
					point.Present++
				case attendance.StatusLate:
					point.Late++
				}
			}
		}
		if capped := minDate(end, today); !capped.Before(start) {
			slots := p.WorkWeek.CountIn(start, capped) * n
			point.Absent = max(0, slots-point.Present-point.Late-leaveSlots(leaves, start, capped, p.WorkWeek))
		}
		out.MonthlyTrend = append(out.MonthlyTrend, point)

		usage := analytics.LeaveUsagePoint{Month: point.Month}
		for _, l := range leaves {
			if overlaps(l, start, end) {
				usage.Leaves++
			}
		}
		out.LeaveUsageTrend = append(out.LeaveUsageTrend, usage)
	}

	rankStart := dateutil.AddDays(today, -p.RankingDays)
	workdays := p.WorkWeek.CountIn(rankStart, today)
	slots := workdays * n

	tallies := make(map[string]*employeeTally, n)
	for _, e := range in.Employees {
		tallies[e.ID] = &employeeTally{}
	}
	var present, late, leaveDays int
	for _, r := range records {
		if !within(r.Date, rankStart, today) {
			continue
		}
		switch r.Status {
		case attendance.StatusPresent:
			tallies[r.EmployeeID].present++
			present++
		case attendance.StatusLate:
			tallies[r.EmployeeID].late++
			late++
		}
	}
	for id, days := range leaveDaysByEmployee(leaves, rankStart, today, p.WorkWeek) {
		tallies[id].leaveDays = days
		leaveDays += days
	}
	unexcused := max(0, slots-present-late-leaveDays)

	out.AbsenteeismBreakdown = append(out.AbsenteeismBreakdown, analytics.BreakdownItem{Label: "Unexcused Absence", Value: unexcused})
	out.AbsenteeismBreakdown = append(out.AbsenteeismBreakdown, leaveTypeBreakdown(leaves, rankStart, today)...)

	for _, e := range in.Employees {
		if t := tallies[e.ID]; t.late > 0 {
			out.LatenessByEmployee = append(out.LatenessByEmployee, analytics.LatenessPoint{Name: e.Name, Lates: t.late})
		}
	}
	sort.SliceStable(out.LatenessByEmployee, func(i, j int) bool {
		a, b := out.LatenessByEmployee[i], out.LatenessByEmployee[j]
		if a.Lates != b.Lates {
			return a.Lates > b.Lates
		}
		return a.Name < b.Name
	})

	out.Radar = []analytics.RadarPoint{
		{Metric: "Presence", Value: rate(present, slots)},
		{Metric: "Lateness", Value: rate(late, slots)},
		{Metric: "Absences", Value: rate(unexcused, slots)},
		{Metric: "Leave Usage", Value: rate(leaveDays, slots)},
	}

	rows := make([]analytics.RankingRow, 0, n)
	for _, e := range in.Employees {
		t := tallies[e.ID]
		absences := max(0, workdays-t.present-t.late-t.leaveDays)
		rows = append(rows, analytics.RankingRow{
			ID:       e.ID,
			Name:     e.Name,
			Score:    Score(analytics.ScoreInput{Lates: t.late, Absences: absences, LeaveDays: t.leaveDays}, p.Scoring),
			Absences: absences,
			Lates:    t.late,
		})
	}
	out.Ranking = Rank(rows)

	if slots > 0 {
		out.Score = HealthScore(late, unexcused, n, p.Scoring)
	}
	out.Insights = EvaluateInsights(FleetSignals{
		Employees:         n,
		UnexcusedAbsences: unexcused,
		Lates:             late,
		LeaveDays:         leaveDays,
		RankingWindowDays: p.RankingDays,
	})
	return out
}

func within(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func overlaps(l leave.LeaveRequest, start, end time.Time) bool {
	return !l.EndDate.Before(start) && !l.StartDate.After(end)
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// leaveDaysByEmployee counts distinct working days covered by leave per employee within [start, end].
func leaveDaysByEmployee(leaves []leave.LeaveRequest, start, end time.Time, ww dateutil.WorkWeek) map[string]int {
	byEmployee := make(map[string][]leave.LeaveRequest)
	for _, l := range leaves {
		byEmployee[l.EmployeeID] = append(byEmployee[l.EmployeeID], l)
	}
	out := make(map[string]int, len(byEmployee))
	for id, ls := range byEmployee {
		days := 0
		for key := range leave.CoveredDates(ls, start, end) {
			if d, err := dateutil.ParseDate(key); err == nil && ww.Contains(d) {
				days++
			}
		}
		if days > 0 {
			out[id] = days
		}
	}
	return out
}

func leaveSlots(leaves []leave.LeaveRequest, start, end time.Time, ww dateutil.WorkWeek) int {
	total := 0
	for _, days := range leaveDaysByEmployee(leaves, start, end, ww) {
		total += days
	}
	return total
}

func leaveTypeBreakdown(leaves []leave.LeaveRequest, start, end time.Time) []analytics.BreakdownItem {
	counts := make(map[string]int)
	for _, l := range leaves {
		if overlaps(l, start, end) {
			counts[categoryLabel(l.Category)]++
		}
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	out := make([]analytics.BreakdownItem, len(labels))
	for i, label := range labels {
		out[i] = analytics.BreakdownItem{Label: label, Value: counts[label]}
	}
	return out
}

func categoryLabel(c leave.Category) string {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return "Leave"
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(clamp(float64(part) / float64(whole) * 100))
}
