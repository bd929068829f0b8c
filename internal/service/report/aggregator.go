package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// DailyTrend emits one count per date in w, zero-filled. Records outside w are ignored.
func DailyTrend(records []attendance.Attendance, w report.Window) ([]report.DailyCount, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	byDate := make(map[string]*report.Counts)
	for _, r := range records {
		if !w.Contains(r.Date) {
			continue
		}
		key := dateutil.Format(r.Date)
		c, ok := byDate[key]
		if !ok {
			c = &report.Counts{}
			byDate[key] = c
		}
		c.Add(string(r.Status))
	}

	out := make([]report.DailyCount, 0, w.Days())
	dateutil.Each(w.Start, w.End, func(d time.Time) {
		key := dateutil.Format(d)
		var c report.Counts
		if p, ok := byDate[key]; ok {
			c = *p
		}
		out = append(out, report.DailyCount{Date: key, Counts: c})
	})
	return out, nil
}

// Summarize totals w. The average time-in is taken over records that have one,
// as a clock offset in loc.
func Summarize(records []attendance.Attendance, w report.Window, loc *time.Location) (report.PeriodSummary, error) {
	if err := w.Validate(); err != nil {
		return report.PeriodSummary{}, err
	}

	summary := report.PeriodSummary{
		Start: dateutil.Format(w.Start),
		End:   dateutil.Format(w.End),
	}
	var total time.Duration
	var withTimeIn int
	for _, r := range records {
		if !w.Contains(r.Date) {
			continue
		}
		summary.Add(string(r.Status))
		if r.TimeIn != nil {
			total += dateutil.SinceMidnight(*r.TimeIn, loc)
			withTimeIn++
		}
	}
	if withTimeIn > 0 {
		avg := total / time.Duration(withTimeIn)
		s := fmt.Sprintf("%02d:%02d", int(avg/time.Hour), int(avg%time.Hour/time.Minute))
		summary.AverageTimeIn = &s
	}
	return summary, nil
}

// statusWeight picks the cell status when one track has several records on a date.
var statusWeight = map[attendance.Status]int{
	attendance.StatusAbsent:  1,
	attendance.StatusPresent: 2,
	attendance.StatusLate:    3,
}

// BuildTrack lays records out as one cell per date in w. Dates without a
// record are Unknown. Several records on one date resolve to the heaviest of
// Late, Present, Absent.
func BuildTrack(records []attendance.Attendance, w report.Window) ([]report.HeatmapCell, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return track(records, w, ""), nil
}

// BuildHeatmap lays out one track per employee, ordered by employee id. With
// no records in w the result is a single anonymous track of Unknown cells.
func BuildHeatmap(records []attendance.Attendance, w report.Window) ([]report.HeatmapCell, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]attendance.Attendance)
	for _, r := range records {
		if w.Contains(r.Date) {
			byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
		}
	}
	if len(byEmployee) == 0 {
		return track(nil, w, ""), nil
	}

	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]report.HeatmapCell, 0, len(ids)*w.Days())
	for _, id := range ids {
		out = append(out, track(byEmployee[id], w, id)...)
	}
	return out, nil
}

func track(records []attendance.Attendance, w report.Window, employeeID string) []report.HeatmapCell {
	best := make(map[string]attendance.Status)
	for _, r := range records {
		if !w.Contains(r.Date) {
			continue
		}
		key := dateutil.Format(r.Date)
		if cur, ok := best[key]; !ok || statusWeight[r.Status] > statusWeight[cur] {
			best[key] = r.Status
		}
	}

	cells := make([]report.HeatmapCell, 0, w.Days())
	dateutil.Each(w.Start, w.End, func(d time.Time) {
		key := dateutil.Format(d)
		status := report.HeatmapUnknown
		if s, ok := best[key]; ok {
			status = report.HeatmapStatus(s)
		}
		cells = append(cells, report.HeatmapCell{Date: key, EmployeeID: employeeID, Status: status})
	})
	return cells
}

// PromoteUnknown returns a copy of cells where Unknown becomes Absent on
// working weekdays strictly before today, unless excluded (for example, a
// date covered by leave). The input is not modified.
func PromoteUnknown(cells []report.HeatmapCell, today time.Time, p report.HeatmapPolicy, excluded func(report.HeatmapCell) bool) []report.HeatmapCell {
	out := make([]report.HeatmapCell, len(cells))
	copy(out, cells)
	if !p.PromoteUnknown {
		return out
	}

	today = dateutil.Civil(today)
	for i, c := range out {
		if c.Status != report.HeatmapUnknown {
			continue
		}
		d, err := dateutil.ParseDate(c.Date)
		if err != nil || !d.Before(today) || !p.WorkWeek.Contains(d) {
			continue
		}
		if excluded != nil && excluded(c) {
			continue
		}
		out[i].Status = report.HeatmapAbsent
	}
	return out
}

// CountCells tallies the statuses shown in a heatmap; Unknown is not counted.
func CountCells(cells []report.HeatmapCell) report.Counts {
	var c report.Counts
	for _, cell := range cells {
		c.Add(string(cell.Status))
	}
	return c
}

// Compare pairs the counts of two windows of equal length.
func Compare(current, previous report.Window, cur, prev report.Counts) (report.Comparisons, error) {
	if err := current.Validate(); err != nil {
		return report.Comparisons{}, err
	}
	if err := previous.Validate(); err != nil {
		return report.Comparisons{}, err
	}
	if current.Days() != previous.Days() {
		return report.Comparisons{}, fmt.Errorf("%w: %d days vs %d days", report.ErrWindowLengthMismatch, current.Days(), previous.Days())
	}
	return report.Comparisons{
		Present: report.MetricComparison{Current: cur.Present, Previous: prev.Present},
		Late:    report.MetricComparison{Current: cur.Late, Previous: prev.Late},
		Absent:  report.MetricComparison{Current: cur.Absent, Previous: prev.Absent},
	}, nil
}

// CompareRecords summarizes both windows and pairs their raw counts.
func CompareRecords(current, previous []attendance.Attendance, cw, pw report.Window) (report.Comparisons, error) {
	cur, err := Summarize(current, cw, time.UTC)
	if err != nil {
		return report.Comparisons{}, err
	}
	prev, err := Summarize(previous, pw, time.UTC)
	if err != nil {
		return report.Comparisons{}, err
	}
	return Compare(cw, pw, cur.Counts, prev.Counts)
}

// Recent returns up to limit records in w, newest first.
func Recent(records []attendance.Attendance, w report.Window, limit int) []attendance.Attendance {
	var out []attendance.Attendance
	for _, r := range records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
