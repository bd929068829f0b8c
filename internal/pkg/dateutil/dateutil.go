package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Date returns the civil date y-m-d as midnight UTC. All calendar dates in the
// engine use this representation so that equality and map keys are stable.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Civil strips the clock from t, keeping the calendar date as seen in t's location.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// CivilIn returns the calendar date of instant t in loc.
func CivilIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Civil(t.In(loc))
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Civil(t), nil
}

func Format(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Civil(b).Sub(Civil(a)).Hours() / 24)
}

// AddDays moves a civil date by n days.
func AddDays(d time.Time, n int) time.Time {
	return Civil(d).AddDate(0, 0, n)
}

// Each calls fn for every date in [start, end], in order.
func Each(start, end time.Time, fn func(d time.Time)) {
	for d := Civil(start); !d.After(Civil(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// MonthBounds returns the first and last civil dates of the month containing d.
func MonthBounds(d time.Time) (time.Time, time.Time) {
	n := now.With(Civil(d))
	return Civil(n.BeginningOfMonth()), Civil(n.EndOfMonth())
}

// ParseMonth parses YYYY-MM and returns the bounds of that month.
func ParseMonth(s string) (time.Time, time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := MonthBounds(t)
	return start, end, nil
}

// LastMonths returns the bounds of the n months ending with the month of d, oldest first.
func LastMonths(d time.Time, n int) [][2]time.Time {
	out := make([][2]time.Time, n)
	cur, _ := MonthBounds(d)
	for i := n - 1; i >= 0; i-- {
		start, end := MonthBounds(cur)
		out[i] = [2]time.Time{start, end}
		cur = start.AddDate(0, -1, 0)
	}
	return out
}

// WorkWeek is the set of weekdays that count as working days.
type WorkWeek []time.Weekday

// DefaultWorkWeek is Monday through Friday.
var DefaultWorkWeek = WorkWeek{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

func (w WorkWeek) Contains(d time.Time) bool {
	wd := d.Weekday()
	for _, day := range w {
		if day == wd {
			return true
		}
	}
	return false
}

// CountIn counts working days in [start, end].
func (w WorkWeek) CountIn(start, end time.Time) int {
	n := 0
	Each(start, end, func(d time.Time) {
		if w.Contains(d) {
			n++
		}
	})
	return n
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWorkWeek parses names such as "mon" or "Friday".
func ParseWorkWeek(names []string) (WorkWeek, error) {
	w := make(WorkWeek, 0, len(names))
	for _, name := range names {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		w = append(w, wd)
	}
	return w, nil
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
// Hours may exceed 23 so that worked durations such as "26:00:00" survive.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}

// FormatClock renders d as HH:MM:SS; negative durations render as 00:00:00.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// SinceMidnight returns the clock offset of t in loc.
func SinceMidnight(t time.Time, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	return time.Duration(l.Hour())*time.Hour + time.Duration(l.Minute())*time.Minute + time.Duration(l.Second())*time.Second
}
