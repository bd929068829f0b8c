package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// MinDate is the earliest date a window may touch.
var MinDate = dateutil.Date(1900, 1, 1)

// DefaultMaxWindowDays bounds request windows when no policy value is given.
const DefaultMaxWindowDays = 366

// Window is an inclusive range of civil dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a validated window. Inverted bounds are rejected, never swapped.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: dateutil.Civil(start), End: dateutil.Civil(end)}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// ParseWindow builds a window from two YYYY-MM-DD strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := dateutil.ParseDate(start)
	if err != nil {
		return Window{}, fmt.Errorf("%w: invalid start date %q", ErrInvalidDateRange, start)
	}
	e, err := dateutil.ParseDate(end)
	if err != nil {
		return Window{}, fmt.Errorf("%w: invalid end date %q", ErrInvalidDateRange, end)
	}
	return NewWindow(s, e)
}

// MonthWindow covers the calendar month given as YYYY-MM.
func MonthWindow(month string) (Window, error) {
	start, end, err := dateutil.ParseMonth(month)
	if err != nil {
		return Window{}, ErrInvalidMonth
	}
	return Window{Start: start, End: end}, nil
}

func (w Window) Validate() error {
	if w.Start.Before(MinDate) || w.End.Before(MinDate) {
		return fmt.Errorf("%w: dates before %s are not supported", ErrInvalidDateRange, dateutil.Format(MinDate))
	}
	if w.Start.After(w.End) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, dateutil.Format(w.Start), dateutil.Format(w.End))
	}
	return nil
}

// Limit rejects windows longer than maxDays. A non-positive maxDays disables the check.
func (w Window) Limit(maxDays int) error {
	if maxDays > 0 && w.Days() > maxDays {
		return fmt.Errorf("%w: window spans %d days, at most %d allowed", ErrInvalidDateRange, w.Days(), maxDays)
	}
	return nil
}

// Days is the number of dates in the window.
func (w Window) Days() int {
	return dateutil.DaysBetween(w.Start, w.End) + 1
}

func (w Window) Contains(d time.Time) bool {
	if d.IsZero() {
		return false
	}
	d = dateutil.Civil(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Previous is the window of equal length ending the day before w starts.
func (w Window) Previous() Window {
	n := w.Days()
	return Window{Start: dateutil.AddDays(w.Start, -n), End: dateutil.AddDays(w.Start, -1)}
}

func (w Window) String() string {
	return dateutil.Format(w.Start) + ".." + dateutil.Format(w.End)
}
