package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusDenied   LeaveRequestStatus = "Denied"
)

// ParseStatus maps stored and legacy spellings onto the three statuses.
// Anything unrecognised is Pending.
func ParseStatus(s string) LeaveRequestStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return LeaveRequestStatusApproved
	case "denied", "rejected":
		return LeaveRequestStatusDenied
	}
	return LeaveRequestStatusPending
}

// IsFinal reports whether the status no longer accepts transitions.
func (s LeaveRequestStatus) IsFinal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusDenied
}

// Category is a leave type such as sick or vacation.
type Category string

const (
	CategorySick      Category = "sick"
	CategoryVacation  Category = "vacation"
	CategoryMaternity Category = "maternity"
	CategoryEmergency Category = "emergency"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Category     Category

	// inclusive civil dates
	StartDate time.Time
	EndDate   time.Time

	Reason    *string
	Status    LeaveRequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	return dateutil.DaysBetween(start, end) + 1
}

func (r LeaveRequest) Days() int {
	return InclusiveDays(r.StartDate, r.EndDate)
}

// CoveredDates returns the set of dates, formatted YYYY-MM-DD, that any of
// the given requests covers within [from, to].
func CoveredDates(requests []LeaveRequest, from, to time.Time) map[string]bool {
	out := make(map[string]bool)
	for _, r := range requests {
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			continue
		}
		start, end := r.StartDate, r.EndDate
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		dateutil.Each(start, end, func(d time.Time) {
			out[dateutil.Format(d)] = true
		})
	}
	return out
}
