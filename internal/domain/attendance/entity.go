package attendance

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

// ParseStatus accepts the three canonical statuses case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, true
	case "late":
		return StatusLate, true
	case "absent":
		return StatusAbsent, true
	}
	return "", false
}

// Attendance is the canonical form of one employee's record for one date.
// Date is a civil date (midnight UTC); TimeIn and TimeOut are instants.
type Attendance struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	TimeIn       *time.Time
	TimeOut      *time.Time
	Status       Status
	Worked       time.Duration
}

func (a Attendance) HasTimeIn() bool {
	return a.TimeIn != nil
}
