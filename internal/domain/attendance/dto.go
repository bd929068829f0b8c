package attendance

import (
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Date         string  `json:"date"`
	TimeIn       *string `json:"timeIn"`
	TimeOut      *string `json:"timeOut"`
	Status       Status  `json:"status"`
	HoursWorked  string  `json:"hoursWorked"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         dateutil.Format(a.Date),
		TimeIn:       formatInstant(a.TimeIn),
		TimeOut:      formatInstant(a.TimeOut),
		Status:       a.Status,
		HoursWorked:  dateutil.FormatClock(a.Worked),
	}
}

func ToResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, len(records))
	for i, a := range records {
		out[i] = ToResponse(a)
	}
	return out
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// RangeFilter selects attendance in an inclusive date range.
type RangeFilter struct {
	EmployeeID *string `json:"employeeId,omitempty"`
	StartDate  string  `json:"startDate"` // YYYY-MM-DD
	EndDate    string  `json:"endDate"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Rule:    "date_format",
			Value:   f.StartDate,
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(f.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Rule:    "date_format",
			Value:   f.EndDate,
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}
	if f.Status != nil {
		if _, ok := ParseStatus(*f.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Rule:    "oneof",
				Value:   *f.Status,
				Message: "status must be one of: Present, Late, Absent",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	StartDate   string               `json:"startDate"`
	EndDate     string               `json:"endDate"`
	TotalCount  int                  `json:"totalCount"`
	Attendances []AttendanceResponse `json:"attendances"`
}
