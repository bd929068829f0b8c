package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

var (
	idAliases         = normalizer.Fields("id", "_id", "attendanceId", "attendance_id")
	employeeIDAliases = normalizer.Fields("employeeId", "employee_id", "employee.id", "employee._id")
	dateAliases       = normalizer.Fields("date", "attendanceDate", "attendance_date")
	timeInAliases     = normalizer.Fields("timeIn", "time_in", "clockIn", "clock_in", "clock_in_time")
	timeOutAliases    = normalizer.Fields("timeOut", "time_out", "clockOut", "clock_out", "clock_out_time")
	statusAliases     = normalizer.Fields("status")
	workedAliases     = normalizer.Fields("hoursWorked", "hours_worked", "workedDuration", "worked_duration")

	// EmployeeNameAliases is shared by every record type that embeds an employee.
	EmployeeNameAliases = normalizer.Aliases{
		normalizer.Path("employeeName"),
		normalizer.Path("employee_name"),
		normalizer.Path("employee.fullName"),
		normalizer.Path("employee.full_name"),
		normalizer.Path("employee.name"),
		normalizer.Join(" ", "employee.firstName", "employee.lastName"),
		normalizer.Join(" ", "employee.first_name", "employee.last_name"),
	}
)

// Normalize maps one raw record onto the canonical Attendance. idx is the
// record's position in its batch and seeds the fallback id.
func Normalize(raw normalizer.Raw, idx int, policy LatenessPolicy) Attendance {
	loc := policy.location()

	timeIn := normalizer.Time(raw, timeInAliases, loc)
	timeOut := normalizer.Time(raw, timeOutAliases, loc)

	date, ok := normalizer.Date(raw, dateAliases, loc)
	if !ok && timeIn != nil {
		date = dateutil.CivilIn(*timeIn, loc)
	}

	status, worked := DeriveStatus(Observation{
		ExplicitStatus: normalizer.String(raw, statusAliases, ""),
		TimeIn:         timeIn,
		TimeOut:        timeOut,
		Worked:         workedDuration(raw),
	}, policy)
	if timeOut != nil && timeIn != nil && timeOut.Before(*timeIn) {
		timeOut = nil
	}

	employeeID := normalizer.String(raw, employeeIDAliases, "")

	return Attendance{
		ID:           normalizer.String(raw, idAliases, fallbackID(employeeID, date, idx)),
		EmployeeID:   employeeID,
		EmployeeName: normalizer.String(raw, EmployeeNameAliases, ""),
		Date:         date,
		TimeIn:       timeIn,
		TimeOut:      timeOut,
		Status:       status,
		Worked:       worked,
	}
}

// NormalizeAll normalizes a batch, keeping input order.
func NormalizeAll(raws []normalizer.Raw, policy LatenessPolicy) []Attendance {
	out := make([]Attendance, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw, i, policy)
	}
	return out
}

func fallbackID(employeeID string, date time.Time, idx int) string {
	if employeeID == "" {
		employeeID = "emp"
	}
	if date.IsZero() {
		return fmt.Sprintf("%s-%d", employeeID, idx)
	}
	return employeeID + "-" + dateutil.Format(date)
}

// workedDuration reads "HH:MM:SS" strings or a numeric number of hours.
func workedDuration(raw normalizer.Raw) *time.Duration {
	v, ok := workedAliases.Lookup(raw)
	if !ok {
		return nil
	}
	if s, isString := v.(string); isString {
		if d, err := dateutil.ParseClock(s); err == nil {
			return &d
		}
	}
	hours, ok := normalizer.ToFloat(v)
	if !ok || hours < 0 {
		return nil
	}
	d := time.Duration(hours * float64(time.Hour)).Round(time.Second)
	return &d
}
