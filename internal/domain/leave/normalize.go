package leave

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

var (
	idAliases         = normalizer.Fields("id", "_id", "leaveRequestId", "leave_request_id")
	employeeIDAliases = normalizer.Fields("employeeId", "employee_id", "employee.id", "employee._id")
	categoryAliases   = normalizer.Fields("leaveType", "leave_type", "type", "category")
	startAliases      = normalizer.Fields("startDate", "start_date", "from")
	endAliases        = normalizer.Fields("endDate", "end_date", "to")
	reasonAliases     = normalizer.Fields("reason", "notes")
	statusAliases     = normalizer.Fields("status")
	createdAliases    = normalizer.Fields("createdAt", "created_at")
	updatedAliases    = normalizer.Fields("updatedAt", "updated_at")
)

// Normalize maps a raw leave record onto LeaveRequest. Status defaults to
// Pending; a missing end date collapses to the start date.
func Normalize(raw normalizer.Raw, idx int) LeaveRequest {
	start, _ := normalizer.Date(raw, startAliases, time.UTC)
	end, ok := normalizer.Date(raw, endAliases, time.UTC)
	if !ok || end.Before(start) {
		end = start
	}

	var reason *string
	if r := normalizer.String(raw, reasonAliases, ""); r != "" {
		reason = &r
	}

	req := LeaveRequest{
		EmployeeID:   normalizer.String(raw, employeeIDAliases, ""),
		EmployeeName: normalizer.String(raw, attendance.EmployeeNameAliases, ""),
		Category:     Category(strings.ToLower(normalizer.String(raw, categoryAliases, ""))),
		StartDate:    start,
		EndDate:      end,
		Reason:       reason,
		Status:       ParseStatus(normalizer.String(raw, statusAliases, "")),
	}
	req.ID = normalizer.String(raw, idAliases, fmt.Sprintf("leave-%d", idx))
	if t := normalizer.Time(raw, createdAliases, time.UTC); t != nil {
		req.CreatedAt = *t
	}
	if t := normalizer.Time(raw, updatedAliases, time.UTC); t != nil {
		req.UpdatedAt = *t
	} else {
		req.UpdatedAt = req.CreatedAt
	}
	return req
}

func NormalizeAll(raws []normalizer.Raw) []LeaveRequest {
	out := make([]LeaveRequest, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw, i)
	}
	return out
}

// DraftFromRaw reads an inbound submission payload, accepting camelCase or snake_case keys.
func DraftFromRaw(raw normalizer.Raw) SubmitLeaveRequest {
	req := SubmitLeaveRequest{
		LeaveType: normalizer.String(raw, categoryAliases, ""),
		StartDate: normalizer.String(raw, startAliases, ""),
		EndDate:   normalizer.String(raw, endAliases, ""),
	}
	if v, ok := reasonAliases.Lookup(raw); ok {
		if s, ok := normalizer.ToString(v); ok {
			req.Reason = &s
		}
	}
	return req
}
