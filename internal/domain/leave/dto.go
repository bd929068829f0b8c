package leave

import (
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// SubmitLeaveRequest is the inbound draft before validation.
type SubmitLeaveRequest struct {
	LeaveType string  `json:"leaveType"`
	StartDate string  `json:"startDate"` // YYYY-MM-DD
	EndDate   string  `json:"endDate"`   // YYYY-MM-DD
	Reason    *string `json:"reason,omitempty"`
}

type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employeeId"`
	EmployeeName string             `json:"employeeName"`
	LeaveType    Category           `json:"leaveType"`
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
	Days         int                `json:"days"`
	Reason       *string            `json:"reason"`
	Status       LeaveRequestStatus `json:"status"`
	CreatedAt    string             `json:"createdAt,omitempty"`
	UpdatedAt    string             `json:"updatedAt,omitempty"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    r.Category,
		StartDate:    dateutil.Format(r.StartDate),
		EndDate:      dateutil.Format(r.EndDate),
		Days:         r.Days(),
		Reason:       r.Reason,
		Status:       r.Status,
		CreatedAt:    formatInstant(r.CreatedAt),
		UpdatedAt:    formatInstant(r.UpdatedAt),
	}
}

func ToResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = ToResponse(r)
	}
	return out
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type ListLeaveRequestResponse struct {
	TotalCount    int                    `json:"totalCount"`
	LeaveRequests []LeaveRequestResponse `json:"leaveRequests"`
}
