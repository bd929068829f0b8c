package dashboard

import "github.com/cmlabs-hris/presence-engine/internal/domain/leave"

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	Date         string                       `json:"date"`
	Totals       Totals                       `json:"totals"`
	Trend        []TrendPoint                 `json:"trend"`
	TopLates     []LateEmployee               `json:"topLates"`
	RecentLeaves []leave.LeaveRequestResponse `json:"recentLeaves"`
}

// Totals are today's headline counts.
type Totals struct {
	Employees           int `json:"employees"`
	PresentToday        int `json:"presentToday"`
	LateToday           int `json:"lateToday"`
	AbsentToday         int `json:"absentToday"` // employees - recorded - on approved leave
	PendingLeaves       int `json:"pendingLeaves"`
	ApprovedLeavesToday int `json:"approvedLeavesToday"`
}

// TrendPoint is one day of the trailing trend. Absent stays zero off the work week.
type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
}

type LateEmployee struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Lates      int    `json:"lates"`
}
