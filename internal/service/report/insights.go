package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
)

// EmployeeInsights turns this month's counts against last period's into short remarks.
func EmployeeInsights(cur, prev report.Counts, leaveRequests int) []string {
	insights := []string{}
	if cur.Late > 0 {
		insights = append(insights, fmt.Sprintf("You were late %d time(s) this month.", cur.Late))
	}
	if cur.Absent > 0 {
		insights = append(insights, fmt.Sprintf("You had %d absence(s) this month.", cur.Absent))
	}
	if prev.Present > 0 && cur.Present > prev.Present {
		pct := float64(cur.Present-prev.Present) / float64(prev.Present) * 100
		pct = math.Round(pct*10) / 10
		insights = append(insights, "Attendance improved by "+strconv.FormatFloat(pct, 'f', 1, 64)+"% compared to last month.")
	}
	if prev.Late > 0 && cur.Late < prev.Late {
		insights = append(insights, "Late arrivals decreased compared to last month.")
	}
	if leaveRequests > 0 {
		insights = append(insights, fmt.Sprintf("You filed %d leave request(s) overlapping this month.", leaveRequests))
	}
	return insights
}
