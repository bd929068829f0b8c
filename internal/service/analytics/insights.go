package analytics

import (
	"fmt"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
)

// FleetSignals are the figures the insight rules look at.
type FleetSignals struct {
	Employees         int
	UnexcusedAbsences int
	Lates             int
	LeaveDays         int
	RankingWindowDays int
}

// EvaluateInsights applies the prescriptive rules in order. There is always at least one insight.
func EvaluateInsights(s FleetSignals) []analytics.Insight {
	var out []analytics.Insight
	if s.UnexcusedAbsences > 0 {
		out = append(out, analytics.Insight{
			Title:          "Reduce Absenteeism",
			Detail:         fmt.Sprintf("%d unexcused absence slots detected in the last %d days.", s.UnexcusedAbsences, s.RankingWindowDays),
			Recommendation: "Set clear attendance expectations and follow-up on trends.",
			Severity:       analytics.SeverityCritical,
		})
	}
	if s.Lates > s.Employees {
		out = append(out, analytics.Insight{
			Title:          "Lateness Increasing",
			Detail:         fmt.Sprintf("%d late entries across employees in the last %d days.", s.Lates, s.RankingWindowDays),
			Recommendation: "Introduce grace periods and reminders; review shift start times.",
			Severity:       analytics.SeverityAttention,
		})
	}
	if s.LeaveDays > 0 {
		out = append(out, analytics.Insight{
			Title:          "Leave Usage Healthy",
			Detail:         "Employees are utilizing approved leaves.",
			Recommendation: "Ensure coverage planning and balance workloads.",
			Severity:       analytics.SeverityGood,
		})
	}
	if len(out) == 0 {
		out = append(out, analytics.Insight{
			Title:          "Stable Attendance",
			Detail:         "No significant risks detected recently.",
			Recommendation: "Maintain current policies and recognition.",
			Severity:       analytics.SeverityGood,
		})
	}
	return out
}
