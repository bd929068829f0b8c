package analytics

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

var (
	rankIDAliases    = normalizer.Fields("id", "_id", "employeeId", "employee_id")
	rankNameAliases  = append(append(normalizer.Fields("name"), attendance.EmployeeNameAliases...), normalizer.Path("employee"))
	scoreAliases     = normalizer.Fields("score")
	absencesAliases  = normalizer.Fields("absences", "absent", "totalAbsent", "total_absent")
	latesAliases     = normalizer.Fields("lates", "late", "totalLate", "total_late")
	rankAliases      = normalizer.Fields("rank")
	titleAliases     = normalizer.Fields("title")
	detailAliases    = normalizer.Fields("detail", "description")
	actionAliases    = normalizer.Fields("recommendation", "action")
	severityAliases  = normalizer.Fields("severity", "level")
	monthAliases     = normalizer.Fields("month", "label")
	labelAliases     = normalizer.Fields("label", "name")
	valueAliases     = normalizer.Fields("value", "count", "total")
	leavesAliases    = normalizer.Fields("leaves", "count", "total")
	metricAliases    = normalizer.Fields("metric", "name")
	radarValAliases  = normalizer.Fields("value", "score", "total")
	latenessAliases  = normalizer.Fields("lates", "count", "total")
	presentAliases   = normalizer.Fields("present")
	lateCountAliases = normalizer.Fields("late")
	absentAliases    = normalizer.Fields("absent")
)

// NormalizeRankingRow reads one ranking row; a missing rank becomes idx+1.
func NormalizeRankingRow(raw normalizer.Raw, idx int) RankingRow {
	return RankingRow{
		ID:       normalizer.String(raw, rankIDAliases, strconv.Itoa(idx)),
		Name:     normalizer.String(raw, rankNameAliases, ""),
		Score:    normalizer.Number(raw, scoreAliases, 0),
		Absences: normalizer.Int(raw, absencesAliases, 0),
		Lates:    normalizer.Int(raw, latesAliases, 0),
		Rank:     normalizer.Int(raw, rankAliases, idx+1),
	}
}

// NormalizeInsight reads one insight; unknown severities read as Good.
func NormalizeInsight(raw normalizer.Raw, idx int) Insight {
	sev, ok := ParseSeverity(normalizer.String(raw, severityAliases, ""))
	if !ok {
		sev = SeverityGood
	}
	return Insight{
		Title:          normalizer.String(raw, titleAliases, fmt.Sprintf("Insight %d", idx+1)),
		Detail:         normalizer.String(raw, detailAliases, ""),
		Recommendation: normalizer.String(raw, actionAliases, ""),
		Severity:       sev,
	}
}

// NormalizeAnalytics reads an analytics payload whose sections may use
// alternative names. Missing sections become empty slices.
func NormalizeAnalytics(raw normalizer.Raw) AnalyticsResponse {
	out := AnalyticsResponse{
		Score:                normalizer.Number(raw, scoreAliases, 0),
		Insights:             []Insight{},
		MonthlyTrend:         []MonthlyTrendPoint{},
		AbsenteeismBreakdown: []BreakdownItem{},
		LeaveUsageTrend:      []LeaveUsagePoint{},
		LatenessByEmployee:   []LatenessPoint{},
		Radar:                []RadarPoint{},
		Ranking:              []RankingRow{},
	}
	for i, r := range normalizer.List(raw, normalizer.Fields("insights")) {
		out.Insights = append(out.Insights, NormalizeInsight(r, i))
	}
	for _, r := range normalizer.List(raw, normalizer.Fields("monthlyTrend", "trendMonthly")) {
		out.MonthlyTrend = append(out.MonthlyTrend, MonthlyTrendPoint{
			Month:   normalizer.String(r, monthAliases, ""),
			Present: normalizer.Int(r, presentAliases, 0),
			Late:    normalizer.Int(r, lateCountAliases, 0),
			Absent:  normalizer.Int(r, absentAliases, 0),
		})
	}
	for _, r := range normalizer.List(raw, normalizer.Fields("absenteeismBreakdown", "absencesBreakdown")) {
		out.AbsenteeismBreakdown = append(out.AbsenteeismBreakdown, BreakdownItem{
			Label: normalizer.String(r, labelAliases, ""),
			Value: normalizer.Int(r, valueAliases, 0),
		})
	}
	for _, r := range normalizer.List(raw, normalizer.Fields("leaveUsageTrend", "leaveTrend")) {
		out.LeaveUsageTrend = append(out.LeaveUsageTrend, LeaveUsagePoint{
			Month:  normalizer.String(r, monthAliases, ""),
			Leaves: normalizer.Int(r, leavesAliases, 0),
		})
	}
	for _, r := range normalizer.List(raw, normalizer.Fields("latenessByEmployee", "lateByEmployee")) {
		out.LatenessByEmployee = append(out.LatenessByEmployee, LatenessPoint{
			Name:  normalizer.String(r, rankNameAliases, ""),
			Lates: normalizer.Int(r, latenessAliases, 0),
		})
	}
	for _, r := range normalizer.List(raw, normalizer.Fields("radar", "attendanceRadar")) {
		out.Radar = append(out.Radar, RadarPoint{
			Metric: normalizer.String(r, metricAliases, ""),
			Value:  normalizer.Number(r, radarValAliases, 0),
		})
	}
	for i, r := range normalizer.List(raw, normalizer.Fields("ranking", "employeesRanking")) {
		out.Ranking = append(out.Ranking, NormalizeRankingRow(r, i))
	}
	return out
}
