package analytics

// Insight is advisory output; nothing downstream computes on it.
type Insight struct {
	Title          string   `json:"title"`
	Detail         string   `json:"detail"`
	Recommendation string   `json:"recommendation"`
	Severity       Severity `json:"severity"`
}

// RankingRow is one employee's standing over the ranking window.
type RankingRow struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Absences int     `json:"absences"`
	Lates    int     `json:"lates"`
	Rank     int     `json:"rank"`
}

// ScoreInput is what the score model consumes for one employee.
type ScoreInput struct {
	Lates     int
	Absences  int
	LeaveDays int
}

// ScoringPolicy weights each event against a starting score of 100.
type ScoringPolicy struct {
	LatePenalty    float64
	AbsencePenalty float64
	LeavePenalty   float64
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{LatePenalty: 2, AbsencePenalty: 5}
}

type MonthlyTrendPoint struct {
	Month   string `json:"month"`
	Present int    `json:"present"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
}

type BreakdownItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type LeaveUsagePoint struct {
	Month  string `json:"month"`
	Leaves int    `json:"leaves"`
}

type LatenessPoint struct {
	Name  string `json:"name"`
	Lates int    `json:"lates"`
}

type RadarPoint struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// AnalyticsResponse is the fleet-wide analytics view.
type AnalyticsResponse struct {
	Score                float64             `json:"score"`
	Insights             []Insight           `json:"insights"`
	MonthlyTrend         []MonthlyTrendPoint `json:"monthlyTrend"`
	AbsenteeismBreakdown []BreakdownItem     `json:"absenteeismBreakdown"`
	LeaveUsageTrend      []LeaveUsagePoint   `json:"leaveUsageTrend"`
	LatenessByEmployee   []LatenessPoint     `json:"latenessByEmployee"`
	Radar                []RadarPoint        `json:"radar"`
	Ranking              []RankingRow        `json:"ranking"`
}
