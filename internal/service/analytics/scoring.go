package analytics

import (
	"math"
	"sort"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
)

// Score starts at 100 and subtracts each configured penalty, clamped to [0, 100]
// and rounded to one decimal.
func Score(in analytics.ScoreInput, p analytics.ScoringPolicy) float64 {
	penalty := float64(in.Lates)*p.LatePenalty +
		float64(in.Absences)*p.AbsencePenalty +
		float64(in.LeaveDays)*p.LeavePenalty
	return round1(clamp(100 - penalty))
}

// HealthScore averages the fleet penalty over the number of employees.
func HealthScore(lates, absences, employees int, p analytics.ScoringPolicy) float64 {
	if employees < 1 {
		employees = 1
	}
	penalty := float64(lates)*p.LatePenalty + float64(absences)*p.AbsencePenalty
	return round1(clamp(100 - penalty/float64(employees)))
}

// Rank orders rows by score descending, then fewer absences, fewer lates and
// employee id, and assigns contiguous ranks from 1. The input is not modified.
func Rank(rows []analytics.RankingRow) []analytics.RankingRow {
	out := make([]analytics.RankingRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Absences != b.Absences {
			return a.Absences < b.Absences
		}
		if a.Lates != b.Lates {
			return a.Lates < b.Lates
		}
		return a.ID < b.ID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
