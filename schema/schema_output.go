package schema

// Grade label constants.
const (
	ExcellentLabel     = "Excellent"
	GoodLabel          = "Good"
	FairLabel          = "Fair"
	PoorLabel          = "Poor"
	RejectedLabel      = "Rejected"
	IndeterminateLabel = "Indeterminate"
)

// GradeThresholds holds the score cutoffs for grade labels on the [0,1]
// composite scale.
type GradeThresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// DefaultGradeThresholds returns the standard grade cutoffs.
func DefaultGradeThresholds() GradeThresholds {
	return GradeThresholds{Excellent: 0.80, Good: 0.60, Fair: 0.40}
}

// GetPlainLabel returns a plain text label for a mode result. Rejected and
// indeterminate pipelines label by status; scored pipelines label by grade.
func GetPlainLabel(ms ModeScore, th GradeThresholds) string {
	switch ms.Status {
	case StatusRejected:
		return RejectedLabel
	case StatusIndeterminate:
		return IndeterminateLabel
	}
	if ms.Score == nil {
		return IndeterminateLabel
	}
	switch score := *ms.Score; {
	case score >= th.Excellent:
		return ExcellentLabel
	case score >= th.Good:
		return GoodLabel
	case score >= th.Fair:
		return FairLabel
	default:
		return PoorLabel
	}
}

// EnrichedLeaderboardEntry adds presentation data to a LeaderboardEntry.
type EnrichedLeaderboardEntry struct {
	Label string `json:"label"`
	LeaderboardEntry
}

// EnrichLeaderboard adds grade labels to ranked leaderboard entries.
func EnrichLeaderboard(entries []LeaderboardEntry, th GradeThresholds) []EnrichedLeaderboardEntry {
	output := make([]EnrichedLeaderboardEntry, len(entries))
	for i, e := range entries {
		output[i] = EnrichedLeaderboardEntry{
			Label:            GetPlainLabel(ModeScore{Status: e.Status, Score: e.Score}, th),
			LeaderboardEntry: e,
		}
	}
	return output
}
