package core

import (
	"sort"

	"github.com/AgitatedBuddha/protein-analyser/schema"
)

// statusOrder ranks pipeline outcomes for the leaderboard: scored products
// lead, indeterminate ones follow, rejected ones trail.
var statusOrder = map[schema.ModeStatus]int{
	schema.StatusScored:        0,
	schema.StatusIndeterminate: 1,
	schema.StatusRejected:      2,
}

// RankReports orders reports for one mode into leaderboard entries. The
// order is total and deterministic: scored products by score descending,
// then indeterminate, then rejected, with ties broken by brand name
// ascending. Ranks are 1-based and assigned after the sort; limit truncates
// after ordering. If limit is greater than the number of reports, all
// reports are returned in sorted order.
func RankReports(reports []schema.ScoreReport, mode schema.ScoringMode, limit int) []schema.LeaderboardEntry {
	entries := make([]schema.LeaderboardEntry, 0, len(reports))
	for i := range reports {
		ms := reports[i].ModeScoreFor(mode)
		entry := schema.LeaderboardEntry{
			Brand:           reports[i].Brand,
			Mode:            mode,
			Status:          ms.Status,
			Score:           ms.Score,
			RejectionReason: ms.RejectionReason,
		}
		if eco := reports[i].Economics; eco != nil {
			entry.PricePerServing = eco.PricePerServing
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		oi, oj := statusOrder[entries[i].Status], statusOrder[entries[j].Status]
		if oi != oj {
			return oi < oj
		}
		if entries[i].Score != nil && entries[j].Score != nil && *entries[i].Score != *entries[j].Score {
			return *entries[i].Score > *entries[j].Score
		}
		return entries[i].Brand < entries[j].Brand
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
