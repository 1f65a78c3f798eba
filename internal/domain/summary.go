package domain

import "sort"

// PositionCount is one bucket of the preferred-position distribution.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// DashboardSummary is the admin dashboard aggregate over the full
// contestant collection.
type DashboardSummary struct {
	Total        int `json:"total"`
	Evaluated    int `json:"evaluated"`
	NotEvaluated int `json:"notEvaluated"`

	// AverageScorePercent is the mean over evaluated records of
	// (score / MaxTotal(criteria)) * 100. Zero when nothing is evaluated.
	AverageScorePercent float64 `json:"averageScorePercent"`

	// PositionDistribution counts contestants per preferred-position label,
	// ordered descending by count.
	PositionDistribution []PositionCount `json:"positionDistribution"`
}

// Summarize computes the dashboard aggregate. It is a pure function over a
// snapshot of the collection.
func Summarize(records []Contestant) DashboardSummary {
	summary := DashboardSummary{Total: len(records)}

	var percentSum float64
	positions := make(map[string]int)
	for _, c := range records {
		positions[c.PreferredPosition]++
		if !c.Evaluated() {
			continue
		}
		summary.Evaluated++
		percentSum += *c.Score / MaxTotal(c.Criteria) * 100
	}
	summary.NotEvaluated = summary.Total - summary.Evaluated
	if summary.Evaluated > 0 {
		summary.AverageScorePercent = Round2(percentSum / float64(summary.Evaluated))
	}

	summary.PositionDistribution = make([]PositionCount, 0, len(positions))
	for pos, n := range positions {
		summary.PositionDistribution = append(summary.PositionDistribution, PositionCount{Position: pos, Count: n})
	}
	sort.Slice(summary.PositionDistribution, func(i, j int) bool {
		a, b := summary.PositionDistribution[i], summary.PositionDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Position < b.Position
	})

	return summary
}

// Leaderboard returns the evaluated contestants ordered by total score
// descending, ties broken by roll for a stable public listing.
func Leaderboard(records []Contestant) []Contestant {
	board := make([]Contestant, 0, len(records))
	for _, c := range records {
		if c.Evaluated() {
			board = append(board, c)
		}
	}
	sort.Slice(board, func(i, j int) bool {
		if *board[i].Score != *board[j].Score {
			return *board[i].Score > *board[j].Score
		}
		return board[i].Roll < board[j].Roll
	})
	return board
}
