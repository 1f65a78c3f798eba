package domain

import "math"

// WeightedTotal converts a scorecard into its persisted total:
// sum((raw/20) * maxScore) over all criteria, rounded to two decimals.
// An empty scorecard totals 0. The same function backs both the live
// recompute shown while sliders move and the value written at save time,
// so the two can never diverge.
func WeightedTotal(criteria []MarkingCriterion) float64 {
	var total float64
	for _, c := range criteria {
		total += float64(c.Raw) / RawScoreMax * c.MaxScore
	}
	return Round2(total)
}

// MaxTotal returns the sum of max scores for a scorecard, the denominator
// used when expressing a total as a percentage. A record with a score but
// no criteria list uses DefaultMaxTotal.
func MaxTotal(criteria []MarkingCriterion) float64 {
	if len(criteria) == 0 {
		return DefaultMaxTotal
	}
	var sum float64
	for _, c := range criteria {
		sum += c.MaxScore
	}
	return sum
}

// Round2 rounds to two decimal places. Rounding is stable: applying it to
// an already-rounded value returns the same value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
