package comparison

import (
	"github.com/Ramsey-B/laurel/pkg/models"
)

// Aggregator reduces a match's field results to one summary.
type Aggregator struct{}

// NewAggregator creates a new Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the overall status and average similarity for one
// match's field results.
//
// The overall status is the most severe field status: any fraud field makes
// the whole match fraud, any cannot_verify (absent fraud) makes it
// cannot_verify, and only an all-fully_verified result set is fully verified.
// AverageSimilarity is the mean over scorable fields only; cannot_verify
// fields carry no information and are excluded from the mean. A match with no
// scorable fields averages 0.
func (a *Aggregator) Aggregate(matchID string, results []models.ComparisonResult) models.ComparisonSummary {
	overall := models.StatusFullyVerified
	if len(results) == 0 {
		overall = models.StatusCannotVerify
	}

	sum := 0.0
	scorable := 0

	for _, result := range results {
		if result.Status.Severity() > overall.Severity() {
			overall = result.Status
		}
		if result.Status != models.StatusCannotVerify {
			sum += result.SimilarityScore
			scorable++
		}
	}

	average := 0.0
	if scorable > 0 {
		average = sum / float64(scorable)
	}

	return models.ComparisonSummary{
		MatchID:           matchID,
		AverageSimilarity: average,
		OverallStatus:     overall,
	}
}
