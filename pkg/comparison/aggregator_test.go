package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/laurel/pkg/models"
)

func result(status models.VerificationStatus, score float64) models.ComparisonResult {
	return models.ComparisonResult{Status: status, SimilarityScore: score}
}

func TestAggregator_Aggregate(t *testing.T) {
	a := NewAggregator()

	t.Run("all fully verified", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusFullyVerified, 1.0),
			result(models.StatusFullyVerified, 0.95),
		})
		assert.Equal(t, models.StatusFullyVerified, summary.OverallStatus)
		assert.InDelta(t, 0.975, summary.AverageSimilarity, 0.0001)
		assert.Equal(t, "m1", summary.MatchID)
	})

	t.Run("one fraud field makes the whole match fraud", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusFullyVerified, 1.0),
			result(models.StatusFullyVerified, 1.0),
			result(models.StatusFraud, 0.1),
		})
		assert.Equal(t, models.StatusFraud, summary.OverallStatus)
	})

	t.Run("fraud outranks cannot verify", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusCannotVerify, 0),
			result(models.StatusFraud, 0.2),
		})
		assert.Equal(t, models.StatusFraud, summary.OverallStatus)
	})

	t.Run("cannot verify outranks partial", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusPartiallyVerified, 0.7),
			result(models.StatusCannotVerify, 0),
		})
		assert.Equal(t, models.StatusCannotVerify, summary.OverallStatus)
	})

	t.Run("partial outranks fully verified", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusFullyVerified, 1.0),
			result(models.StatusPartiallyVerified, 0.7),
		})
		assert.Equal(t, models.StatusPartiallyVerified, summary.OverallStatus)
	})

	t.Run("cannot verify fields are excluded from the average", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusFullyVerified, 1.0),
			result(models.StatusCannotVerify, 0),
		})
		assert.Equal(t, 1.0, summary.AverageSimilarity)
	})

	t.Run("no scorable fields average to zero", func(t *testing.T) {
		summary := a.Aggregate("m1", []models.ComparisonResult{
			result(models.StatusCannotVerify, 0),
			result(models.StatusCannotVerify, 0),
		})
		assert.Equal(t, 0.0, summary.AverageSimilarity)
		assert.Equal(t, models.StatusCannotVerify, summary.OverallStatus)
	})

	t.Run("no fields at all cannot be verified", func(t *testing.T) {
		summary := a.Aggregate("m1", nil)
		assert.Equal(t, models.StatusCannotVerify, summary.OverallStatus)
		assert.Equal(t, 0.0, summary.AverageSimilarity)
	})
}
