// Package comparison implements per-field verification scoring for matched
// identity pairs and the reduction of field results into one summary
package comparison

import (
	"sort"
	"strconv"

	"github.com/Ramsey-B/laurel/pkg/matching"
	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/normalizers"
)

// Config contains the comparison policy. Thresholds are policy, not
// load-bearing constants, so they are exposed here and bound from the
// environment by the config package.
type Config struct {
	Algorithm                  string   // String similarity algorithm (default: jaro_winkler)
	FullyVerifiedThreshold     float64  // Score at or above which a field is fully verified (default: 0.9)
	PartiallyVerifiedThreshold float64  // Score at or above which a field is partially verified (default: 0.6)
	ScaleMax                   float64  // Grading scale span for numeric fields (default: 20)
	TextFields                 []string // Fields always compared as text even when numeric-looking
	DateFields                 []string // Fields compared as normalized dates (exact agreement)
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Algorithm:                  matching.AlgorithmJaroWinkler,
		FullyVerifiedThreshold:     0.9,
		PartiallyVerifiedThreshold: 0.6,
		ScaleMax:                   20,
		TextFields:                 []string{"first_name", "last_name"},
		DateFields:                 []string{"date_of_birth", "dob"},
	}
}

// Comparator scores declared against authoritative field values for one match.
type Comparator struct {
	scorer *matching.Scorer
	cfg    Config
}

// NewComparator creates a new field comparator
func NewComparator(cfg Config) *Comparator {
	if cfg.Algorithm == "" {
		cfg.Algorithm = matching.AlgorithmJaroWinkler
	}
	if cfg.FullyVerifiedThreshold <= 0 {
		cfg.FullyVerifiedThreshold = 0.9
	}
	if cfg.PartiallyVerifiedThreshold <= 0 {
		cfg.PartiallyVerifiedThreshold = 0.6
	}
	if cfg.ScaleMax <= 0 {
		cfg.ScaleMax = 20
	}
	return &Comparator{
		scorer: matching.NewScorer(),
		cfg:    cfg,
	}
}

// BuildFieldSpecs derives the comparable field set from the two value maps.
// The result is the union of both sides' field names, ordered by name for
// deterministic output. A field is numeric when every present value parses as
// a number and the field is not configured as text or date.
func (c *Comparator) BuildFieldSpecs(declared, authoritative map[string]string) []models.FieldSpec {
	names := make(map[string]struct{}, len(declared)+len(authoritative))
	for name := range declared {
		names[name] = struct{}{}
	}
	for name := range authoritative {
		names[name] = struct{}{}
	}

	specs := make([]models.FieldSpec, 0, len(names))
	for name := range names {
		specs = append(specs, c.fieldSpec(name, declared, authoritative))
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

func (c *Comparator) fieldSpec(name string, declared, authoritative map[string]string) models.FieldSpec {
	if containsField(c.cfg.TextFields, name) || containsField(c.cfg.DateFields, name) {
		return models.FieldSpec{Name: name, Type: models.FieldTypeText}
	}

	numeric := false
	for _, values := range []map[string]string{declared, authoritative} {
		if v, ok := values[name]; ok && v != "" {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return models.FieldSpec{Name: name, Type: models.FieldTypeText}
			}
			numeric = true
		}
	}

	if numeric {
		return models.FieldSpec{Name: name, Type: models.FieldTypeNumeric, ScaleMax: c.cfg.ScaleMax}
	}
	return models.FieldSpec{Name: name, Type: models.FieldTypeText}
}

// CompareFields scores each spec'd field of one match. The computation is
// pure and total: a missing value on either side yields cannot_verify for
// that field rather than being scored as a mismatch, and no input can fail.
func (c *Comparator) CompareFields(matchID string, specs []models.FieldSpec, declared, authoritative map[string]string) []models.ComparisonResult {
	results := make([]models.ComparisonResult, 0, len(specs))

	for _, spec := range specs {
		sourceValue, sourceOK := presentValue(declared, spec.Name)
		targetValue, targetOK := presentValue(authoritative, spec.Name)

		result := models.ComparisonResult{
			MatchID:     matchID,
			FieldName:   spec.Name,
			SourceValue: sourceValue,
			TargetValue: targetValue,
		}

		if !sourceOK || !targetOK {
			result.SimilarityScore = 0
			result.Status = models.StatusCannotVerify
			results = append(results, result)
			continue
		}

		score := c.similarity(spec, *sourceValue, *targetValue)
		result.SimilarityScore = score
		result.Status = c.Classify(score)
		results = append(results, result)
	}

	return results
}

// similarity scores one field pair according to the field's value type.
func (c *Comparator) similarity(spec models.FieldSpec, source, target string) float64 {
	if containsField(c.cfg.DateFields, spec.Name) {
		// Dates agree or they don't; near-miss digits are not near-miss dates.
		return c.scorer.ExactMatch(normalizers.NormalizeDate(source), normalizers.NormalizeDate(target), true)
	}

	if spec.Type == models.FieldTypeNumeric {
		a, errA := strconv.ParseFloat(source, 64)
		b, errB := strconv.ParseFloat(target, 64)
		if errA == nil && errB == nil {
			scaleMax := spec.ScaleMax
			if scaleMax <= 0 {
				scaleMax = c.cfg.ScaleMax
			}
			return c.scorer.NumericProximity(a, b, scaleMax)
		}
	}

	return c.scorer.TextSimilarity(
		normalizers.NormalizeName(source),
		normalizers.NormalizeName(target),
		c.cfg.Algorithm,
	)
}

// Classify maps a similarity score to a verification status. Missing values
// never reach here; they are classified cannot_verify upstream.
func (c *Comparator) Classify(score float64) models.VerificationStatus {
	switch {
	case score >= c.cfg.FullyVerifiedThreshold:
		return models.StatusFullyVerified
	case score >= c.cfg.PartiallyVerifiedThreshold:
		return models.StatusPartiallyVerified
	default:
		return models.StatusFraud
	}
}

func presentValue(values map[string]string, name string) (*string, bool) {
	v, ok := values[name]
	if !ok || v == "" {
		return nil, false
	}
	return &v, true
}

func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
