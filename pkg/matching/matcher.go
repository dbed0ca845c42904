// Package matching implements fuzzy identity matching between declared and
// authoritative rosters
package matching

import (
	"sort"

	"github.com/Ramsey-B/laurel/pkg/models"
	"github.com/Ramsey-B/laurel/pkg/normalizers"
)

// Config contains configuration for the identity matcher. All weights and
// thresholds are policy, not load-bearing constants, so they are exposed here
// and bound from the environment by the config package.
type Config struct {
	Algorithm     string  // String similarity algorithm (default: jaro_winkler)
	NameWeight    float64 // Weight of name similarity in the composite score (default: 0.8)
	DOBWeight     float64 // Weight of date-of-birth agreement (default: 0.2)
	MinMatchScore float64 // Minimum composite score to propose a pair (default: 0.5)
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Algorithm:     AlgorithmJaroWinkler,
		NameWeight:    0.8,
		DOBWeight:     0.2,
		MinMatchScore: 0.5,
	}
}

// Matcher resolves which declared identity corresponds to which authoritative
// identity using a composite name/date-of-birth similarity score.
type Matcher struct {
	scorer *Scorer
	cfg    Config
}

// NewMatcher creates a new identity matcher
func NewMatcher(cfg Config) *Matcher {
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmJaroWinkler
	}
	if cfg.NameWeight <= 0 {
		cfg.NameWeight = 0.8
	}
	if cfg.DOBWeight < 0 {
		cfg.DOBWeight = 0
	}
	return &Matcher{
		scorer: NewScorer(),
		cfg:    cfg,
	}
}

// candidatePair is one scored (source, target) combination before assignment.
type candidatePair struct {
	sourceIdx int
	targetIdx int
	score     float64
	nameScore float64
}

// FindBestMatches computes a best one-to-one assignment between the two
// identity lists.
//
// Assignment is greedy, not globally optimal: all pairs clearing
// MinMatchScore are ranked by score descending and consumed in order; a pair
// is accepted only if neither side has been assigned yet. Ties break by
// ascending source id, then ascending target id, so identical input always
// produces identical output. Identities that clear the threshold against no
// peer are silently excluded — unmatched is a valid outcome, not an error.
//
// The operation is pure and total: empty inputs yield an empty result, and
// malformed identities (missing name parts, unparseable dates) degrade their
// scores instead of failing.
func (m *Matcher) FindBestMatches(source, target []models.IdentityRecord) []models.MatchedPair {
	if len(source) == 0 || len(target) == 0 {
		return []models.MatchedPair{}
	}

	candidates := make([]candidatePair, 0, len(source)*len(target))
	for si, s := range source {
		sName := normalizedFullName(s)
		for ti, t := range target {
			nameScore := m.nameSimilarity(sName, t)
			score := m.compositeScore(s, t, nameScore)
			if score < m.cfg.MinMatchScore {
				continue
			}
			candidates = append(candidates, candidatePair{
				sourceIdx: si,
				targetIdx: ti,
				score:     score,
				nameScore: nameScore,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if source[a.sourceIdx].ID != source[b.sourceIdx].ID {
			return source[a.sourceIdx].ID < source[b.sourceIdx].ID
		}
		return target[a.targetIdx].ID < target[b.targetIdx].ID
	})

	usedSource := make(map[int]bool, len(source))
	usedTarget := make(map[int]bool, len(target))
	pairs := make([]models.MatchedPair, 0, min(len(source), len(target)))

	for _, c := range candidates {
		if usedSource[c.sourceIdx] || usedTarget[c.targetIdx] {
			continue
		}
		usedSource[c.sourceIdx] = true
		usedTarget[c.targetIdx] = true
		pairs = append(pairs, models.MatchedPair{
			Source:    source[c.sourceIdx],
			Target:    target[c.targetIdx],
			Score:     c.score,
			NameScore: c.nameScore,
		})
	}

	return pairs
}

// nameSimilarity scores the normalized full names of the two sides. The
// swapped form of the target is also tried so a clerical first/last swap is
// not punished as a mismatch.
func (m *Matcher) nameSimilarity(sName string, t models.IdentityRecord) float64 {
	tName := normalizedFullName(t)
	if sName == "" || tName == "" {
		return 0.0
	}

	score := m.scorer.TextSimilarity(sName, tName, m.cfg.Algorithm)

	swapped := normalizers.NormalizeName(t.LastName + " " + t.FirstName)
	if swapped != tName {
		if s := m.scorer.TextSimilarity(sName, swapped, m.cfg.Algorithm); s > score {
			score = s
		}
	}

	return score
}

// compositeScore combines name similarity with the date-of-birth agreement
// signal. An exact DOB match contributes the full DOB weight, a mismatch
// contributes nothing (penalizing the composite), and a missing DOB on either
// side excludes the signal entirely, leaving the name-only score.
func (m *Matcher) compositeScore(s, t models.IdentityRecord, nameScore float64) float64 {
	sDOB := normalizers.NormalizeDate(s.DateOfBirth)
	tDOB := normalizers.NormalizeDate(t.DateOfBirth)

	if sDOB == "" || tDOB == "" {
		return nameScore
	}

	dobScore := 0.0
	if sDOB == tDOB {
		dobScore = 1.0
	}

	totalWeight := m.cfg.NameWeight + m.cfg.DOBWeight
	if totalWeight <= 0 {
		return nameScore
	}

	return (m.cfg.NameWeight*nameScore + m.cfg.DOBWeight*dobScore) / totalWeight
}

func normalizedFullName(r models.IdentityRecord) string {
	return normalizers.NormalizeName(r.FirstName + " " + r.LastName)
}
