package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_JaroWinkler(t *testing.T) {
	s := NewScorer()

	t.Run("identical strings score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, s.JaroWinkler("martha", "martha"))
	})

	t.Run("transposed characters score high", func(t *testing.T) {
		score := s.JaroWinkler("martha", "marhta")
		assert.InDelta(t, 0.961, score, 0.001)
	})

	t.Run("common prefix is boosted over plain jaro", func(t *testing.T) {
		jaro := s.Jaro("dwayne", "duane")
		jw := s.JaroWinkler("dwayne", "duane")
		assert.Greater(t, jw, jaro)
	})

	t.Run("unrelated strings score low", func(t *testing.T) {
		assert.Less(t, s.JaroWinkler("alice", "robert"), 0.6)
	})

	t.Run("empty string scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, s.JaroWinkler("martha", ""))
	})
}

func TestScorer_Levenshtein(t *testing.T) {
	s := NewScorer()

	t.Run("distance", func(t *testing.T) {
		assert.Equal(t, 3, s.LevenshteinDistance("kitten", "sitting"))
		assert.Equal(t, 0, s.LevenshteinDistance("same", "same"))
		assert.Equal(t, 4, s.LevenshteinDistance("", "four"))
	})

	t.Run("similarity normalizes by longest string", func(t *testing.T) {
		score := s.Levenshtein("kitten", "sitting")
		assert.InDelta(t, 1.0-3.0/7.0, score, 0.0001)
	})

	t.Run("both empty score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, s.Levenshtein("", ""))
	})
}

func TestScorer_TextSimilarity(t *testing.T) {
	s := NewScorer()

	t.Run("levenshtein is selectable", func(t *testing.T) {
		assert.Equal(t, s.Levenshtein("kitten", "sitting"), s.TextSimilarity("kitten", "sitting", AlgorithmLevenshtein))
	})

	t.Run("unknown algorithm falls back to jaro winkler", func(t *testing.T) {
		assert.Equal(t, s.JaroWinkler("martha", "marhta"), s.TextSimilarity("martha", "marhta", "soundex"))
	})
}

func TestScorer_ExactMatch(t *testing.T) {
	s := NewScorer()

	assert.Equal(t, 1.0, s.ExactMatch("abc", "abc", true))
	assert.Equal(t, 0.0, s.ExactMatch("abc", "ABC", true))
	assert.Equal(t, 1.0, s.ExactMatch("abc", "ABC", false))
}

func TestScorer_NumericProximity(t *testing.T) {
	s := NewScorer()

	t.Run("exact match scores 1", func(t *testing.T) {
		assert.Equal(t, 1.0, s.NumericProximity(15, 15, 20))
	})

	t.Run("decays linearly", func(t *testing.T) {
		assert.InDelta(t, 0.75, s.NumericProximity(15, 10, 20), 0.0001)
		assert.InDelta(t, 0.75, s.NumericProximity(10, 15, 20), 0.0001)
	})

	t.Run("at or beyond max diff scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, s.NumericProximity(0, 20, 20))
		assert.Equal(t, 0.0, s.NumericProximity(0, 35, 20))
	})

	t.Run("non-positive max diff scores 0 unless exact", func(t *testing.T) {
		assert.Equal(t, 0.0, s.NumericProximity(1, 2, 0))
		assert.Equal(t, 1.0, s.NumericProximity(2, 2, 0))
	})
}
