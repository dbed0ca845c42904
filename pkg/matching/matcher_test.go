package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/laurel/pkg/models"
)

func TestMatcher_FindBestMatches(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	t.Run("exact names pair up", func(t *testing.T) {
		source := []models.IdentityRecord{
			{ID: 1, FirstName: "John", LastName: "Smith", DateOfBirth: "1990-01-01"},
			{ID: 2, FirstName: "Jane", LastName: "Doe", DateOfBirth: "1992-06-15"},
		}
		target := []models.IdentityRecord{
			{ID: 10, FirstName: "Jane", LastName: "Doe", DateOfBirth: "1992-06-15"},
			{ID: 11, FirstName: "John", LastName: "Smith", DateOfBirth: "1990-01-01"},
		}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 2)

		byCandidate := map[int64]int64{}
		for _, p := range pairs {
			byCandidate[p.Source.ID] = p.Target.ID
			assert.Equal(t, 1.0, p.Score)
		}
		assert.Equal(t, int64(11), byCandidate[1])
		assert.Equal(t, int64(10), byCandidate[2])
	})

	t.Run("swapped first and last names still match", func(t *testing.T) {
		source := []models.IdentityRecord{{ID: 1, FirstName: "Garcia", LastName: "Maria"}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "Maria", LastName: "Garcia"}}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		assert.Equal(t, 1.0, pairs[0].NameScore)
	})

	t.Run("diacritics and suffixes are normalized away", func(t *testing.T) {
		source := []models.IdentityRecord{{ID: 1, FirstName: "José", LastName: "García Jr."}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "Jose", LastName: "Garcia"}}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		assert.Equal(t, 1.0, pairs[0].NameScore)
	})

	t.Run("matching date of birth breaks a name tie", func(t *testing.T) {
		source := []models.IdentityRecord{{ID: 1, FirstName: "John", LastName: "Smith", DateOfBirth: "1990-01-01"}}
		target := []models.IdentityRecord{
			{ID: 10, FirstName: "John", LastName: "Smith", DateOfBirth: "1985-03-03"},
			{ID: 11, FirstName: "John", LastName: "Smith", DateOfBirth: "1990-01-01"},
		}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		assert.Equal(t, int64(11), pairs[0].Target.ID)
		assert.Equal(t, 1.0, pairs[0].Score)
	})

	t.Run("date of birth mismatch drags the composite down", func(t *testing.T) {
		source := []models.IdentityRecord{{ID: 1, FirstName: "John", LastName: "Smith", DateOfBirth: "1990-01-01"}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "John", LastName: "Smith", DateOfBirth: "1985-03-03"}}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		assert.InDelta(t, 0.8, pairs[0].Score, 0.0001)
		assert.Equal(t, 1.0, pairs[0].NameScore)
	})

	t.Run("missing date of birth falls back to name only", func(t *testing.T) {
		source := []models.IdentityRecord{{ID: 1, FirstName: "John", LastName: "Smith"}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "John", LastName: "Smith", DateOfBirth: "1990-01-01"}}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		assert.Equal(t, 1.0, pairs[0].Score)
	})

	t.Run("pairs below the minimum score are excluded", func(t *testing.T) {
		source := []models.IdentityRecord{{ID: 1, FirstName: "Bob", LastName: "Ng"}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "Sue", LastName: "Li"}}

		pairs := m.FindBestMatches(source, target)
		assert.Empty(t, pairs)
	})

	t.Run("assignment is one to one", func(t *testing.T) {
		source := []models.IdentityRecord{
			{ID: 1, FirstName: "Jon", LastName: "Smith"},
			{ID: 2, FirstName: "John", LastName: "Smith"},
		}
		target := []models.IdentityRecord{{ID: 10, FirstName: "John", LastName: "Smith"}}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		// the exact name wins the single target
		assert.Equal(t, int64(2), pairs[0].Source.ID)
	})

	t.Run("empty rosters yield no matches", func(t *testing.T) {
		assert.Empty(t, m.FindBestMatches(nil, []models.IdentityRecord{{ID: 1}}))
		assert.Empty(t, m.FindBestMatches([]models.IdentityRecord{{ID: 1}}, nil))
	})

	t.Run("identical input produces identical output", func(t *testing.T) {
		source := []models.IdentityRecord{
			{ID: 3, FirstName: "Anna", LastName: "Lee", DateOfBirth: "1991-02-02"},
			{ID: 1, FirstName: "Ana", LastName: "Lee", DateOfBirth: "1991-02-02"},
		}
		target := []models.IdentityRecord{
			{ID: 20, FirstName: "Anna", LastName: "Lee", DateOfBirth: "1991-02-02"},
			{ID: 21, FirstName: "Ana", LastName: "Lee", DateOfBirth: "1991-02-02"},
		}

		first := m.FindBestMatches(source, target)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, m.FindBestMatches(source, target))
		}
	})
}

func TestMatcher_Config(t *testing.T) {
	t.Run("higher minimum score excludes weaker pairs", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinMatchScore = 0.99
		m := NewMatcher(cfg)

		source := []models.IdentityRecord{{ID: 1, FirstName: "Jon", LastName: "Smith"}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "John", LastName: "Smith"}}

		assert.Empty(t, m.FindBestMatches(source, target))
	})

	t.Run("levenshtein algorithm is selectable", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Algorithm = AlgorithmLevenshtein
		m := NewMatcher(cfg)

		source := []models.IdentityRecord{{ID: 1, FirstName: "John", LastName: "Smith"}}
		target := []models.IdentityRecord{{ID: 10, FirstName: "John", LastName: "Smith"}}

		pairs := m.FindBestMatches(source, target)
		require.Len(t, pairs, 1)
		assert.Equal(t, 1.0, pairs[0].Score)
	})
}
