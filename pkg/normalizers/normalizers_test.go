package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("built-in normalizers are registered", func(t *testing.T) {
		for _, name := range []string{"lowercase", "trim", "remove_whitespace", "remove_punctuation", "fold_diacritics", "nname", "ndate"} {
			_, ok := Get(name)
			assert.True(t, ok, "expected %s to be registered", name)
		}
	})

	t.Run("unknown normalizer passes value through", func(t *testing.T) {
		assert.Equal(t, "Value", Apply("Value", "does_not_exist"))
	})

	t.Run("chain applies in order", func(t *testing.T) {
		assert.Equal(t, "abc", ApplyChain("  A b C ", "trim", "lowercase", "remove_whitespace"))
	})
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "Jose", FoldDiacritics("José"))
	assert.Equal(t, "Muller", FoldDiacritics("Müller"))
	assert.Equal(t, "Francois", FoldDiacritics("François"))
	assert.Equal(t, "plain", FoldDiacritics("plain"))
}

func TestNormalizeName(t *testing.T) {
	t.Run("folds case and diacritics", func(t *testing.T) {
		assert.Equal(t, "jose garcia", NormalizeName("José GARCÍA"))
	})

	t.Run("collapses hyphens apostrophes and runs of whitespace", func(t *testing.T) {
		assert.Equal(t, "mary anne o brien", NormalizeName("Mary-Anne   O'Brien"))
	})

	t.Run("strips generational suffixes", func(t *testing.T) {
		assert.Equal(t, "john smith", NormalizeName("John Smith Jr."))
		assert.Equal(t, "john smith", NormalizeName("John Smith III"))
	})

	t.Run("drops stray punctuation", func(t *testing.T) {
		assert.Equal(t, "john q smith", NormalizeName("John Q. Smith"))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeName("   "))
	})
}

func TestNormalizeDate(t *testing.T) {
	t.Run("iso passes through", func(t *testing.T) {
		assert.Equal(t, "1990-05-17", NormalizeDate("1990-05-17"))
	})

	t.Run("known layouts are converted to iso", func(t *testing.T) {
		assert.Equal(t, "1990-05-17", NormalizeDate("17/05/1990"))
		assert.Equal(t, "1990-05-17", NormalizeDate("17-05-1990"))
		assert.Equal(t, "1990-05-17", NormalizeDate("17 May 1990"))
		assert.Equal(t, "1990-05-17", NormalizeDate("May 17, 1990"))
	})

	t.Run("surrounding whitespace is trimmed first", func(t *testing.T) {
		assert.Equal(t, "1990-05-17", NormalizeDate("  1990-05-17  "))
	})

	t.Run("unparseable input is returned trimmed", func(t *testing.T) {
		assert.Equal(t, "not a date", NormalizeDate(" not a date "))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeDate(""))
	})
}
