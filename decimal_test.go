package baysearch_test

import (
	"testing"

	"github.com/fwojciec/baysearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDecimal(t *testing.T) {
	t.Parallel()

	t.Run("parses comma as decimal separator", func(t *testing.T) {
		t.Parallel()

		v, ok := baysearch.ExtractDecimal("12,5 €")

		require.True(t, ok)
		assert.Equal(t, 12.5, v)
	})

	t.Run("parses dot as decimal separator", func(t *testing.T) {
		t.Parallel()

		v, ok := baysearch.ExtractDecimal("EUR 1.99")

		require.True(t, ok)
		assert.Equal(t, 1.99, v)
	})

	t.Run("returns first number in mixed text", func(t *testing.T) {
		t.Parallel()

		v, ok := baysearch.ExtractDecimal("EUR 12,99 bis EUR 24,99")

		require.True(t, ok)
		assert.Equal(t, 12.99, v)
	})

	t.Run("parses bare integers", func(t *testing.T) {
		t.Parallel()

		v, ok := baysearch.ExtractDecimal("42")

		require.True(t, ok)
		assert.Equal(t, 42.0, v)
	})

	t.Run("reports not found for text without numbers", func(t *testing.T) {
		t.Parallel()

		_, ok := baysearch.ExtractDecimal("no numbers here")

		assert.False(t, ok)
	})

	t.Run("reports not found for empty text", func(t *testing.T) {
		t.Parallel()

		_, ok := baysearch.ExtractDecimal("")

		assert.False(t, ok)
	})
}

func TestStripGrouping(t *testing.T) {
	t.Parallel()

	t.Run("strips thousands separator", func(t *testing.T) {
		t.Parallel()

		n, err := baysearch.StripGrouping("1.234")

		require.NoError(t, err)
		assert.Equal(t, 1234, n)
	})

	t.Run("strips parentheses around facet counts", func(t *testing.T) {
		t.Parallel()

		n, err := baysearch.StripGrouping("(1.234)")

		require.NoError(t, err)
		assert.Equal(t, 1234, n)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		n, err := baysearch.StripGrouping(" 57 ")

		require.NoError(t, err)
		assert.Equal(t, 57, n)
	})

	t.Run("fails on non-numeric text", func(t *testing.T) {
		t.Parallel()

		_, err := baysearch.StripGrouping("viele")

		require.Error(t, err)
		assert.Equal(t, baysearch.EINVALID, baysearch.ErrorCode(err))
	})
}
