package gridcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPuzzle(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		puzzle, err := NewPuzzle(81, 1, 9)
		require.NoError(t, err)
		assert.Equal(t, 81, puzzle.Size())
		assert.Equal(t, 1, puzzle.MinValue())
		assert.Equal(t, 9, puzzle.MaxValue())
		assert.Equal(t, 9, puzzle.RangeLen())
	})

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := NewPuzzle(0, 1, 9)
		assert.Error(t, err)
		_, err = NewPuzzle(-4, 1, 9)
		assert.Error(t, err)
	})

	t.Run("rejects an empty value range", func(t *testing.T) {
		_, err := NewPuzzle(4, 5, 4)
		assert.Error(t, err)
	})

	t.Run("single-value ranges are allowed", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 7, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, puzzle.RangeLen())
	})
}

func TestAddConstraint(t *testing.T) {
	t.Run("validates cells against the grid size", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 1, 4)
		require.NoError(t, err)

		sum, err := NewSum(5, []int{2, 4}) // cell 4 is out of the grid
		require.NoError(t, err)
		assert.Error(t, puzzle.AddConstraint(sum))
		assert.Empty(t, puzzle.Constraints())
	})

	t.Run("rejects nil constraints", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 1, 4)
		require.NoError(t, err)
		assert.Error(t, puzzle.AddConstraint(nil))
	})

	t.Run("keeps attachment order", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 1, 4)
		require.NoError(t, err)
		a, err := NewSum(5, []int{0, 1})
		require.NoError(t, err)
		b, err := NewSum(5, []int{2, 3})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(a, b))

		attached := puzzle.Constraints()
		require.Len(t, attached, 2)
		assert.Same(t, a, attached[0])
		assert.Same(t, b, attached[1])
	})
}

func TestPuzzleString(t *testing.T) {
	puzzle, err := NewPuzzle(16, 1, 4)
	require.NoError(t, err)
	require.NoError(t, puzzle.AddGiven(0, 1))

	assert.Equal(t, "Puzzle{cells: 16, range: [1..4], constraints: 1}", puzzle.String())
}
