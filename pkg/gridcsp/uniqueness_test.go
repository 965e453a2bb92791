package gridcsp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniquenessConstraint(t *testing.T) {
	t.Run("rejects duplicate cells", func(t *testing.T) {
		_, err := NewUniqueness([]int{0, 1, 0})
		assert.Error(t, err)
	})

	t.Run("placed value leaves the rest of the region", func(t *testing.T) {
		puzzle, err := NewPuzzle(3, 1, 5)
		require.NoError(t, err)
		unique, err := NewUniqueness([]int{0, 1, 2})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(unique))
		require.NoError(t, puzzle.AddGiven(0, 4))

		solution, ok := puzzle.FirstSolution(context.Background(), nil)
		require.True(t, ok)
		assert.Equal(t, 4, solution[0])
		assert.NotEqual(t, 4, solution[1])
		assert.NotEqual(t, 4, solution[2])
		assert.NotEqual(t, solution[1], solution[2])
	})

	t.Run("duplicate assignment violates", func(t *testing.T) {
		puzzle, err := NewPuzzle(2, 1, 2)
		require.NoError(t, err)
		unique, err := NewUniqueness([]int{0, 1})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(unique))

		st := newSolverState(puzzle)
		st.grid[0] = 1 // value 1
		st.grid[1] = 1 // value 1 again

		result := unique.Process(st)
		assert.Equal(t, resultViolation, result.kind)
	})
}

func TestBijectionDeduction(t *testing.T) {
	t.Run("last open cell is forced to the unused value", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 1, 4)
		require.NoError(t, err)
		unique, err := NewUniqueness([]int{0, 1, 2, 3})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(unique))
		require.NoError(t, puzzle.AddGiven(0, 2))
		require.NoError(t, puzzle.AddGiven(1, 4))
		require.NoError(t, puzzle.AddGiven(2, 1))

		solutions := collect(t, puzzle, nil)
		require.Len(t, solutions, 1)
		assert.Equal(t, Solution{2, 4, 1, 3}, solutions[0])
	})

	t.Run("value with a single home is forced there", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 1, 4)
		require.NoError(t, err)
		unique, err := NewUniqueness([]int{0, 1, 2, 3})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(unique))

		st := newSolverState(puzzle)
		// Value 3 survives only in cell 2.
		st.MarkImpossible(0, 3)
		st.MarkImpossible(1, 3)
		st.MarkImpossible(3, 3)

		result := unique.Process(st)
		assert.Equal(t, resultKeep, result.kind)
		for value := 1; value <= 4; value++ {
			assert.Equal(t, value != 3, st.IsImpossible(2, value), "value %d", value)
		}
	})

	t.Run("hidden pair claims its two cells", func(t *testing.T) {
		puzzle, err := NewPuzzle(4, 1, 4)
		require.NoError(t, err)
		unique, err := NewUniqueness([]int{0, 1, 2, 3})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(unique))

		st := newSolverState(puzzle)
		// Values 1 and 2 fit only in cells 0 and 1.
		for _, cell := range []int{2, 3} {
			st.MarkImpossible(cell, 1)
			st.MarkImpossible(cell, 2)
		}

		result := unique.Process(st)
		assert.Equal(t, resultKeep, result.kind)

		// Cells 0 and 1 belong to the pair now; 3 and 4 are cleared there.
		for _, cell := range []int{0, 1} {
			assert.False(t, st.IsImpossible(cell, 1))
			assert.False(t, st.IsImpossible(cell, 2))
			assert.True(t, st.IsImpossible(cell, 3))
			assert.True(t, st.IsImpossible(cell, 4))
		}
		// Which frees cells 2 and 3 for values 3 and 4 only.
		for _, cell := range []int{2, 3} {
			assert.False(t, st.IsImpossible(cell, 3))
			assert.False(t, st.IsImpossible(cell, 4))
		}
	})

	t.Run("value with no home violates", func(t *testing.T) {
		puzzle, err := NewPuzzle(3, 1, 3)
		require.NoError(t, err)
		unique, err := NewUniqueness([]int{0, 1, 2})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(unique))

		st := newSolverState(puzzle)
		for cell := 0; cell < 3; cell++ {
			st.MarkImpossible(cell, 2)
		}

		result := unique.Process(st)
		assert.Equal(t, resultViolation, result.kind)
	})
}
