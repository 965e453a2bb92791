package gridcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCombinations(t *testing.T) {
	t.Run("rejects mismatched tuple arity", func(t *testing.T) {
		_, err := NewCombinations([]int{0, 1}, [][]int{{1, 2}, {3}})
		assert.Error(t, err)
	})

	t.Run("rejects an empty tuple list", func(t *testing.T) {
		_, err := NewCombinations([]int{0, 1}, nil)
		assert.Error(t, err)
	})

	t.Run("copies its inputs", func(t *testing.T) {
		cells := []int{0, 1}
		tuples := [][]int{{1, 2}}
		combos, err := NewCombinations(cells, tuples)
		require.NoError(t, err)

		tuples[0][0] = 9
		cells[0] = 9
		assert.Equal(t, [][]int{{1, 2}}, combos.Tuples())
		assert.Equal(t, []int{0, 1}, combos.AffectedCells())
	})
}

func TestCombinationsProcess(t *testing.T) {
	t.Run("survivors are exactly the consistent tuples", func(t *testing.T) {
		puzzle, err := NewPuzzle(2, 1, 3)
		require.NoError(t, err)
		combos, err := NewCombinations([]int{0, 1}, [][]int{{1, 2}, {2, 1}, {3, 3}})
		require.NoError(t, err)

		st := newSolverState(puzzle)
		st.grid[0] = 3 // cell 0 assigned 3

		result := combos.Process(st)
		require.Equal(t, resultReplace, result.kind)
		require.Len(t, result.replacements, 1)

		successor, ok := result.replacements[0].(*CombinationsConstraint)
		require.True(t, ok)
		assert.Equal(t, [][]int{{3, 3}}, successor.Tuples())
		assert.Equal(t, 1, successor.NumCombinations())

		// Cell 1 lost everything but the supported value 3.
		assert.True(t, st.IsImpossible(1, 1))
		assert.True(t, st.IsImpossible(1, 2))
		assert.False(t, st.IsImpossible(1, 3))
	})

	t.Run("no surviving tuple violates", func(t *testing.T) {
		puzzle, err := NewPuzzle(2, 1, 3)
		require.NoError(t, err)
		combos, err := NewCombinations([]int{0, 1}, [][]int{{1, 2}, {2, 1}})
		require.NoError(t, err)

		st := newSolverState(puzzle)
		st.grid[0] = 3 // cell 0 assigned 3, matching no tuple

		result := combos.Process(st)
		assert.Equal(t, resultViolation, result.kind)
	})

	t.Run("wildcard slot supports every value", func(t *testing.T) {
		puzzle, err := NewPuzzle(2, 1, 3)
		require.NoError(t, err)
		combos, err := NewCombinations([]int{0, 1}, [][]int{{1, Wildcard}})
		require.NoError(t, err)

		st := newSolverState(puzzle)
		result := combos.Process(st)
		assert.Equal(t, resultKeep, result.kind)

		// Cell 0 collapses to 1; cell 1 stays fully open.
		assert.False(t, st.IsImpossible(0, 1))
		assert.True(t, st.IsImpossible(0, 2))
		assert.True(t, st.IsImpossible(0, 3))
		for value := 1; value <= 3; value++ {
			assert.False(t, st.IsImpossible(1, value), "value %d", value)
		}
	})

	t.Run("forced cell propagates end to end", func(t *testing.T) {
		puzzle, err := NewPuzzle(2, 1, 3)
		require.NoError(t, err)
		combos, err := NewCombinations([]int{0, 1}, [][]int{{1, 2}, {2, 1}, {3, 3}})
		require.NoError(t, err)
		require.NoError(t, puzzle.AddConstraint(combos))
		require.NoError(t, puzzle.AddGiven(0, 3))

		solutions := collect(t, puzzle, nil)
		require.Len(t, solutions, 1)
		assert.Equal(t, Solution{3, 3}, solutions[0])
	})

	t.Run("tuple death by external narrowing", func(t *testing.T) {
		puzzle, err := NewPuzzle(2, 1, 3)
		require.NoError(t, err)
		combos, err := NewCombinations([]int{0, 1}, [][]int{{1, 2}, {2, 1}, {3, 3}})
		require.NoError(t, err)

		st := newSolverState(puzzle)
		st.MarkImpossible(0, 1) // kills tuple {1,2} without any assignment

		result := combos.Process(st)
		require.Equal(t, resultReplace, result.kind)
		successor := result.replacements[0].(*CombinationsConstraint)
		assert.Equal(t, [][]int{{2, 1}, {3, 3}}, successor.Tuples())
	})
}

func TestCombinationHint(t *testing.T) {
	// Two equally narrow cells; the cell covered by the smaller tuple set
	// must be branched first, which shows through the candidate order of
	// the first solution under a shuffling-free solve.
	puzzle, err := NewPuzzle(4, 1, 2)
	require.NoError(t, err)
	wide, err := NewCombinations([]int{0, 1}, [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}})
	require.NoError(t, err)
	narrow, err := NewCombinations([]int{2, 3}, [][]int{{1, 2}, {2, 1}})
	require.NoError(t, err)
	require.NoError(t, puzzle.AddConstraint(wide, narrow))

	solutions := collect(t, puzzle, nil)
	// 4 wide tuples x 2 narrow tuples.
	assert.Len(t, solutions, 8)
	for _, solution := range solutions {
		assert.NotEqual(t, solution[2], solution[3])
	}
}
