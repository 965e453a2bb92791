// Package gridcsp: the extensional combinations constraint, workhorse of
// rules that are easier to enumerate than to reason about arithmetically.
package gridcsp

import (
	"fmt"
	"math"
)

// Wildcard marks a tuple slot that matches any value.
const Wildcard = math.MinInt

// CombinationsConstraint restricts a fixed list of cells to an explicit set
// of admissible value tuples. Tuple slot i applies to cell i; a Wildcard
// slot matches anything.
//
// Processing drops every tuple inconsistent with the current assignment and
// candidate sets, then removes each candidate that appears in no surviving
// tuple. When the tuple set shrinks, the constraint replaces itself with a
// fresh instance holding only the survivors, which keeps the
// combination-count hint used by the search heuristic accurate.
type CombinationsConstraint struct {
	cells  []int
	tuples [][]int
}

// NewCombinations creates a combinations constraint. Every tuple must have
// exactly one slot per cell.
func NewCombinations(cells []int, tuples [][]int) (*CombinationsConstraint, error) {
	if err := validateCells("combinations", cells); err != nil {
		return nil, err
	}
	if len(tuples) == 0 {
		return nil, fmt.Errorf("combinations: tuple list cannot be empty")
	}
	copied := make([][]int, len(tuples))
	for i, tuple := range tuples {
		if len(tuple) != len(cells) {
			return nil, fmt.Errorf("combinations: tuple %d has %d slots, expected %d",
				i, len(tuple), len(cells))
		}
		copied[i] = make([]int, len(tuple))
		copy(copied[i], tuple)
	}
	return &CombinationsConstraint{cells: copyCells(cells), tuples: copied}, nil
}

// Tuples returns the admissible tuples. The result must not be modified.
func (c *CombinationsConstraint) Tuples() [][]int { return c.tuples }

// AffectedCells implements Constraint.
func (c *CombinationsConstraint) AffectedCells() []int { return c.cells }

// CanReevaluate implements Reevaluable: tuples die when other constraints
// narrow the cells, with or without a placement.
func (c *CombinationsConstraint) CanReevaluate() bool { return true }

// NumCombinations implements CombinationCounter.
func (c *CombinationsConstraint) NumCombinations() int { return len(c.tuples) }

// Process implements Constraint.
func (c *CombinationsConstraint) Process(s State) Result {
	surviving := make([][]int, 0, len(c.tuples))
	for _, tuple := range c.tuples {
		if c.consistent(s, tuple) {
			surviving = append(surviving, tuple)
		}
	}
	if len(surviving) == 0 {
		return Violation()
	}

	// Remove candidates that no surviving tuple supports.
	for i, cell := range c.cells {
		if _, ok := s.Value(cell); ok {
			continue
		}
		supported := make(map[int]bool)
		wild := false
		for _, tuple := range surviving {
			if tuple[i] == Wildcard {
				wild = true
				break
			}
			supported[tuple[i]] = true
		}
		if wild {
			continue
		}
		s.MarkImpossibleIf(cell, func(value int) bool {
			return !supported[value]
		})
	}

	if len(surviving) < len(c.tuples) {
		return Replace(&CombinationsConstraint{cells: c.cells, tuples: surviving})
	}
	return Keep()
}

// consistent reports whether the tuple can still be realized: assigned cells
// must match their slot exactly, and unassigned cells must not have the
// slot's value ruled out.
func (c *CombinationsConstraint) consistent(s State, tuple []int) bool {
	for i, cell := range c.cells {
		slot := tuple[i]
		if slot == Wildcard {
			continue
		}
		if value, ok := s.Value(cell); ok {
			if value != slot {
				return false
			}
			continue
		}
		if s.IsImpossible(cell, slot) {
			return false
		}
	}
	return true
}

// String returns a human-readable representation.
func (c *CombinationsConstraint) String() string {
	return fmt.Sprintf("Combinations(%d cells, %d tuples)", len(c.cells), len(c.tuples))
}
