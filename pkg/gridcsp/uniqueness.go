// Package gridcsp: the uniqueness constraint with its bijection deduction.
package gridcsp

import "fmt"

// UniquenessConstraint requires every cell of a region to hold a distinct
// value.
//
// Basic pruning removes each placed value from the rest of the region. When
// the region has exactly as many cells as the value range has values, the
// assignment must be a bijection, which enables stronger deductions from the
// inverse map value → still-possible cells:
//
//   - A value possible in no cell violates the branch.
//   - A value possible in exactly one cell is forced there.
//   - Two values confined to the same two cells clear every other candidate
//     from those cells, and analogously for triples.
//
// The inverse map is rebuilt on every invocation because the candidate sets
// evolve between calls.
type UniquenessConstraint struct {
	cells []int
}

// NewUniqueness creates a uniqueness constraint over the given cells.
// The cells must be distinct.
func NewUniqueness(cells []int) (*UniquenessConstraint, error) {
	if err := validateCells("uniqueness", cells); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(cells))
	for _, cell := range cells {
		if seen[cell] {
			return nil, fmt.Errorf("uniqueness: duplicate cell %d", cell)
		}
		seen[cell] = true
	}
	return &UniquenessConstraint{cells: copyCells(cells)}, nil
}

// AffectedCells implements Constraint.
func (c *UniquenessConstraint) AffectedCells() []int { return c.cells }

// CanReevaluate implements Reevaluable: the bijection deductions react to
// narrowings, not just to placements.
func (c *UniquenessConstraint) CanReevaluate() bool { return true }

// Process implements Constraint.
func (c *UniquenessConstraint) Process(s State) Result {
	if last := s.LastPlacedCell(); last >= 0 && containsCell(c.cells, last) {
		// A single fresh placement: remove just that value elsewhere.
		placed := s.LastPlacedValue()
		for _, cell := range c.cells {
			if cell == last {
				continue
			}
			if value, ok := s.Value(cell); ok {
				if value == placed {
					return Violation()
				}
				continue
			}
			s.MarkImpossible(cell, placed)
		}
	} else {
		// Whole-grid pass: remove every assigned value from the rest.
		assigned := make(map[int]int, len(c.cells)) // value -> cell
		for _, cell := range c.cells {
			value, ok := s.Value(cell)
			if !ok {
				continue
			}
			if _, dup := assigned[value]; dup {
				return Violation()
			}
			assigned[value] = cell
		}
		if len(assigned) > 0 {
			for _, cell := range c.cells {
				if _, ok := s.Value(cell); ok {
					continue
				}
				s.MarkImpossibleIf(cell, func(value int) bool {
					_, taken := assigned[value]
					return taken
				})
			}
		}
	}

	if len(c.cells) == s.MaxValue()-s.MinValue()+1 {
		return c.deduceBijection(s)
	}
	return Keep()
}

// deduceBijection applies the inverse-map reasoning available when the
// region's cells and the value range pair off one to one.
func (c *UniquenessConstraint) deduceBijection(s State) Result {
	// positions[i] lists the region cells that can still hold value min+i.
	rangeLen := s.MaxValue() - s.MinValue() + 1
	positions := make([][]int, rangeLen)
	for i := 0; i < rangeLen; i++ {
		value := s.MinValue() + i
		for _, cell := range c.cells {
			if !s.IsImpossible(cell, value) {
				positions[i] = append(positions[i], cell)
			}
		}
		switch len(positions[i]) {
		case 0:
			return Violation()
		case 1:
			s.MustBe(positions[i][0], value)
		}
	}

	// Hidden pairs and triples: k values that fit only within the same k
	// cells claim those cells outright.
	for k := 2; k <= 3 && k < rangeLen; k++ {
		c.claimGroups(s, positions, k)
	}
	return Keep()
}

// claimGroups finds every k-combination of values whose possible cells fit
// in a common k-cell set and clears other candidates from that set.
func (c *UniquenessConstraint) claimGroups(s State, positions [][]int, k int) {
	narrow := []int{}
	for i, cells := range positions {
		if len(cells) <= k {
			narrow = append(narrow, i)
		}
	}
	if len(narrow) < k {
		return
	}

	combo := make([]int, k)
	var visit func(start, depth int)
	visit = func(start, depth int) {
		if depth == k {
			union := []int{}
			for _, i := range combo {
				for _, cell := range positions[i] {
					if !containsCell(union, cell) {
						union = append(union, cell)
					}
				}
			}
			if len(union) != k {
				return // len < k already surfaced as a single/violation
			}
			inGroup := make(map[int]bool, k)
			for _, i := range combo {
				inGroup[s.MinValue()+i] = true
			}
			for _, cell := range union {
				s.MarkImpossibleIf(cell, func(value int) bool {
					return !inGroup[value]
				})
			}
			return
		}
		for j := start; j < len(narrow); j++ {
			combo[depth] = narrow[j]
			visit(j+1, depth+1)
		}
	}
	visit(0, 0)
}

// String returns a human-readable representation.
func (c *UniquenessConstraint) String() string {
	return fmt.Sprintf("Uniqueness(%v)", c.cells)
}
