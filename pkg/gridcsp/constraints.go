// Package gridcsp: the small set of concrete constraints the engine ships
// with. They double as reference implementations of the Constraint protocol;
// the full catalogue of puzzle rules lives outside this package and plugs in
// through the same interface.
package gridcsp

import "fmt"

// GivenConstraint pins one cell to one clue value. It removes itself after
// its single deduction.
type GivenConstraint struct {
	cell  int
	value int
}

// NewGiven creates a clue constraint. The value's range is validated when
// the constraint is attached to a puzzle (see Puzzle.AddGiven), since only
// the puzzle knows the range.
func NewGiven(cell, value int) (*GivenConstraint, error) {
	if cell < 0 {
		return nil, fmt.Errorf("given: negative cell %d", cell)
	}
	return &GivenConstraint{cell: cell, value: value}, nil
}

// Cell returns the clued cell.
func (c *GivenConstraint) Cell() int { return c.cell }

// GivenValue returns the clue value.
func (c *GivenConstraint) GivenValue() int { return c.value }

// AffectedCells implements Constraint.
func (c *GivenConstraint) AffectedCells() []int { return []int{c.cell} }

// Process implements Constraint.
func (c *GivenConstraint) Process(s State) Result {
	if s.IsImpossible(c.cell, c.value) {
		return Violation()
	}
	s.MustBe(c.cell, c.value)
	return Remove()
}

// String returns a human-readable representation.
func (c *GivenConstraint) String() string {
	return fmt.Sprintf("Given(cell %d = %d)", c.cell, c.value)
}

// SumConstraint requires the values of a region to add up to a target.
// Pruning is by bounds: a candidate survives only if the remaining cells can
// still stretch the total to the target in both directions.
type SumConstraint struct {
	target int
	cells  []int
}

// NewSum creates a sum constraint over the given cells.
func NewSum(target int, cells []int) (*SumConstraint, error) {
	if err := validateCells("sum", cells); err != nil {
		return nil, err
	}
	return &SumConstraint{target: target, cells: copyCells(cells)}, nil
}

// Target returns the required total.
func (c *SumConstraint) Target() int { return c.target }

// AffectedCells implements Constraint.
func (c *SumConstraint) AffectedCells() []int { return c.cells }

// CanReevaluate implements Reevaluable: the bounds reasoning profits from
// narrowings other constraints make, not just from placements.
func (c *SumConstraint) CanReevaluate() bool { return true }

// Process implements Constraint.
func (c *SumConstraint) Process(s State) Result {
	minSum, maxSum := 0, 0
	assignedSum := 0
	allAssigned := true
	for _, cell := range c.cells {
		minSum += s.MinPossible(cell)
		maxSum += s.MaxPossible(cell)
		if value, ok := s.Value(cell); ok {
			assignedSum += value
		} else {
			allAssigned = false
		}
	}
	if minSum > c.target || maxSum < c.target {
		return Violation()
	}
	if allAssigned {
		if assignedSum != c.target {
			return Violation()
		}
		return Remove()
	}

	for _, cell := range c.cells {
		if _, ok := s.Value(cell); ok {
			continue
		}
		othersMin := minSum - s.MinPossible(cell)
		othersMax := maxSum - s.MaxPossible(cell)
		s.MarkImpossibleIf(cell, func(value int) bool {
			return value+othersMin > c.target || value+othersMax < c.target
		})
	}
	return Keep()
}

// String returns a human-readable representation.
func (c *SumConstraint) String() string {
	return fmt.Sprintf("Sum(%d over %v)", c.target, c.cells)
}

// ProductConstraint requires the values of a region to multiply to a target.
// Bounds pruning assumes a positive value range; with values below 1 only
// the fully assigned check applies.
type ProductConstraint struct {
	target int
	cells  []int
}

// NewProduct creates a product constraint. The target must be positive.
func NewProduct(target int, cells []int) (*ProductConstraint, error) {
	if err := validateCells("product", cells); err != nil {
		return nil, err
	}
	if target < 1 {
		return nil, fmt.Errorf("product: target must be positive, got %d", target)
	}
	return &ProductConstraint{target: target, cells: copyCells(cells)}, nil
}

// Target returns the required product.
func (c *ProductConstraint) Target() int { return c.target }

// AffectedCells implements Constraint.
func (c *ProductConstraint) AffectedCells() []int { return c.cells }

// CanReevaluate implements Reevaluable.
func (c *ProductConstraint) CanReevaluate() bool { return true }

// Process implements Constraint.
func (c *ProductConstraint) Process(s State) Result {
	assignedProduct := 1
	allAssigned := true
	for _, cell := range c.cells {
		if value, ok := s.Value(cell); ok {
			assignedProduct *= value
		} else {
			allAssigned = false
		}
	}
	if allAssigned {
		if assignedProduct != c.target {
			return Violation()
		}
		return Remove()
	}
	if s.MinValue() < 1 {
		return Keep() // bounds reasoning needs a positive range
	}

	minProd, maxProd := 1, 1
	for _, cell := range c.cells {
		minProd *= s.MinPossible(cell)
		maxProd *= s.MaxPossible(cell)
	}
	if minProd > c.target || maxProd < c.target {
		return Violation()
	}

	for _, cell := range c.cells {
		if _, ok := s.Value(cell); ok {
			continue
		}
		othersMin, othersMax := 1, 1
		for _, other := range c.cells {
			if other == cell {
				continue
			}
			othersMin *= s.MinPossible(other)
			othersMax *= s.MaxPossible(other)
		}
		s.MarkImpossibleIf(cell, func(value int) bool {
			if value < 1 || c.target%value != 0 {
				return true
			}
			return value*othersMin > c.target || value*othersMax < c.target
		})
	}
	return Keep()
}

// String returns a human-readable representation.
func (c *ProductConstraint) String() string {
	return fmt.Sprintf("Product(%d over %v)", c.target, c.cells)
}

// EqualSumsConstraint requires several regions to have equal sums without
// fixing the common total in advance. It waits until one region is fully
// assigned, then replaces itself with a concrete SumConstraint for each of
// the remaining regions. The engine runs those successors once against the
// current assignment immediately.
type EqualSumsConstraint struct {
	regions  [][]int
	affected []int
}

// NewEqualSums creates an equal-sums constraint over two or more regions.
func NewEqualSums(regions ...[]int) (*EqualSumsConstraint, error) {
	if len(regions) < 2 {
		return nil, fmt.Errorf("equal sums: need at least 2 regions, got %d", len(regions))
	}
	copied := make([][]int, len(regions))
	var affected []int
	for i, region := range regions {
		if err := validateCells(fmt.Sprintf("equal sums region %d", i), region); err != nil {
			return nil, err
		}
		copied[i] = copyCells(region)
		affected = append(affected, copied[i]...)
	}
	return &EqualSumsConstraint{regions: copied, affected: affected}, nil
}

// AffectedCells implements Constraint.
func (c *EqualSumsConstraint) AffectedCells() []int { return c.affected }

// Process implements Constraint.
func (c *EqualSumsConstraint) Process(s State) Result {
	known := -1
	target := 0
	for i, region := range c.regions {
		sum := 0
		complete := true
		for _, cell := range region {
			value, ok := s.Value(cell)
			if !ok {
				complete = false
				break
			}
			sum += value
		}
		if complete {
			known, target = i, sum
			break
		}
	}
	if known < 0 {
		return Keep()
	}

	successors := make([]Constraint, 0, len(c.regions)-1)
	for i, region := range c.regions {
		if i == known {
			continue
		}
		sum, err := NewSum(target, region)
		if err != nil {
			// Regions were validated at construction; this cannot happen.
			return Violation()
		}
		successors = append(successors, sum)
	}
	return Replace(successors...)
}

// String returns a human-readable representation.
func (c *EqualSumsConstraint) String() string {
	return fmt.Sprintf("EqualSums(%d regions)", len(c.regions))
}

// containsCell reports whether the region includes the cell.
func containsCell(cells []int, cell int) bool {
	for _, c := range cells {
		if c == cell {
			return true
		}
	}
	return false
}
