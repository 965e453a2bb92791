// Package gridcsp: the Puzzle type, the immutable problem definition that
// the search driver and all constraints operate against.
package gridcsp

import (
	"fmt"
	"sync"
)

// Puzzle describes a grid puzzle declaratively: a number of cells, an
// inclusive value range, and an ordered list of constraints.
//
// Puzzles are constructed incrementally: create one with NewPuzzle, then
// attach constraints with AddConstraint (or the AddGiven convenience) until
// Solutions is invoked. Solving never mutates the puzzle, so one Puzzle may
// back several concurrent solves.
//
// Thread safety: construction must be sequential; once built, a Puzzle is
// safe for concurrent reads.
type Puzzle struct {
	size     int
	minValue int
	maxValue int

	constraints []Constraint

	// mu protects the constraint list during construction.
	mu sync.RWMutex
}

// NewPuzzle creates a puzzle with the given cell count and inclusive value
// range. Returns an error for a non-positive size or an empty range.
func NewPuzzle(size, minValue, maxValue int) (*Puzzle, error) {
	if size <= 0 {
		return nil, fmt.Errorf("puzzle: size must be positive, got %d", size)
	}
	if maxValue < minValue {
		return nil, fmt.Errorf("puzzle: empty value range [%d, %d]", minValue, maxValue)
	}
	return &Puzzle{
		size:     size,
		minValue: minValue,
		maxValue: maxValue,
	}, nil
}

// Size returns the number of cells in the grid.
func (p *Puzzle) Size() int { return p.size }

// MinValue returns the smallest value a cell may hold.
func (p *Puzzle) MinValue() int { return p.minValue }

// MaxValue returns the largest value a cell may hold.
func (p *Puzzle) MaxValue() int { return p.maxValue }

// RangeLen returns the number of distinct values a cell may hold.
func (p *Puzzle) RangeLen() int { return p.maxValue - p.minValue + 1 }

// AddConstraint attaches constraints to the puzzle. Each constraint's
// affected-cell set is validated against the grid size immediately;
// malformed constraints are rejected here rather than at solve time.
func (p *Puzzle) AddConstraint(constraints ...Constraint) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, c := range constraints {
		if c == nil {
			return fmt.Errorf("puzzle: nil constraint")
		}
		for i, cell := range c.AffectedCells() {
			if cell < 0 || cell >= p.size {
				return fmt.Errorf("puzzle: constraint %T cell[%d] = %d out of range [0, %d)",
					c, i, cell, p.size)
			}
		}
	}
	p.constraints = append(p.constraints, constraints...)
	return nil
}

// AddGiven attaches a clue: the cell must hold exactly the given value.
// The value is validated against the puzzle's range immediately.
func (p *Puzzle) AddGiven(cell, value int) error {
	if value < p.minValue || value > p.maxValue {
		return fmt.Errorf("puzzle: given value %d out of range [%d, %d]",
			value, p.minValue, p.maxValue)
	}
	given, err := NewGiven(cell, value)
	if err != nil {
		return err
	}
	return p.AddConstraint(given)
}

// Constraints returns the attached constraints in order.
// The returned slice must not be modified.
func (p *Puzzle) Constraints() []Constraint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.constraints
}

// String returns a human-readable summary of the puzzle.
func (p *Puzzle) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fmt.Sprintf("Puzzle{cells: %d, range: [%d..%d], constraints: %d}",
		p.size, p.minValue, p.maxValue, len(p.constraints))
}
