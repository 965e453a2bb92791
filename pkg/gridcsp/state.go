// Package gridcsp: the solver state constraints read and mutate.
package gridcsp

import "fmt"

// State is the façade through which constraints observe and narrow the
// current search branch. The engine passes a concrete state to every
// Process call; the Or-combinator interposes a write-isolating wrapper with
// the same interface, which is why constraints code against the interface
// rather than a struct.
//
// All mutations are monotone: a value marked impossible stays impossible for
// the lifetime of the branch. The only way pruning is undone is by
// abandoning the branch and resuming from the parent's state.
type State interface {
	// Value returns the value currently assigned to the cell, with ok=false
	// if the cell is unassigned.
	Value(cell int) (value int, ok bool)

	// MarkImpossible records that the cell cannot hold the value. It is a
	// no-op if the cell is already assigned or the value is out of range.
	MarkImpossible(cell, value int)

	// MarkImpossibleIf records every candidate of the cell for which the
	// predicate returns true as impossible. No-op on assigned cells.
	MarkImpossibleIf(cell int, pred func(value int) bool)

	// MustBe forces the cell to the value by marking every other candidate
	// impossible. If the cell is already assigned to a different value this
	// is a contract violation: the engine raises a hard failure, because it
	// indicates a bug in a constraint, not a property of the puzzle.
	MustBe(cell, value int)

	// IsImpossible reports whether the cell can no longer hold the value:
	// out of range, contradicted by the current assignment, or previously
	// marked impossible.
	IsImpossible(cell, value int) bool

	// MinPossible returns the smallest candidate not yet ruled out, or the
	// assigned value. Returns MaxValue()+1 if nothing remains.
	MinPossible(cell int) int

	// MaxPossible returns the largest candidate not yet ruled out, or the
	// assigned value. Returns MinValue()-1 if nothing remains.
	MaxPossible(cell int) int

	// AllSame reports whether every remaining candidate of the cell maps to
	// the same result under proj, and if so, that common result. Used for
	// parity-style reasoning where the exact value is open but a property
	// of it is already decided.
	AllSame(cell int, proj func(value int) int) (common int, ok bool)

	// LastPlacedCell returns the cell whose fresh placement triggered the
	// current propagation pass, or -1 when the pass reexamines the whole
	// grid (initial pass, reevaluation, forced replacement runs).
	// Constraints must fall back to scanning all their cells in that case.
	LastPlacedCell() int

	// LastPlacedValue returns the value placed in LastPlacedCell.
	// Meaningful only when LastPlacedCell() >= 0.
	LastPlacedValue() int

	// GridSize returns the number of cells in the puzzle.
	GridSize() int

	// MinValue returns the smallest value a cell may hold.
	MinValue() int

	// MaxValue returns the largest value a cell may hold.
	MaxValue() int
}

// solverState is the engine's concrete State. One instance exists per search
// tree node: children clone the taken bitsets and share the assignment
// array, which the driver sets and unsets around each recursion.
type solverState struct {
	puz *Puzzle

	// grid holds the partial assignment: 0 means unassigned, otherwise
	// 1 + (value - MinValue). The offset encoding keeps the zero value
	// meaningful for any range, including negative ones.
	grid []int

	taken takenSet

	lastCell  int // -1 when no single fresh placement triggered this pass
	lastValue int

	// current is the constraint whose Process call is running, used to
	// attribute narrowings for the reevaluation bookkeeping.
	current Constraint

	// changedBy records, per cell, the constraint that most recently
	// narrowed it during the current propagation round. changedCells lists
	// the narrowed cells without duplicates.
	changedBy    []Constraint
	changedCells []int

	// exhausted flips when some cell loses its last candidate; the engine
	// treats the branch as violated regardless of the constraint's Result.
	exhausted bool

	// contract holds the first contract violation observed, raised by the
	// engine as a panic after the offending Process call returns.
	contract *ContractError

	// diag, when non-nil, observes the first elimination that contradicts
	// an intended solution. Shared by every state of the solve so the
	// report fires at most once. Observer only.
	diag *diagnostics
}

// diagnostics implements the authoring aid of SolveOptions: given an
// intended solution, report which constraint first rules it out.
type diagnostics struct {
	intended []int
	hook     func(c Constraint, cell, value int)
	reported bool
}

// newSolverState creates the root state for a solve.
func newSolverState(p *Puzzle) *solverState {
	return &solverState{
		puz:       p,
		grid:      make([]int, p.size),
		taken:     newTakenSet(p.size, p.RangeLen()),
		lastCell:  -1,
		changedBy: make([]Constraint, p.size),
	}
}

// child creates the state for trying one candidate value: cloned takens,
// shared assignment array, fresh change tracking.
func (s *solverState) child(cell, value int) *solverState {
	return &solverState{
		puz:       s.puz,
		grid:      s.grid,
		taken:     s.taken.clone(),
		lastCell:  cell,
		lastValue: value,
		changedBy: make([]Constraint, s.puz.size),
		diag:      s.diag,
	}
}

// offset translates a value into its 0-based range offset.
func (s *solverState) offset(value int) int { return value - s.puz.minValue }

// Value implements State.
func (s *solverState) Value(cell int) (int, bool) {
	if enc := s.grid[cell]; enc != 0 {
		return enc - 1 + s.puz.minValue, true
	}
	return 0, false
}

// MarkImpossible implements State.
func (s *solverState) MarkImpossible(cell, value int) {
	if s.grid[cell] != 0 {
		return // assigned cells are not retroactively reexamined
	}
	if value < s.puz.minValue || value > s.puz.maxValue {
		return
	}
	if !s.taken.take(cell, s.offset(value)) {
		return // already taken, not a change
	}

	if s.changedBy[cell] == nil {
		s.changedCells = append(s.changedCells, cell)
	}
	s.changedBy[cell] = s.current

	if s.diag != nil && !s.diag.reported && s.diag.intended[cell] == value {
		s.diag.reported = true
		if s.diag.hook != nil {
			s.diag.hook(s.current, cell, value)
		}
	}

	if s.taken.remaining(cell) == 0 {
		s.exhausted = true
	}
}

// MarkImpossibleIf implements State.
func (s *solverState) MarkImpossibleIf(cell int, pred func(value int) bool) {
	if s.grid[cell] != 0 {
		return
	}
	// Collect first: marking during iteration would mutate the set being
	// iterated.
	var doomed []int
	s.taken.iterateOpen(cell, func(offset int) {
		if value := offset + s.puz.minValue; pred(value) {
			doomed = append(doomed, value)
		}
	})
	for _, value := range doomed {
		s.MarkImpossible(cell, value)
	}
}

// MustBe implements State.
func (s *solverState) MustBe(cell, value int) {
	if enc := s.grid[cell]; enc != 0 {
		if assigned := enc - 1 + s.puz.minValue; assigned != value {
			s.failContract("cell %d is assigned %d but was forced to %d",
				cell, assigned, value)
		}
		return
	}
	if value < s.puz.minValue || value > s.puz.maxValue {
		s.failContract("cell %d forced to out-of-range value %d", cell, value)
		return
	}
	s.MarkImpossibleIf(cell, func(v int) bool { return v != value })
}

// IsImpossible implements State.
func (s *solverState) IsImpossible(cell, value int) bool {
	if value < s.puz.minValue || value > s.puz.maxValue {
		return true
	}
	if enc := s.grid[cell]; enc != 0 {
		return enc-1+s.puz.minValue != value
	}
	return s.taken.isTaken(cell, s.offset(value))
}

// MinPossible implements State.
func (s *solverState) MinPossible(cell int) int {
	if enc := s.grid[cell]; enc != 0 {
		return enc - 1 + s.puz.minValue
	}
	if offset := s.taken.minOpen(cell); offset >= 0 {
		return offset + s.puz.minValue
	}
	return s.puz.maxValue + 1
}

// MaxPossible implements State.
func (s *solverState) MaxPossible(cell int) int {
	if enc := s.grid[cell]; enc != 0 {
		return enc - 1 + s.puz.minValue
	}
	if offset := s.taken.maxOpen(cell); offset >= 0 {
		return offset + s.puz.minValue
	}
	return s.puz.minValue - 1
}

// AllSame implements State.
func (s *solverState) AllSame(cell int, proj func(value int) int) (int, bool) {
	if enc := s.grid[cell]; enc != 0 {
		return proj(enc - 1 + s.puz.minValue), true
	}
	common := 0
	first := true
	same := true
	s.taken.iterateOpen(cell, func(offset int) {
		projected := proj(offset + s.puz.minValue)
		if first {
			common = projected
			first = false
		} else if projected != common {
			same = false
		}
	})
	if first || !same {
		return 0, false
	}
	return common, true
}

// LastPlacedCell implements State.
func (s *solverState) LastPlacedCell() int { return s.lastCell }

// LastPlacedValue implements State.
func (s *solverState) LastPlacedValue() int { return s.lastValue }

// GridSize implements State.
func (s *solverState) GridSize() int { return s.puz.size }

// MinValue implements State.
func (s *solverState) MinValue() int { return s.puz.minValue }

// MaxValue implements State.
func (s *solverState) MaxValue() int { return s.puz.maxValue }

// failContract records the first contract violation; the engine panics with
// it as soon as the offending Process call returns.
func (s *solverState) failContract(format string, args ...interface{}) {
	if s.contract == nil {
		s.contract = &ContractError{
			Constraint: s.current,
			Detail:     fmt.Sprintf(format, args...),
		}
	}
}

// beginRound resets the per-round change tracking.
func (s *solverState) beginRound() {
	for _, cell := range s.changedCells {
		s.changedBy[cell] = nil
	}
	s.changedCells = s.changedCells[:0]
}

// candidates returns the open values for an unassigned cell, ascending.
func (s *solverState) candidates(cell int) []int {
	values := make([]int, 0, s.taken.remaining(cell))
	s.taken.iterateOpen(cell, func(offset int) {
		values = append(values, offset+s.puz.minValue)
	})
	return values
}

// solution extracts the complete assignment. Must only be called when every
// cell is assigned.
func (s *solverState) solution() Solution {
	values := make(Solution, len(s.grid))
	for cell, enc := range s.grid {
		values[cell] = enc - 1 + s.puz.minValue
	}
	return values
}
