// Package gridcsp: the disjunction combinator.
package gridcsp

import "fmt"

// OrConstraint holds when at least one of its alternatives holds.
//
// Each alternative runs against an isolated wrapper state that shadows all
// writes into a private taken matrix while reads pass through to the real
// state, so an alternative's deductions never leak unless every live
// alternative agrees on them. A value is marked impossible in the real state
// only when every still-live alternative independently ruled it out.
//
// An alternative that reports a violation is dropped for the rest of the
// call and re-dropped on every later call: narrowing is monotone within a
// branch, so a violated alternative can never come back, and rechecking it
// is cheaper than mutating the disjunction mid-pass. In particular Process
// never returns Replace, so a disjunction may itself safely appear among
// replacement successors.
//
// Alternatives may not return a replacement from inside a disjunction; that
// is an explicit, permanent limitation of the protocol and panics with
// *ContractError.
type OrConstraint struct {
	alternatives []Constraint
	affected     []int // union of the alternatives' cells; nil means all
	affectAll    bool
}

// NewOr creates a disjunction over two or more alternatives.
func NewOr(alternatives ...Constraint) (*OrConstraint, error) {
	if len(alternatives) < 2 {
		return nil, fmt.Errorf("or: need at least 2 alternatives, got %d", len(alternatives))
	}
	for i, alt := range alternatives {
		if alt == nil {
			return nil, fmt.Errorf("or: alternative %d is nil", i)
		}
	}
	copied := make([]Constraint, len(alternatives))
	copy(copied, alternatives)
	return newOr(copied), nil
}

// newOr builds an OrConstraint and its affected-cell union from an owned
// alternatives slice.
func newOr(alternatives []Constraint) *OrConstraint {
	c := &OrConstraint{alternatives: alternatives}
	for _, alt := range alternatives {
		cells := alt.AffectedCells()
		if cells == nil {
			c.affectAll = true
			c.affected = nil
			return c
		}
		for _, cell := range cells {
			if !containsCell(c.affected, cell) {
				c.affected = append(c.affected, cell)
			}
		}
	}
	return c
}

// Alternatives returns the live alternatives. The result must not be modified.
func (c *OrConstraint) Alternatives() []Constraint { return c.alternatives }

// AffectedCells implements Constraint.
func (c *OrConstraint) AffectedCells() []int {
	if c.affectAll {
		return nil
	}
	return c.affected
}

// CanReevaluate implements Reevaluable: any narrowing can kill an
// alternative or complete an intersection.
func (c *OrConstraint) CanReevaluate() bool { return true }

// Process implements Constraint.
func (c *OrConstraint) Process(s State) Result {
	live := make([]Constraint, 0, len(c.alternatives))
	shadows := make([]*orState, 0, len(c.alternatives))

	for _, alt := range c.alternatives {
		shadow := newOrState(s)
		result := alt.Process(shadow)
		switch result.kind {
		case resultReplace:
			panic(&ContractError{
				Constraint: alt,
				Detail:     "constraint returned a replacement inside a disjunction",
			})
		case resultViolation:
			continue // dropped for good
		case resultRemove:
			// One alternative is permanently satisfied, so the whole
			// disjunction is.
			return Remove()
		}
		if shadow.exhausted {
			continue // the alternative stripped some cell bare: infeasible
		}
		live = append(live, alt)
		shadows = append(shadows, shadow)
	}

	if len(live) == 0 {
		return Violation()
	}

	// Promote only the deductions every live alternative made.
	c.forEachCell(s, func(cell int) {
		if _, ok := s.Value(cell); ok {
			return
		}
		for value := s.MinValue(); value <= s.MaxValue(); value++ {
			if s.IsImpossible(cell, value) {
				continue
			}
			agreed := true
			for _, shadow := range shadows {
				if !shadow.marked(cell, value) {
					agreed = false
					break
				}
			}
			if agreed {
				s.MarkImpossible(cell, value)
			}
		}
	})

	// Never shrink via Replace: the promotions above can kill a further
	// alternative during the successor's forced run, and a forced run must
	// not produce another replacement. Dead alternatives fail again on
	// every later call, which keeps them permanently inert.
	return Keep()
}

// forEachCell visits the cells the disjunction can influence.
func (c *OrConstraint) forEachCell(s State, f func(cell int)) {
	if c.affectAll {
		for cell := 0; cell < s.GridSize(); cell++ {
			f(cell)
		}
		return
	}
	for _, cell := range c.affected {
		f(cell)
	}
}

// String returns a human-readable representation.
func (c *OrConstraint) String() string {
	return fmt.Sprintf("Or(%d alternatives)", len(c.alternatives))
}

// orState isolates one alternative's writes. Reads are delegated to the real
// state untouched; MarkImpossible and MustBe land in a private matrix. A
// conflicting MustBe or a cell stripped of its last candidate marks the
// whole alternative as infeasible instead of failing the branch.
type orState struct {
	base      State
	marks     map[int]map[int]bool
	exhausted bool
}

var _ State = (*orState)(nil)

func newOrState(base State) *orState {
	return &orState{base: base, marks: make(map[int]map[int]bool)}
}

// marked reports whether the alternative privately ruled out (cell, value).
func (w *orState) marked(cell, value int) bool {
	return w.marks[cell][value]
}

// MarkImpossible implements State, writing to the private matrix only.
func (w *orState) MarkImpossible(cell, value int) {
	if _, ok := w.base.Value(cell); ok {
		return
	}
	if w.base.IsImpossible(cell, value) {
		return
	}
	row := w.marks[cell]
	if row == nil {
		row = make(map[int]bool)
		w.marks[cell] = row
	}
	if row[value] {
		return
	}
	row[value] = true

	// Did the alternative just rule out the cell's last candidate?
	for v := w.base.MinValue(); v <= w.base.MaxValue(); v++ {
		if !w.base.IsImpossible(cell, v) && !row[v] {
			return
		}
	}
	w.exhausted = true
}

// MarkImpossibleIf implements State.
func (w *orState) MarkImpossibleIf(cell int, pred func(value int) bool) {
	if _, ok := w.base.Value(cell); ok {
		return
	}
	for value := w.base.MinValue(); value <= w.base.MaxValue(); value++ {
		if !w.base.IsImpossible(cell, value) && pred(value) {
			w.MarkImpossible(cell, value)
		}
	}
}

// MustBe implements State. Inside a disjunction a conflicting force means
// the alternative is infeasible, not that the engine is broken.
func (w *orState) MustBe(cell, value int) {
	if assigned, ok := w.base.Value(cell); ok {
		if assigned != value {
			w.exhausted = true
		}
		return
	}
	if value < w.base.MinValue() || value > w.base.MaxValue() {
		w.exhausted = true
		return
	}
	w.MarkImpossibleIf(cell, func(v int) bool { return v != value })
}

// Value implements State by delegation.
func (w *orState) Value(cell int) (int, bool) { return w.base.Value(cell) }

// IsImpossible implements State by delegation: reads see the real state,
// not the private marks.
func (w *orState) IsImpossible(cell, value int) bool { return w.base.IsImpossible(cell, value) }

// MinPossible implements State by delegation.
func (w *orState) MinPossible(cell int) int { return w.base.MinPossible(cell) }

// MaxPossible implements State by delegation.
func (w *orState) MaxPossible(cell int) int { return w.base.MaxPossible(cell) }

// AllSame implements State by delegation.
func (w *orState) AllSame(cell int, proj func(value int) int) (int, bool) {
	return w.base.AllSame(cell, proj)
}

// LastPlacedCell implements State by delegation.
func (w *orState) LastPlacedCell() int { return w.base.LastPlacedCell() }

// LastPlacedValue implements State by delegation.
func (w *orState) LastPlacedValue() int { return w.base.LastPlacedValue() }

// GridSize implements State by delegation.
func (w *orState) GridSize() int { return w.base.GridSize() }

// MinValue implements State by delegation.
func (w *orState) MinValue() int { return w.base.MinValue() }

// MaxValue implements State by delegation.
func (w *orState) MaxValue() int { return w.base.MaxValue() }
