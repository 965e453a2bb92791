// Package gridcsp: the constraint protocol shared by the engine and every
// rule implementation, core or external.
package gridcsp

import "fmt"

// Constraint is the contract every puzzle rule implements.
//
// Constraints are immutable once constructed. A rule that wants to change its
// own behavior mid-search returns Replace with fresh instances rather than
// mutating itself; the engine installs the successors in the active list of
// the current branch only, so sibling branches are unaffected.
//
// Different constraint types provide different pruning strength, from simple
// clue rules (GivenConstraint) through region rules (UniquenessConstraint,
// SumConstraint) up to extensional tuple enumeration
// (CombinationsConstraint) and disjunction (OrConstraint).
type Constraint interface {
	// AffectedCells returns the cells this constraint governs, or nil if it
	// may touch every cell. The engine uses this set to decide which
	// constraints to rerun after a placement or a narrowing.
	AffectedCells() []int

	// Process examines the state, records any deductions through
	// MarkImpossible/MustBe, and reports the constraint's own fate via the
	// returned Result.
	Process(s State) Result
}

// Reevaluable is an optional capability. A constraint returning true is
// rerun not only after a fresh placement in one of its cells but also
// whenever some other constraint narrows one of its cells without a
// placement, because its conclusions depend on the candidate sets rather
// than on exact placed values.
type Reevaluable interface {
	CanReevaluate() bool
}

// CombinationCounter is an optional capability supplying an approximate
// count of value combinations the constraint still admits. The search
// driver uses it purely as a tie-break when several cells have equally few
// candidates; it has no correctness role.
type CombinationCounter interface {
	NumCombinations() int
}

// resultKind enumerates the four outcomes a Process call can report.
type resultKind int

const (
	resultKeep resultKind = iota
	resultViolation
	resultRemove
	resultReplace
)

// Result is the outcome of a single Process call.
// The zero value is equivalent to Keep().
type Result struct {
	kind         resultKind
	replacements []Constraint
}

// Keep reports that the constraint stays active. Deductions recorded through
// the state still count; Keep only says the constraint itself is unchanged.
func Keep() Result {
	return Result{kind: resultKeep}
}

// Violation reports that the current branch is inconsistent. The engine
// abandons the branch immediately; this is an expected search outcome, not
// an error.
func Violation() Result {
	return Result{kind: resultViolation}
}

// Remove reports that the constraint is permanently satisfied or vacuous and
// drops out of the active set for the rest of this branch.
func Remove() Result {
	return Result{kind: resultRemove}
}

// Replace swaps the constraint for zero or more successors. Each successor
// is run once against the full current assignment before the propagation
// pass converges; a successor returning another Replace during that forced
// run panics with *ContractError.
func Replace(successors ...Constraint) Result {
	return Result{kind: resultReplace, replacements: successors}
}

// canReevaluate reports the Reevaluable capability, defaulting to false.
func canReevaluate(c Constraint) bool {
	if r, ok := c.(Reevaluable); ok {
		return r.CanReevaluate()
	}
	return false
}

// affects reports whether the constraint governs the given cell.
// A nil affected-cell set means the constraint governs every cell.
func affects(c Constraint, cell int) bool {
	cells := c.AffectedCells()
	if cells == nil {
		return true
	}
	for _, affected := range cells {
		if affected == cell {
			return true
		}
	}
	return false
}

// ContractError reports a bug in a constraint implementation: forcing a cell
// to a value conflicting with its current assignment, or returning a
// replacement from a forced replacement run. It is raised by panic so that
// it can never be mistaken for the ordinary "no solutions" outcome.
type ContractError struct {
	Constraint Constraint
	Detail     string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Constraint != nil {
		return fmt.Sprintf("constraint contract violated by %T: %s", e.Constraint, e.Detail)
	}
	return fmt.Sprintf("constraint contract violated: %s", e.Detail)
}

// validateCells checks a constructor's region argument: it must be non-empty
// and free of negative indexes. Upper-bound checks happen when the
// constraint is attached to a puzzle, which knows the grid size.
func validateCells(kind string, cells []int) error {
	if len(cells) == 0 {
		return fmt.Errorf("%s: cells cannot be empty", kind)
	}
	for i, cell := range cells {
		if cell < 0 {
			return fmt.Errorf("%s: cells[%d] is negative (%d)", kind, i, cell)
		}
	}
	return nil
}

// copyCells makes the constructor's defensive copy of a region argument.
func copyCells(cells []int) []int {
	dup := make([]int, len(cells))
	copy(dup, cells)
	return dup
}
