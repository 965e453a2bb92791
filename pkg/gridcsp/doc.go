// Package gridcsp is a constraint-satisfaction engine for grid-based
// placement puzzles (Sudoku and its variants, path/loop puzzles, shading
// puzzles). Every cell of a puzzle holds one value from a fixed inclusive
// range; pluggable constraints prune impossible values until backtracking
// search finds a complete consistent assignment.
//
// # Architecture Overview
//
// The engine separates the immutable problem definition from per-branch
// solving state:
//
//	Puzzle (immutable once solving starts):
//	  - Cell count and inclusive value range
//	  - Ordered list of constraints
//
//	Solver state (one instance per search-tree node):
//	  - The partial assignment, shared down a branch and unwound on return
//	  - Per-cell "taken" bitsets, cloned for each candidate value so that
//	    sibling branches never share pruning state
//	  - Bookkeeping: the most recent placement and which constraint
//	    narrowed which cell during the current propagation pass
//
// Constraints communicate exclusively through the State interface: they read
// current cell values and candidates, and record deductions with
// MarkImpossible and MustBe. After every tentative placement the engine runs
// the relevant constraints to a fixed point before branching further.
//
// # Constraint protocol
//
// A constraint's Process call returns one of four outcomes:
//
//	Keep()        the constraint stays active
//	Violation()   the current branch is inconsistent and is abandoned
//	Remove()      the constraint is permanently satisfied and drops out
//	Replace(cs)   the constraint swaps itself for zero or more successors
//
// Replacement successors are run once against the full current assignment
// before the pass converges. A successor must not itself return another
// replacement during that forced run; doing so is a programming error and
// panics with *ContractError.
//
// Optional capabilities are discovered by type assertion: Reevaluable
// constraints rerun whenever another constraint narrows one of their cells,
// and CombinationCounter supplies the search heuristic's tie-break hint.
//
// # Solving
//
// Puzzle.Solutions returns a lazy iter.Seq of complete assignments. No
// solution is computed before the previous one is consumed, and breaking out
// of the range loop abandons the remaining search tree with no extra work.
// The search itself is single-threaded; independent puzzles may be solved
// concurrently, sharing only the process-wide combinatorics caches.
package gridcsp
