// Package gridcsp: the backtracking search driver and the fixed-point
// propagation engine it leans on.
package gridcsp

import (
	"context"
	"fmt"
	"iter"
	"math"
	"math/rand"
)

// Solution is a complete assignment: one value per cell, in cell order.
type Solution []int

// SolveOptions tunes a solve without affecting correctness. The zero value
// (or a nil pointer) gives deterministic default behavior.
type SolveOptions struct {
	// CellPriority lists cells to prefer, in order, when the search
	// heuristics tie. Cells not listed rank after all listed ones.
	CellPriority []int

	// Rand, when non-nil, shuffles the order in which candidate values are
	// tried at each branch point. Useful for puzzle generation; solutions
	// found are the same set either way.
	Rand *rand.Rand

	// Intended, when non-nil, must have one value per cell; Solutions
	// panics on a length mismatch. The engine then reports, through
	// OnIntendedRuledOut, the constraint whose deduction first contradicts
	// it. A read-only authoring aid: it never changes solving behavior.
	Intended Solution

	// OnIntendedRuledOut receives the single report enabled by Intended.
	OnIntendedRuledOut func(c Constraint, cell, value int)
}

// Solutions returns the puzzle's complete assignments as a lazy sequence.
// No solution is computed before the previous one is consumed; breaking out
// of the range loop abandons the rest of the search immediately. Cancelling
// the context has the same effect at the next branch point.
//
// An inconsistent puzzle yields an empty sequence; that is a normal outcome,
// not an error. A buggy constraint implementation panics with
// *ContractError (see the Constraint documentation).
func (p *Puzzle) Solutions(ctx context.Context, opts *SolveOptions) iter.Seq[Solution] {
	if opts != nil && opts.Intended != nil && len(opts.Intended) != p.size {
		panic(fmt.Sprintf("gridcsp: intended solution has %d values, puzzle has %d cells",
			len(opts.Intended), p.size))
	}
	return func(yield func(Solution) bool) {
		st := newSolverState(p)
		if opts != nil && opts.Intended != nil {
			st.diag = &diagnostics{intended: opts.Intended, hook: opts.OnIntendedRuledOut}
		}

		active := append([]Constraint(nil), p.Constraints()...)

		// Initial pass: every constraint, no placement visible.
		active, ok := p.propagate(st, active)
		if !ok {
			return
		}

		rank := priorityRanks(opts)
		p.search(ctx, st, active, opts, rank, yield)
	}
}

// FirstSolution is a convenience for callers that only need one solution.
// ok is false when the puzzle has none.
func (p *Puzzle) FirstSolution(ctx context.Context, opts *SolveOptions) (Solution, bool) {
	for solution := range p.Solutions(ctx, opts) {
		return solution, true
	}
	return nil, false
}

// priorityRanks maps each prioritized cell to its position in the caller's
// priority list.
func priorityRanks(opts *SolveOptions) map[int]int {
	if opts == nil || len(opts.CellPriority) == 0 {
		return nil
	}
	rank := make(map[int]int, len(opts.CellPriority))
	for i, cell := range opts.CellPriority {
		if _, seen := rank[cell]; !seen {
			rank[cell] = i
		}
	}
	return rank
}

// search recursively tries candidate values for the most constrained cell,
// yielding every complete assignment it reaches. Returns false as soon as
// the consumer stops pulling, unwinding the whole tree without further work.
func (p *Puzzle) search(ctx context.Context, st *solverState, active []Constraint,
	opts *SolveOptions, rank map[int]int, yield func(Solution) bool) bool {

	if ctx != nil && ctx.Err() != nil {
		return false
	}

	cell := p.selectCell(st, active, rank)
	if cell < 0 {
		// Every cell assigned: the assignment survived propagation, so it
		// satisfies every constraint.
		return yield(st.solution())
	}

	values := st.candidates(cell)
	if opts != nil && opts.Rand != nil {
		opts.Rand.Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
	}

	for _, value := range values {
		// Each candidate gets its own cloned taken set; the assignment
		// array is shared down the branch and unwound below, so sibling
		// branches never observe each other's work.
		child := st.child(cell, value)
		st.grid[cell] = value - p.minValue + 1

		childActive, ok := p.propagate(child, active)
		keepGoing := true
		if ok {
			keepGoing = p.search(ctx, child, childActive, opts, rank, yield)
		}

		st.grid[cell] = 0
		if !keepGoing {
			return false
		}
	}
	return true
}

// selectCell picks the next cell to branch on: fewest remaining candidates,
// ties broken by the smallest combination-count hint of any constraint
// touching the cell, then by the caller's priority list, then by cell order.
// A cell with exactly one candidate short-circuits the scan. Returns -1 when
// every cell is assigned.
func (p *Puzzle) selectCell(st *solverState, active []Constraint, rank map[int]int) int {
	best := -1
	bestCount := 0
	bestHint := 0
	bestRank := 0

	for cell := 0; cell < p.size; cell++ {
		if st.grid[cell] != 0 {
			continue
		}
		count := st.taken.remaining(cell)
		if count <= 1 {
			// Forced (or dead, which the empty candidate loop prunes):
			// dispatch immediately without scanning further.
			return cell
		}

		if best >= 0 && count > bestCount {
			continue
		}
		hint := combinationHint(active, cell)
		r := cellRank(rank, cell)
		if best < 0 || count < bestCount ||
			(count == bestCount && (hint < bestHint ||
				(hint == bestHint && r < bestRank))) {
			best, bestCount, bestHint, bestRank = cell, count, hint, r
		}
	}
	return best
}

// combinationHint returns the smallest NumCombinations reported by any
// constraint touching the cell, or MaxInt when none reports one.
func combinationHint(active []Constraint, cell int) int {
	best := math.MaxInt
	for _, c := range active {
		counter, ok := c.(CombinationCounter)
		if !ok || !affects(c, cell) {
			continue
		}
		if n := counter.NumCombinations(); n < best {
			best = n
		}
	}
	return best
}

// cellRank returns the cell's position in the priority list, or past-the-end
// when the cell is not listed.
func cellRank(rank map[int]int, cell int) int {
	if rank == nil {
		return math.MaxInt
	}
	if r, ok := rank[cell]; ok {
		return r
	}
	return math.MaxInt
}

// propagate runs the active constraints to a fixed point on the given state.
//
// The first round runs the constraints touching the fresh placement (all of
// them when the pass was not triggered by a placement). Every later round
// reruns the reevaluable constraints whose cells some other constraint
// narrowed, with no placement visible. Replacement successors run once
// against the full assignment as soon as they are produced; a successor
// returning another replacement in that forced run panics with
// *ContractError.
//
// Returns the (possibly replaced) active list and ok=false when the branch
// is inconsistent. The input list is never mutated, so the caller can keep
// using it for sibling branches.
func (p *Puzzle) propagate(st *solverState, active []Constraint) ([]Constraint, bool) {
	cs := active
	placed := st.lastCell
	first := true

	for {
		var shouldRun func(Constraint) bool
		if first {
			if placed >= 0 {
				shouldRun = func(c Constraint) bool { return affects(c, placed) }
			} else {
				shouldRun = func(Constraint) bool { return true }
			}
		} else {
			// Rerun reevaluable constraints whose cells were narrowed by a
			// different constraint during the previous round.
			narrowed := make([]int, len(st.changedCells))
			copy(narrowed, st.changedCells)
			if len(narrowed) == 0 {
				return cs, true // fixed point
			}
			by := make(map[int]Constraint, len(narrowed))
			for _, cell := range narrowed {
				by[cell] = st.changedBy[cell]
			}
			shouldRun = func(c Constraint) bool {
				if !canReevaluate(c) {
					return false
				}
				for _, cell := range narrowed {
					if by[cell] != c && affects(c, cell) {
						return true
					}
				}
				return false
			}
		}

		st.beginRound()
		if !first {
			st.lastCell, st.lastValue = -1, 0
		}

		listChanged := false
		next := make([]Constraint, 0, len(cs))
		for _, c := range cs {
			if !shouldRun(c) {
				next = append(next, c)
				continue
			}
			kept, violated := p.runConstraint(st, c, false)
			if violated {
				return nil, false
			}
			if len(kept) != 1 || kept[0] != c {
				listChanged = true
			}
			next = append(next, kept...)
		}
		if listChanged {
			cs = next
		}
		first = false
	}
}

// runConstraint invokes one Process call and resolves its Result, including
// the forced single run of any replacement successors. Returns the
// constraint's surviving incarnations.
func (p *Puzzle) runConstraint(st *solverState, c Constraint, forced bool) ([]Constraint, bool) {
	st.current = c
	result := c.Process(st)
	st.current = nil

	if st.contract != nil {
		panic(st.contract)
	}
	if st.exhausted || result.kind == resultViolation {
		// A cell stripped of its last candidate violates the branch even if
		// the constraint itself reported something else.
		return nil, true
	}

	switch result.kind {
	case resultRemove:
		return nil, false

	case resultReplace:
		if forced {
			panic(&ContractError{
				Constraint: c,
				Detail:     "replacement constraint returned another replacement during its forced run",
			})
		}
		// Successors see the whole assignment, not the triggering placement.
		savedCell, savedValue := st.lastCell, st.lastValue
		st.lastCell, st.lastValue = -1, 0
		var survivors []Constraint
		for _, successor := range result.replacements {
			if successor == nil {
				panic(&ContractError{Constraint: c, Detail: "replacement list contains a nil constraint"})
			}
			kept, violated := p.runConstraint(st, successor, true)
			if violated {
				return nil, true
			}
			survivors = append(survivors, kept...)
		}
		st.lastCell, st.lastValue = savedCell, savedValue
		return survivors, false

	default:
		return []Constraint{c}, false
	}
}
