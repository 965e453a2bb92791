// Package gridcsp: memoized tuple generators for the combinatorial toolkit.
//
// Each generator is a pure function of (minValue, maxValue, size, clue) and
// enumerates recursively with reachability pruning. Results are memoized
// process-wide because the enumeration is combinatorially expensive and the
// same shapes recur across many puzzles and instances; the caches are safe
// under concurrent solves (see the memo package).
//
// The returned slices are shared cache entries and must not be modified;
// NewCombinations copies its tuple argument, so feeding a generator's output
// straight into a constraint is safe.
package gridcsp

import (
	"fmt"

	"github.com/solverkit/gridcsp/internal/memo"
)

// enumKey identifies one generator invocation. A generator without an extra
// clue leaves clue zero.
type enumKey struct {
	minValue, maxValue, size, clue int
}

var (
	permutationCache = memo.NewCache[enumKey, [][]int]()
	sumCache         = memo.NewCache[enumKey, [][]int]()
	sandwichCache    = memo.NewCache[enumKey, [][]int]()
	skyscraperCache  = memo.NewCache[enumKey, [][]int]()
)

// checkEnumArgs validates the shared generator parameters.
func checkEnumArgs(kind string, minValue, maxValue, size int) error {
	if maxValue < minValue {
		return fmt.Errorf("%s: empty value range [%d, %d]", kind, minValue, maxValue)
	}
	if size <= 0 {
		return fmt.Errorf("%s: size must be positive, got %d", kind, size)
	}
	if size > maxValue-minValue+1 {
		return fmt.Errorf("%s: size %d exceeds the %d distinct values available",
			kind, size, maxValue-minValue+1)
	}
	return nil
}

// Permutations enumerates every sequence of size distinct values drawn from
// [minValue, maxValue], in lexicographic order. With size equal to the range
// length these are the full permutations of the range.
func Permutations(minValue, maxValue, size int) ([][]int, error) {
	if err := checkEnumArgs("permutations", minValue, maxValue, size); err != nil {
		return nil, err
	}
	key := enumKey{minValue, maxValue, size, 0}
	return permutationCache.Get(key, func() [][]int {
		var out [][]int
		enumerateDistinct(minValue, maxValue, size, nil, func([]int) bool { return true },
			func(seq []int) { out = append(out, append([]int(nil), seq...)) })
		return out
	}), nil
}

// SumCombinations enumerates every sequence of size distinct values from
// [minValue, maxValue] summing to target: the admissible fillings of a
// killer cage, in every order.
func SumCombinations(minValue, maxValue, size, target int) ([][]int, error) {
	if err := checkEnumArgs("sum combinations", minValue, maxValue, size); err != nil {
		return nil, err
	}
	key := enumKey{minValue, maxValue, size, target}
	return sumCache.Get(key, func() [][]int {
		var out [][]int
		sum := 0
		prune := func(seq []int) bool {
			// Even ignoring distinctness, the remaining slots must be able
			// to reach the target.
			remaining := size - len(seq)
			return sum+remaining*minValue <= target && sum+remaining*maxValue >= target
		}
		enumerateDistinct(minValue, maxValue, size,
			func(value int, entering bool) {
				if entering {
					sum += value
				} else {
					sum -= value
				}
			},
			prune,
			func(seq []int) {
				if sum == target {
					out = append(out, append([]int(nil), seq...))
				}
			})
		return out
	}), nil
}

// SandwichSequences enumerates the permutations of the full range
// [minValue, maxValue] in which the values strictly between the range's
// minimum and maximum sum to clue. size must equal the range length, since
// sandwich clues apply to complete rows or columns.
func SandwichSequences(minValue, maxValue, size, clue int) ([][]int, error) {
	if err := checkEnumArgs("sandwich sequences", minValue, maxValue, size); err != nil {
		return nil, err
	}
	if size != maxValue-minValue+1 {
		return nil, fmt.Errorf("sandwich sequences: size %d must cover the full range [%d, %d]",
			size, minValue, maxValue)
	}
	if clue < 0 {
		return nil, fmt.Errorf("sandwich sequences: negative clue %d", clue)
	}
	key := enumKey{minValue, maxValue, size, clue}
	return sandwichCache.Get(key, func() [][]int {
		var out [][]int
		crustsSeen := 0
		between := 0
		prune := func(seq []int) bool {
			if crustsSeen == 1 && between > clue {
				return false // the filling already overflows
			}
			if crustsSeen == 2 && between != clue {
				return false
			}
			return true
		}
		enumerateDistinct(minValue, maxValue, size,
			func(value int, entering bool) {
				crust := value == minValue || value == maxValue
				if entering {
					if crustsSeen == 1 && !crust {
						between += value
					}
					if crust {
						crustsSeen++
					}
				} else {
					if crust {
						crustsSeen--
					}
					if crustsSeen == 1 && !crust {
						between -= value
					}
				}
			},
			prune,
			func(seq []int) {
				if between == clue {
					out = append(out, append([]int(nil), seq...))
				}
			})
		return out
	}), nil
}

// SkyscraperSequences enumerates the permutations of the full range
// [minValue, maxValue] in which exactly clue values are visible from the
// left, where a value is visible when it exceeds everything before it.
func SkyscraperSequences(minValue, maxValue, size, clue int) ([][]int, error) {
	if err := checkEnumArgs("skyscraper sequences", minValue, maxValue, size); err != nil {
		return nil, err
	}
	if size != maxValue-minValue+1 {
		return nil, fmt.Errorf("skyscraper sequences: size %d must cover the full range [%d, %d]",
			size, minValue, maxValue)
	}
	if clue < 1 || clue > size {
		return nil, fmt.Errorf("skyscraper sequences: clue %d out of range [1, %d]", clue, size)
	}
	key := enumKey{minValue, maxValue, size, clue}
	return skyscraperCache.Get(key, func() [][]int {
		var out [][]int
		enumerateDistinct(minValue, maxValue, size, nil,
			func(seq []int) bool {
				return visibleCount(seq) <= clue
			},
			func(seq []int) {
				if visibleCount(seq) == clue {
					out = append(out, append([]int(nil), seq...))
				}
			})
		return out
	}), nil
}

// visibleCount counts the left-to-right visible values of a partial sequence.
func visibleCount(seq []int) int {
	visible := 0
	highest := 0
	for i, value := range seq {
		if i == 0 || value > highest {
			visible++
			highest = value
		}
	}
	return visible
}

// enumerateDistinct drives the shared bounded recursion: it builds sequences
// of size distinct values from [minValue, maxValue], calling track (if
// non-nil) when a value enters or leaves the partial sequence, pruning any
// branch for which admissible returns false, and handing each complete
// sequence to emit.
func enumerateDistinct(minValue, maxValue, size int,
	track func(value int, entering bool),
	admissible func(partial []int) bool,
	emit func(seq []int)) {

	rangeLen := maxValue - minValue + 1
	used := make([]bool, rangeLen)
	seq := make([]int, 0, size)

	var recurse func()
	recurse = func() {
		if len(seq) == size {
			emit(seq)
			return
		}
		for i := 0; i < rangeLen; i++ {
			if used[i] {
				continue
			}
			value := minValue + i
			used[i] = true
			seq = append(seq, value)
			if track != nil {
				track(value, true)
			}
			if admissible == nil || admissible(seq) {
				recurse()
			}
			if track != nil {
				track(value, false)
			}
			seq = seq[:len(seq)-1]
			used[i] = false
		}
	}
	recurse()
}
