// Package gridcsp: compact bitsets recording which candidate values have
// been proven impossible for each cell of the current search branch.
package gridcsp

import "math/bits"

// takenSet stores one bit per (cell, candidate) pair, packed into uint64
// words. Bit set means "this value is proven impossible for this cell in the
// current branch". Bits are only ever set, never cleared; backtracking
// discards the whole set and resumes from the parent's clone.
//
// Candidates are 0-based offsets into the puzzle's value range, so the same
// set works for any inclusive [MinValue, MaxValue] range.
type takenSet struct {
	cells    int
	rangeLen int
	wordsPer int
	words    []uint64
}

// newTakenSet creates an all-clear taken set for the given grid shape.
func newTakenSet(cells, rangeLen int) takenSet {
	wordsPer := (rangeLen + 63) / 64
	return takenSet{
		cells:    cells,
		rangeLen: rangeLen,
		wordsPer: wordsPer,
		words:    make([]uint64, cells*wordsPer),
	}
}

// clone returns an independent copy. Sibling search branches each work on
// their own clone, which is what makes backtracking restore-free.
func (t takenSet) clone() takenSet {
	words := make([]uint64, len(t.words))
	copy(words, t.words)
	return takenSet{
		cells:    t.cells,
		rangeLen: t.rangeLen,
		wordsPer: t.wordsPer,
		words:    words,
	}
}

// take marks the candidate offset as impossible for the cell.
// Returns true if the bit was newly set.
func (t takenSet) take(cell, offset int) bool {
	idx := cell*t.wordsPer + offset/64
	mask := uint64(1) << uint(offset%64)
	if t.words[idx]&mask != 0 {
		return false
	}
	t.words[idx] |= mask
	return true
}

// isTaken reports whether the candidate offset is marked impossible for the cell.
func (t takenSet) isTaken(cell, offset int) bool {
	idx := cell*t.wordsPer + offset/64
	return t.words[idx]&(uint64(1)<<uint(offset%64)) != 0
}

// takenCount returns how many candidates are marked impossible for the cell.
func (t takenSet) takenCount(cell int) int {
	count := 0
	for i := cell * t.wordsPer; i < (cell+1)*t.wordsPer; i++ {
		count += bits.OnesCount64(t.words[i])
	}
	return count
}

// remaining returns how many candidates are still open for the cell.
func (t takenSet) remaining(cell int) int {
	return t.rangeLen - t.takenCount(cell)
}

// iterateOpen calls f for each candidate offset still open for the cell,
// in ascending order.
func (t takenSet) iterateOpen(cell int, f func(offset int)) {
	base := cell * t.wordsPer
	for w := 0; w < t.wordsPer; w++ {
		word := ^t.words[base+w]
		if w == t.wordsPer-1 && t.rangeLen%64 != 0 {
			word &= (uint64(1) << uint(t.rangeLen%64)) - 1
		}
		for word != 0 {
			lowest := word & -word
			f(w*64 + bits.TrailingZeros64(word))
			word &^= lowest
		}
	}
}

// minOpen returns the smallest open candidate offset for the cell, or -1 if
// every candidate is taken.
func (t takenSet) minOpen(cell int) int {
	base := cell * t.wordsPer
	for w := 0; w < t.wordsPer; w++ {
		word := ^t.words[base+w]
		if w == t.wordsPer-1 && t.rangeLen%64 != 0 {
			word &= (uint64(1) << uint(t.rangeLen%64)) - 1
		}
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// maxOpen returns the largest open candidate offset for the cell, or -1 if
// every candidate is taken.
func (t takenSet) maxOpen(cell int) int {
	base := cell * t.wordsPer
	for w := t.wordsPer - 1; w >= 0; w-- {
		word := ^t.words[base+w]
		if w == t.wordsPer-1 && t.rangeLen%64 != 0 {
			word &= (uint64(1) << uint(t.rangeLen%64)) - 1
		}
		if word != 0 {
			return w*64 + 63 - bits.LeadingZeros64(word)
		}
	}
	return -1
}
