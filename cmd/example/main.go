// Package main demonstrates basic gridcsp usage patterns.
//
// The examples build small puzzles directly from the engine's primitives:
// a Latin square, a killer-style cage over enumerated combinations, and an
// equal-sums puzzle showing constraint self-replacement.
package main

import (
	"context"
	"fmt"

	"github.com/solverkit/gridcsp/pkg/gridcsp"
)

func main() {
	fmt.Println("=== gridcsp examples ===")
	fmt.Println()

	latinSquare()
	killerCage()
	equalSums()
}

// latinSquare solves a 4x4 Latin square with two givens.
func latinSquare() {
	fmt.Println("1. Latin square 4x4:")

	puzzle, err := gridcsp.NewPuzzle(16, 1, 4)
	if err != nil {
		panic(err)
	}
	for i := 0; i < 4; i++ {
		row := []int{4 * i, 4*i + 1, 4*i + 2, 4*i + 3}
		col := []int{i, i + 4, i + 8, i + 12}
		check(puzzle.AddConstraint(mustConstraint(gridcsp.NewUniqueness(row))))
		check(puzzle.AddConstraint(mustConstraint(gridcsp.NewUniqueness(col))))
	}
	check(puzzle.AddGiven(0, 1))
	check(puzzle.AddGiven(5, 2))

	count := 0
	for solution := range puzzle.Solutions(context.Background(), nil) {
		count++
		printGrid(solution, 4)
		if count == 3 {
			fmt.Println("   ... (stopping after three)")
			break
		}
	}
	fmt.Printf("   printed %d solution(s)\n\n", count)
}

// killerCage restricts two cells to enumerated sum combinations.
func killerCage() {
	fmt.Println("2. Killer cage via combinations:")

	puzzle, err := gridcsp.NewPuzzle(2, 1, 9)
	if err != nil {
		panic(err)
	}
	tuples, err := gridcsp.SumCombinations(1, 9, 2, 7)
	if err != nil {
		panic(err)
	}
	check(puzzle.AddConstraint(mustConstraint(gridcsp.NewCombinations([]int{0, 1}, tuples))))

	for solution := range puzzle.Solutions(context.Background(), nil) {
		fmt.Printf("   %v\n", solution)
	}
	fmt.Println()
}

// equalSums demonstrates constraint self-replacement: once the first region
// is fully assigned, the constraint turns into concrete sum constraints.
func equalSums() {
	fmt.Println("3. Equal sums across two regions:")

	puzzle, err := gridcsp.NewPuzzle(4, 1, 6)
	if err != nil {
		panic(err)
	}
	check(puzzle.AddConstraint(mustConstraint(gridcsp.NewEqualSums([]int{0, 1}, []int{2, 3}))))
	check(puzzle.AddGiven(0, 2))
	check(puzzle.AddGiven(1, 3))
	check(puzzle.AddGiven(2, 1))

	for solution := range puzzle.Solutions(context.Background(), nil) {
		fmt.Printf("   %v (both pairs sum to 5)\n", solution)
	}
	fmt.Println()
}

func printGrid(solution gridcsp.Solution, width int) {
	for row := 0; row < len(solution)/width; row++ {
		fmt.Print("   ")
		for col := 0; col < width; col++ {
			fmt.Printf("%d ", solution[row*width+col])
		}
		fmt.Println()
	}
	fmt.Println()
}

func mustConstraint(c gridcsp.Constraint, err error) gridcsp.Constraint {
	check(err)
	return c
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
