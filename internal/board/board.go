// Package board models 8-queens placements: one queen per row, the value at
// row i giving the queen's column in [1,8]. A placement with zero pairwise
// attacks is a solution.
package board

import (
	"fmt"
	"math/rand"
)

// Size is the board dimension and the length of every placement.
const Size = 8

// Placement holds one queen column per row, columns numbered 1..Size.
type Placement []int

// Known is a reference zero-conflict placement used by tests and sanity checks.
var Known = Placement{4, 2, 7, 3, 6, 8, 5, 1}

// Random returns a uniform-random permutation of [1,Size].
func Random(rng *rand.Rand) Placement {
	p := make(Placement, Size)
	for i, v := range rng.Perm(Size) {
		p[i] = v + 1
	}
	return p
}

// Clone returns an independent copy of p.
func (p Placement) Clone() Placement {
	return append(Placement(nil), p...)
}

// Validate reports whether p is a permutation of [1,Size].
func (p Placement) Validate() error {
	if len(p) != Size {
		return fmt.Errorf("placement length must be %d, got %d", Size, len(p))
	}
	var seen [Size + 1]bool
	for i, v := range p {
		if v < 1 || v > Size {
			return fmt.Errorf("queen column out of range at row %d: %d", i, v)
		}
		if seen[v] {
			return fmt.Errorf("duplicate queen column: %d", v)
		}
		seen[v] = true
	}
	return nil
}

// Conflicts counts attacking queen pairs across rows, diagonals, and
// anti-diagonals. Each line with k queens contributes k*(k-1)/2 pairs. Row
// counters are always 1 for a well-formed permutation; they are kept so a
// malformed placement still scores its row attacks.
func Conflicts(p Placement) int {
	var rows [Size + 1]int
	var diag [2 * Size]int
	var anti [2 * Size]int

	for i, c := range p {
		rows[c]++
		diag[c+i]++
		anti[Size-c+i]++
	}

	pairs := 0
	for _, k := range rows {
		pairs += k * (k - 1) / 2
	}
	for i := 0; i < 2*Size; i++ {
		pairs += diag[i] * (diag[i] - 1) / 2
		pairs += anti[i] * (anti[i] - 1) / 2
	}
	return pairs
}

// IsSolution reports whether p has no attacking pairs.
func IsSolution(p Placement) bool {
	return Conflicts(p) == 0
}
