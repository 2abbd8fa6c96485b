package sga

import (
	"math/rand"
)

// Mutator rearranges one individual in place. All variants are pure
// rearrangements, so permutation validity is preserved by construction.
type Mutator[G comparable] interface {
	Name() string
	Mutate(rng *rand.Rand, genome []G)
}

// Swap exchanges the genes at two distinct random positions.
type Swap[G comparable] struct{}

func (Swap[G]) Name() string {
	return "swap"
}

func (Swap[G]) Mutate(rng *rand.Rand, genome []G) {
	i, j := twoDistinctOrdered(rng, len(genome))
	genome[i], genome[j] = genome[j], genome[i]
}

// Insert moves the gene at the later position to immediately after the
// earlier one, shifting the genes between them right by one.
type Insert[G comparable] struct{}

func (Insert[G]) Name() string {
	return "insert"
}

func (Insert[G]) Mutate(rng *rand.Rand, genome []G) {
	i, j := twoDistinctOrdered(rng, len(genome))
	moved := genome[j]
	copy(genome[i+2:j+1], genome[i+1:j])
	genome[i+1] = moved
}

// Scramble shuffles the genes strictly within a random inclusive interval.
type Scramble[G comparable] struct{}

func (Scramble[G]) Name() string {
	return "scramble"
}

func (Scramble[G]) Mutate(rng *rand.Rand, genome []G) {
	i, j := twoDistinctOrdered(rng, len(genome))
	window := genome[i : j+1]
	rng.Shuffle(len(window), func(a, b int) {
		window[a], window[b] = window[b], window[a]
	})
}

// Inversion reverses the gene order within a random inclusive interval.
type Inversion[G comparable] struct{}

func (Inversion[G]) Name() string {
	return "inversion"
}

func (Inversion[G]) Mutate(rng *rand.Rand, genome []G) {
	i, j := twoDistinctOrdered(rng, len(genome))
	for i < j {
		genome[i], genome[j] = genome[j], genome[i]
		i++
		j--
	}
}
