package sga

import (
	"fmt"
	"math/rand"
)

// tournamentDraw is the number of distinct candidates sampled by the
// best-two-of-five selector.
const tournamentDraw = 5

// ParentSelector picks two parents from the population for one generation.
type ParentSelector[G comparable] interface {
	Name() string
	PickParents(rng *rand.Rand, pop *Population[G], eval *Evaluator[G]) ([]G, []G, error)
}

// BestTwoOfFive draws five distinct members uniformly without replacement,
// evaluates all five (each evaluation counts toward the budget), and returns
// the top two by descending fitness. Ties break stably by draw order.
type BestTwoOfFive[G comparable] struct{}

func (BestTwoOfFive[G]) Name() string {
	return "best_two_of_five"
}

func (BestTwoOfFive[G]) PickParents(rng *rand.Rand, pop *Population[G], eval *Evaluator[G]) ([]G, []G, error) {
	if rng == nil {
		return nil, nil, fmt.Errorf("random source is required")
	}
	if len(pop.Members) < tournamentDraw {
		return nil, nil, fmt.Errorf("population too small for tournament: %d < %d", len(pop.Members), tournamentDraw)
	}

	drawn := rng.Perm(len(pop.Members))[:tournamentDraw]

	first, second := -1, -1
	var firstFit, secondFit float64
	for _, idx := range drawn {
		fitness := eval.Evaluate(pop.Members[idx])
		switch {
		case first == -1 || fitness > firstFit:
			second, secondFit = first, firstFit
			first, firstFit = idx, fitness
		case second == -1 || fitness > secondFit:
			second, secondFit = idx, fitness
		}
	}

	return cloneGenes(pop.Members[first]), cloneGenes(pop.Members[second]), nil
}

// Roulette is fitness-proportionate selection over the current fitness
// table. Two independent spins; the same member may be drawn twice. Fitness
// is always positive, so the total never degenerates to zero. No fresh
// evaluations are performed.
type Roulette[G comparable] struct{}

func (Roulette[G]) Name() string {
	return "roulette"
}

func (Roulette[G]) PickParents(rng *rand.Rand, pop *Population[G], _ *Evaluator[G]) ([]G, []G, error) {
	if rng == nil {
		return nil, nil, fmt.Errorf("random source is required")
	}
	if len(pop.Members) == 0 {
		return nil, nil, fmt.Errorf("population is empty")
	}

	total := 0.0
	for _, f := range pop.Fitness {
		total += f
	}

	parents := make([][]G, 2)
	for k := range parents {
		spin := rng.Float64() * total
		cumulative := 0.0
		pick := len(pop.Members) - 1
		for i, f := range pop.Fitness {
			cumulative += f
			if spin < cumulative {
				pick = i
				break
			}
		}
		parents[k] = cloneGenes(pop.Members[pick])
	}
	return parents[0], parents[1], nil
}
