package sga

import (
	"fmt"
)

// SurvivorSelector folds two children back into the population, keeping the
// fitness table aligned with the members it describes.
type SurvivorSelector[G comparable] interface {
	Name() string
	Replace(pop *Population[G], eval *Evaluator[G], p1, p2, c1, c2 []G) error
}

// ReplaceWorst overwrites the two lowest-fitness slots with the children and
// recomputes their fitness (both evaluations count toward the budget).
type ReplaceWorst[G comparable] struct{}

func (ReplaceWorst[G]) Name() string {
	return "replace_worst"
}

func (ReplaceWorst[G]) Replace(pop *Population[G], eval *Evaluator[G], _, _, c1, c2 []G) error {
	if len(pop.Members) < 2 {
		return fmt.Errorf("population too small for replacement: %d", len(pop.Members))
	}

	worst, next := worstTwo(pop.Fitness)
	pop.Members[worst] = cloneGenes(c1)
	pop.Members[next] = cloneGenes(c2)
	pop.Fitness[worst] = eval.Evaluate(c1)
	pop.Fitness[next] = eval.Evaluate(c2)
	return nil
}

func worstTwo(fitness []float64) (int, int) {
	worst, next := -1, -1
	for i, f := range fitness {
		switch {
		case worst == -1 || f < fitness[worst]:
			next = worst
			worst = i
		case next == -1 || f < fitness[next]:
			next = i
		}
	}
	return worst, next
}

// ReplaceParents locates the slots holding the two parents by value identity
// and overwrites them with the children. The fitness entries for both slots
// are refreshed immediately (budget-counted) so the table never goes stale.
// When both parents resolve to the same slot (roulette may draw one member
// twice), the second child wins the slot, mirroring two sequential writes.
type ReplaceParents[G comparable] struct{}

func (ReplaceParents[G]) Name() string {
	return "replace_parents"
}

func (ReplaceParents[G]) Replace(pop *Population[G], eval *Evaluator[G], p1, p2, c1, c2 []G) error {
	slot1 := pop.indexOf(p1)
	if slot1 < 0 {
		return fmt.Errorf("first parent not present in population")
	}
	pop.Members[slot1] = cloneGenes(c1)
	pop.Fitness[slot1] = eval.Evaluate(c1)

	slot2 := pop.indexOf(p2)
	if slot2 < 0 {
		// The only member equal to p2 may have been the slot just
		// rewritten with c1; fall back to it.
		slot2 = slot1
	}
	pop.Members[slot2] = cloneGenes(c2)
	pop.Fitness[slot2] = eval.Evaluate(c2)
	return nil
}
