package sga

import (
	"testing"
)

func fixedPopulation(t *testing.T, members ...[]int) (*Population[int], *Evaluator[int]) {
	t.Helper()
	eval := NewEvaluator(decodePermutation)
	pop := &Population[int]{
		Members: make([][]int, len(members)),
		Fitness: make([]float64, len(members)),
	}
	for i, m := range members {
		pop.Members[i] = cloneGenes(m)
		pop.Fitness[i] = eval.Evaluate(m)
	}
	return pop, eval
}

func TestReplaceWorstOverwritesTwoWeakestSlots(t *testing.T) {
	solution := []int{4, 2, 7, 3, 6, 8, 5, 1}
	weak := []int{1, 2, 3, 4, 5, 6, 7, 8}    // 28 conflicting pairs
	strong := []int{2, 4, 6, 8, 3, 1, 7, 5}  // another solution board
	weakToo := []int{8, 7, 6, 5, 4, 3, 2, 1} // 28 conflicting pairs
	pop, eval := fixedPopulation(t, strong, weak, solution, weakToo)

	c1 := []int{3, 6, 2, 7, 5, 1, 8, 4}
	c2 := []int{5, 3, 1, 7, 2, 8, 6, 4}
	before := eval.Evaluations()
	if err := (ReplaceWorst[int]{}).Replace(pop, eval, nil, nil, c1, c2); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := eval.Evaluations() - before; got != 2 {
		t.Fatalf("expected 2 evaluations for replaced children, got %d", got)
	}

	// Slots 1 and 3 held the lowest fitness; they must now hold the children.
	if !genesEqual(pop.Members[1], c1) {
		t.Fatalf("weakest slot not replaced by first child: %v", pop.Members[1])
	}
	if !genesEqual(pop.Members[3], c2) {
		t.Fatalf("second-weakest slot not replaced by second child: %v", pop.Members[3])
	}
	if !genesEqual(pop.Members[2], solution) {
		t.Fatal("solution slot must survive")
	}
	for i := range pop.Members {
		want := eval.Evaluate(pop.Members[i])
		if pop.Fitness[i] != want {
			t.Fatalf("fitness table stale at %d: got=%v want=%v", i, pop.Fitness[i], want)
		}
	}
}

func TestReplaceParentsOverwritesParentSlots(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	b := []int{8, 7, 6, 5, 4, 3, 2, 1}
	c := []int{2, 4, 6, 8, 3, 1, 7, 5}
	pop, eval := fixedPopulation(t, a, b, c)

	c1 := []int{4, 2, 7, 3, 6, 8, 5, 1}
	c2 := []int{5, 3, 1, 7, 2, 8, 6, 4}
	before := eval.Evaluations()
	if err := (ReplaceParents[int]{}).Replace(pop, eval, a, c, c1, c2); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := eval.Evaluations() - before; got != 2 {
		t.Fatalf("expected 2 evaluations for refreshed slots, got %d", got)
	}

	if !genesEqual(pop.Members[0], c1) {
		t.Fatalf("first parent slot not replaced: %v", pop.Members[0])
	}
	if !genesEqual(pop.Members[2], c2) {
		t.Fatalf("second parent slot not replaced: %v", pop.Members[2])
	}
	if !genesEqual(pop.Members[1], b) {
		t.Fatal("uninvolved slot must survive")
	}
	if pop.Fitness[0] != 1.0 {
		t.Fatalf("fitness not refreshed for solution child: %v", pop.Fitness[0])
	}
}

func TestReplaceParentsSameParentTwice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	b := []int{8, 7, 6, 5, 4, 3, 2, 1}
	pop, eval := fixedPopulation(t, a, b)

	c1 := []int{2, 4, 6, 8, 3, 1, 7, 5}
	c2 := []int{4, 2, 7, 3, 6, 8, 5, 1}
	if err := (ReplaceParents[int]{}).Replace(pop, eval, a, a, c1, c2); err != nil {
		t.Fatalf("replace: %v", err)
	}
	// Both writes land on the same slot; the second child wins.
	if !genesEqual(pop.Members[0], c2) {
		t.Fatalf("expected second child in the shared slot, got %v", pop.Members[0])
	}
	if !genesEqual(pop.Members[1], b) {
		t.Fatal("other slot must survive")
	}
	if pop.Fitness[0] != 1.0 {
		t.Fatalf("fitness must describe the surviving child, got %v", pop.Fitness[0])
	}
}

func TestReplaceParentsMissingParent(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	pop, eval := fixedPopulation(t, a)

	missing := []int{4, 2, 7, 3, 6, 8, 5, 1}
	if err := (ReplaceParents[int]{}).Replace(pop, eval, missing, a, a, a); err == nil {
		t.Fatal("expected error when the first parent is not in the population")
	}
}

func TestWorstTwoOrdering(t *testing.T) {
	fitness := []float64{0.5, 0.1, 0.9, 0.05, 0.3}
	worst, next := worstTwo(fitness)
	if worst != 3 || next != 1 {
		t.Fatalf("expected slots 3 and 1, got %d and %d", worst, next)
	}
}
