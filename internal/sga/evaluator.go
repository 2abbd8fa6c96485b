// Package sga implements a simple genetic algorithm over 8-queens
// individuals. Operators are generic over the gene type so the same
// machinery serves the integer permutation representation and the
// binary-string representation; genes are compared by value only.
package sga

import (
	"queensga/internal/board"
)

// Evaluator scores individuals and owns the evaluation counter used as the
// run's termination budget. The counter is explicit state threaded through
// every fitness-consuming operator; it increments on EVERY Evaluate call,
// including those made during parent selection and survivor bookkeeping.
type Evaluator[G comparable] struct {
	decode func([]G) board.Placement
	evals  int
}

// NewEvaluator builds an evaluator around a representation decode function.
// The decode function must treat malformed genes as a precondition violation.
func NewEvaluator[G comparable](decode func([]G) board.Placement) *Evaluator[G] {
	return &Evaluator[G]{decode: decode}
}

// Evaluate returns 1/(conflicts+1) for the decoded individual. Always in
// (0,1]; exactly 1.0 for a non-attacking placement.
func (e *Evaluator[G]) Evaluate(genome []G) float64 {
	conflicts := board.Conflicts(e.decode(genome))
	e.evals++
	return 1.0 / float64(conflicts+1)
}

// Evaluations reports how many fitness computations this evaluator has
// performed over its lifetime.
func (e *Evaluator[G]) Evaluations() int {
	return e.evals
}

// Decode converts an individual to its canonical placement form.
func (e *Evaluator[G]) Decode(genome []G) board.Placement {
	return e.decode(genome)
}
