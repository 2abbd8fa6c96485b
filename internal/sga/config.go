package sga

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is wrapped by every construction-time validation
// failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultPopulationSize is the conventional population size.
const DefaultPopulationSize = 100

// DefaultEvaluationBudget caps fitness computations per run.
const DefaultEvaluationBudget = 10000

// Representation selects how individuals are encoded.
type Representation int

const (
	RepresentationPermutation Representation = iota + 1
	RepresentationBinary
)

func (r Representation) String() string {
	switch r {
	case RepresentationPermutation:
		return "permutation"
	case RepresentationBinary:
		return "binary"
	default:
		return fmt.Sprintf("representation(%d)", int(r))
	}
}

// ParseRepresentation maps a config name to its representation.
func ParseRepresentation(name string) (Representation, error) {
	switch name {
	case "", "permutation":
		return RepresentationPermutation, nil
	case "binary":
		return RepresentationBinary, nil
	default:
		return 0, fmt.Errorf("%w: unsupported representation: %s", ErrInvalidConfiguration, name)
	}
}

// ParentSelection selects the parent-selection strategy.
type ParentSelection int

const (
	SelectionBestTwoOfFive ParentSelection = iota + 1
	SelectionRoulette
)

func (s ParentSelection) String() string {
	switch s {
	case SelectionBestTwoOfFive:
		return "best_two_of_five"
	case SelectionRoulette:
		return "roulette"
	default:
		return fmt.Sprintf("selection(%d)", int(s))
	}
}

func ParseParentSelection(name string) (ParentSelection, error) {
	switch name {
	case "", "best_two_of_five":
		return SelectionBestTwoOfFive, nil
	case "roulette":
		return SelectionRoulette, nil
	default:
		return 0, fmt.Errorf("%w: unsupported parent selection: %s", ErrInvalidConfiguration, name)
	}
}

// Recombination selects the crossover strategy.
type Recombination int

const (
	RecombinationCutAndCrossfill Recombination = iota + 1
	RecombinationPMX
	RecombinationEdge
	RecombinationCycle
)

func (r Recombination) String() string {
	switch r {
	case RecombinationCutAndCrossfill:
		return "cut_and_crossfill"
	case RecombinationPMX:
		return "pmx"
	case RecombinationEdge:
		return "edge_recombination"
	case RecombinationCycle:
		return "cycle"
	default:
		return fmt.Sprintf("recombination(%d)", int(r))
	}
}

func ParseRecombination(name string) (Recombination, error) {
	switch name {
	case "", "cut_and_crossfill":
		return RecombinationCutAndCrossfill, nil
	case "pmx":
		return RecombinationPMX, nil
	case "edge_recombination", "edge":
		return RecombinationEdge, nil
	case "cycle":
		return RecombinationCycle, nil
	default:
		return 0, fmt.Errorf("%w: unsupported recombination: %s", ErrInvalidConfiguration, name)
	}
}

// Mutation selects the mutation strategy.
type Mutation int

const (
	MutationSwap Mutation = iota + 1
	MutationInsert
	MutationScramble
	MutationInversion
)

func (m Mutation) String() string {
	switch m {
	case MutationSwap:
		return "swap"
	case MutationInsert:
		return "insert"
	case MutationScramble:
		return "scramble"
	case MutationInversion:
		return "inversion"
	default:
		return fmt.Sprintf("mutation(%d)", int(m))
	}
}

func ParseMutation(name string) (Mutation, error) {
	switch name {
	case "", "swap":
		return MutationSwap, nil
	case "insert":
		return MutationInsert, nil
	case "scramble":
		return MutationScramble, nil
	case "inversion":
		return MutationInversion, nil
	default:
		return 0, fmt.Errorf("%w: unsupported mutation: %s", ErrInvalidConfiguration, name)
	}
}

// SurvivorPolicy selects the survivor-selection strategy.
type SurvivorPolicy int

const (
	SurvivorReplaceWorst SurvivorPolicy = iota + 1
	SurvivorReplaceParents
)

func (s SurvivorPolicy) String() string {
	switch s {
	case SurvivorReplaceWorst:
		return "replace_worst"
	case SurvivorReplaceParents:
		return "replace_parents"
	default:
		return fmt.Sprintf("survivor(%d)", int(s))
	}
}

func ParseSurvivorPolicy(name string) (SurvivorPolicy, error) {
	switch name {
	case "", "replace_worst":
		return SurvivorReplaceWorst, nil
	case "replace_parents":
		return SurvivorReplaceParents, nil
	default:
		return 0, fmt.Errorf("%w: unsupported survivor selection: %s", ErrInvalidConfiguration, name)
	}
}

// Config fixes one algorithm instance. Immutable after New.
type Config struct {
	CrossoverProb    float64
	MutationProb     float64
	PopulationSize   int
	Representation   Representation
	Selection        ParentSelection
	Recombination    Recombination
	Mutation         Mutation
	Survivor         SurvivorPolicy
	EvaluationBudget int
	Seed             int64
}

// DefaultConfig mirrors the conventional experiment setup: permutation
// representation, best-two-of-five parents, cut-and-crossfill, swap
// mutation, replace-worst survivors.
func DefaultConfig() Config {
	return Config{
		CrossoverProb:    0.9,
		MutationProb:     0.4,
		PopulationSize:   DefaultPopulationSize,
		Representation:   RepresentationPermutation,
		Selection:        SelectionBestTwoOfFive,
		Recombination:    RecombinationCutAndCrossfill,
		Mutation:         MutationSwap,
		Survivor:         SurvivorReplaceWorst,
		EvaluationBudget: DefaultEvaluationBudget,
	}
}

func (c Config) validate() error {
	if c.CrossoverProb <= 0 || c.CrossoverProb > 1 {
		return fmt.Errorf("%w: crossover probability must be in (0,1], got %v", ErrInvalidConfiguration, c.CrossoverProb)
	}
	if c.MutationProb <= 0 || c.MutationProb > 1 {
		return fmt.Errorf("%w: mutation probability must be in (0,1], got %v", ErrInvalidConfiguration, c.MutationProb)
	}
	if c.PopulationSize <= 0 {
		return fmt.Errorf("%w: population size must be > 0, got %d", ErrInvalidConfiguration, c.PopulationSize)
	}
	if c.Selection == SelectionBestTwoOfFive && c.PopulationSize < tournamentDraw {
		return fmt.Errorf("%w: population size must be >= %d for best-two-of-five selection", ErrInvalidConfiguration, tournamentDraw)
	}
	if c.EvaluationBudget <= 0 {
		return fmt.Errorf("%w: evaluation budget must be > 0, got %d", ErrInvalidConfiguration, c.EvaluationBudget)
	}
	switch c.Representation {
	case RepresentationPermutation, RepresentationBinary:
	default:
		return fmt.Errorf("%w: unrecognized representation: %d", ErrInvalidConfiguration, int(c.Representation))
	}
	switch c.Selection {
	case SelectionBestTwoOfFive, SelectionRoulette:
	default:
		return fmt.Errorf("%w: unrecognized parent selection: %d", ErrInvalidConfiguration, int(c.Selection))
	}
	switch c.Recombination {
	case RecombinationCutAndCrossfill, RecombinationPMX, RecombinationEdge, RecombinationCycle:
	default:
		return fmt.Errorf("%w: unrecognized recombination: %d", ErrInvalidConfiguration, int(c.Recombination))
	}
	switch c.Mutation {
	case MutationSwap, MutationInsert, MutationScramble, MutationInversion:
	default:
		return fmt.Errorf("%w: unrecognized mutation: %d", ErrInvalidConfiguration, int(c.Mutation))
	}
	switch c.Survivor {
	case SurvivorReplaceWorst, SurvivorReplaceParents:
	default:
		return fmt.Errorf("%w: unrecognized survivor selection: %d", ErrInvalidConfiguration, int(c.Survivor))
	}
	return nil
}
