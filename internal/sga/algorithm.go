package sga

import (
	"context"
	"fmt"
	"math/rand"

	"queensga/internal/board"
)

// Report is the structured outcome of one evolutionary run.
type Report struct {
	// NumFitnessEval is the instance's total evaluation count at run end,
	// including evaluations spent inside parent and survivor selection.
	NumFitnessEval int `json:"num_fitness_eval"`
	// Convergence is true when the best fitness reached 1.0, i.e. a
	// zero-conflict placement was found.
	Convergence bool `json:"convergence"`
	// NumSolutions counts population members tied at the best fitness.
	NumSolutions int `json:"num_solutions"`
	// Solution is the best individual in canonical placement form.
	Solution board.Placement `json:"solution"`
	// BestFitness is the best fitness present at run end.
	BestFitness float64 `json:"best_fitness"`
	// Generations is the number of select/recombine/mutate/replace steps.
	Generations int `json:"generations"`
	// BestByGeneration traces the best fitness after initialization and
	// after each generation.
	BestByGeneration []float64 `json:"best_by_generation,omitempty"`
}

// Runner is one constructed algorithm instance. Run executes one full
// evolutionary loop from a freshly initialized population. The evaluation
// counter is instance state: successive Run calls keep incrementing it, so a
// fresh budget requires a fresh instance via New.
type Runner interface {
	Run(ctx context.Context) (Report, error)
	Evaluations() int
}

// New validates the configuration and constructs a runner for the configured
// representation. All validation failures wrap ErrInvalidConfiguration.
func New(cfg Config) (Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	switch cfg.Representation {
	case RepresentationPermutation:
		alphabet := make([]int, board.Size)
		for i := range alphabet {
			alphabet[i] = i + 1
		}
		return newAlgorithm(cfg, alphabet, decodePermutation)
	case RepresentationBinary:
		return newAlgorithm(cfg, board.Alphabet(), decodeBinary)
	default:
		return nil, fmt.Errorf("%w: unrecognized representation: %d", ErrInvalidConfiguration, int(cfg.Representation))
	}
}

func decodePermutation(genome []int) board.Placement {
	return board.Placement(genome)
}

func decodeBinary(genes []string) board.Placement {
	p := make(board.Placement, len(genes))
	for i, gene := range genes {
		p[i] = board.MustDecodeGene(gene)
	}
	return p
}

type algorithm[G comparable] struct {
	cfg        Config
	rng        *rand.Rand
	eval       *Evaluator[G]
	alphabet   []G
	selector   ParentSelector[G]
	recombiner Recombiner[G]
	mutator    Mutator[G]
	survivor   SurvivorSelector[G]
}

func newAlgorithm[G comparable](cfg Config, alphabet []G, decode func([]G) board.Placement) (*algorithm[G], error) {
	selector, err := selectorFor[G](cfg.Selection)
	if err != nil {
		return nil, err
	}
	recombiner, err := recombinerFor[G](cfg.Recombination)
	if err != nil {
		return nil, err
	}
	mutator, err := mutatorFor[G](cfg.Mutation)
	if err != nil {
		return nil, err
	}
	survivor, err := survivorFor[G](cfg.Survivor)
	if err != nil {
		return nil, err
	}

	return &algorithm[G]{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		eval:       NewEvaluator(decode),
		alphabet:   alphabet,
		selector:   selector,
		recombiner: recombiner,
		mutator:    mutator,
		survivor:   survivor,
	}, nil
}

func selectorFor[G comparable](s ParentSelection) (ParentSelector[G], error) {
	switch s {
	case SelectionBestTwoOfFive:
		return BestTwoOfFive[G]{}, nil
	case SelectionRoulette:
		return Roulette[G]{}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized parent selection: %d", ErrInvalidConfiguration, int(s))
	}
}

func recombinerFor[G comparable](r Recombination) (Recombiner[G], error) {
	switch r {
	case RecombinationCutAndCrossfill:
		return CutAndCrossfill[G]{}, nil
	case RecombinationPMX:
		return PMX[G]{}, nil
	case RecombinationEdge:
		return EdgeRecombination[G]{}, nil
	case RecombinationCycle:
		return CycleCrossover[G]{}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized recombination: %d", ErrInvalidConfiguration, int(r))
	}
}

func mutatorFor[G comparable](m Mutation) (Mutator[G], error) {
	switch m {
	case MutationSwap:
		return Swap[G]{}, nil
	case MutationInsert:
		return Insert[G]{}, nil
	case MutationScramble:
		return Scramble[G]{}, nil
	case MutationInversion:
		return Inversion[G]{}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized mutation: %d", ErrInvalidConfiguration, int(m))
	}
}

func survivorFor[G comparable](s SurvivorPolicy) (SurvivorSelector[G], error) {
	switch s {
	case SurvivorReplaceWorst:
		return ReplaceWorst[G]{}, nil
	case SurvivorReplaceParents:
		return ReplaceParents[G]{}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized survivor selection: %d", ErrInvalidConfiguration, int(s))
	}
}

func (a *algorithm[G]) Evaluations() int {
	return a.eval.Evaluations()
}

// Run drives generations until the evaluation budget is spent or a
// zero-conflict placement appears. The budget and the convergence condition
// are re-checked after every generation.
func (a *algorithm[G]) Run(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	pop := a.initPopulation()

	history := make([]float64, 0, 64)
	history = append(history, pop.BestFitness())

	generations := 0
	for a.eval.Evaluations() < a.cfg.EvaluationBudget && pop.BestFitness() < 1.0 {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		p1, p2, err := a.selector.PickParents(a.rng, pop, a.eval)
		if err != nil {
			return Report{}, fmt.Errorf("parent selection: %w", err)
		}

		c1, c2 := cloneGenes(p1), cloneGenes(p2)
		if a.rng.Float64() < a.cfg.CrossoverProb {
			c1, c2 = a.recombiner.Recombine(a.rng, p1, p2)
		}
		if a.rng.Float64() < a.cfg.MutationProb {
			a.mutator.Mutate(a.rng, c1)
		}
		if a.rng.Float64() < a.cfg.MutationProb {
			a.mutator.Mutate(a.rng, c2)
		}

		if err := a.survivor.Replace(pop, a.eval, p1, p2, c1, c2); err != nil {
			return Report{}, fmt.Errorf("survivor selection: %w", err)
		}

		generations++
		history = append(history, pop.BestFitness())
	}

	bestIdx := pop.BestIndex()
	best := pop.Fitness[bestIdx]
	return Report{
		NumFitnessEval:   a.eval.Evaluations(),
		Convergence:      best == 1.0,
		NumSolutions:     pop.CountAtBest(),
		Solution:         a.eval.Decode(pop.Members[bestIdx]).Clone(),
		BestFitness:      best,
		Generations:      generations,
		BestByGeneration: history,
	}, nil
}

// initPopulation draws PopulationSize uniform-random permutations of the
// gene alphabet and fills the fitness table (each entry budget-counted).
func (a *algorithm[G]) initPopulation() *Population[G] {
	members := make([][]G, a.cfg.PopulationSize)
	fitness := make([]float64, a.cfg.PopulationSize)
	for i := range members {
		genome := cloneGenes(a.alphabet)
		a.rng.Shuffle(len(genome), func(x, y int) {
			genome[x], genome[y] = genome[y], genome[x]
		})
		members[i] = genome
		fitness[i] = a.eval.Evaluate(genome)
	}
	return &Population[G]{Members: members, Fitness: fitness}
}
