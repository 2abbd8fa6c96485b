package sga

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"queensga/internal/board"
)

// budgetSlack is the worst-case evaluation overshoot of one generation:
// five tournament draws plus two replaced children.
const budgetSlack = tournamentDraw + 2

func TestRunTerminatesWithinBudget(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		runner, err := New(cfg)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		report, err := runner.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if report.NumFitnessEval > cfg.EvaluationBudget+budgetSlack {
			t.Fatalf("seed %d: %d evaluations exceeds budget %d plus one generation",
				seed, report.NumFitnessEval, cfg.EvaluationBudget)
		}
		if !report.Convergence && report.NumFitnessEval < cfg.EvaluationBudget {
			t.Fatalf("seed %d: stopped at %d evaluations without converging", seed, report.NumFitnessEval)
		}
		if report.Convergence {
			if got := board.Conflicts(report.Solution); got != 0 {
				t.Fatalf("seed %d: converged report carries %d conflicting pairs: %v", seed, got, report.Solution)
			}
			if report.BestFitness != 1.0 {
				t.Fatalf("seed %d: convergence with best fitness %v", seed, report.BestFitness)
			}
			if report.NumSolutions < 1 {
				t.Fatalf("seed %d: convergence with %d solutions", seed, report.NumSolutions)
			}
		}
		if err := report.Solution.Validate(); err != nil {
			t.Fatalf("seed %d: reported solution is not a permutation: %v", seed, err)
		}
		if len(report.BestByGeneration) != report.Generations+1 {
			t.Fatalf("seed %d: history length %d for %d generations",
				seed, len(report.BestByGeneration), report.Generations)
		}
	}
}

func TestRunBestFitnessNeverDecreasesUnderReplaceWorst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 17
	runner, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// Replace-worst never evicts the champion, so the trace is monotone.
	for i := 1; i < len(report.BestByGeneration); i++ {
		if report.BestByGeneration[i] < report.BestByGeneration[i-1] {
			t.Fatalf("best fitness dropped at generation %d: %v -> %v",
				i, report.BestByGeneration[i-1], report.BestByGeneration[i])
		}
	}
}

func TestRunDeterministicForSeed(t *testing.T) {
	run := func() Report {
		cfg := DefaultConfig()
		cfg.Seed = 42
		runner, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		report, err := runner.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return report
	}
	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different reports:\n%+v\n%+v", first, second)
	}
}

func TestRunBinaryRepresentation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Representation = RepresentationBinary
	cfg.Seed = 7
	runner, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := report.Solution.Validate(); err != nil {
		t.Fatalf("decoded solution is not a permutation: %v", err)
	}
	if report.Convergence && board.Conflicts(report.Solution) != 0 {
		t.Fatalf("converged binary run with conflicting solution: %v", report.Solution)
	}
}

func TestRunAllStrategyCombinations(t *testing.T) {
	selections := []ParentSelection{SelectionBestTwoOfFive, SelectionRoulette}
	recombinations := []Recombination{RecombinationCutAndCrossfill, RecombinationPMX, RecombinationEdge, RecombinationCycle}
	mutations := []Mutation{MutationSwap, MutationInsert, MutationScramble, MutationInversion}
	survivors := []SurvivorPolicy{SurvivorReplaceWorst, SurvivorReplaceParents}

	for _, sel := range selections {
		for _, rec := range recombinations {
			for _, mut := range mutations {
				for _, srv := range survivors {
					cfg := DefaultConfig()
					cfg.Selection = sel
					cfg.Recombination = rec
					cfg.Mutation = mut
					cfg.Survivor = srv
					cfg.EvaluationBudget = 600
					cfg.Seed = 3
					name := sel.String() + "/" + rec.String() + "/" + mut.String() + "/" + srv.String()
					t.Run(name, func(t *testing.T) {
						runner, err := New(cfg)
						if err != nil {
							t.Fatal(err)
						}
						report, err := runner.Run(context.Background())
						if err != nil {
							t.Fatal(err)
						}
						if err := report.Solution.Validate(); err != nil {
							t.Fatalf("solution is not a permutation: %v", err)
						}
						if report.NumFitnessEval > cfg.EvaluationBudget+budgetSlack {
							t.Fatalf("%d evaluations over budget %d", report.NumFitnessEval, cfg.EvaluationBudget)
						}
					})
				}
			}
		}
	}
}

func TestEvaluationCounterPersistsAcrossRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EvaluationBudget = 300
	cfg.Seed = 5
	runner, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	first, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.NumFitnessEval <= first.NumFitnessEval {
		t.Fatalf("counter must keep incrementing across runs: %d then %d",
			first.NumFitnessEval, second.NumFitnessEval)
	}
	if runner.Evaluations() != second.NumFitnessEval {
		t.Fatalf("runner counter %d disagrees with report %d",
			runner.Evaluations(), second.NumFitnessEval)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CrossoverProb = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	runner, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
