package stats

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Repeats != 0 || summary.Converged != 0 || summary.ConvergenceRate != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSummarizeAggregates(t *testing.T) {
	trials := []TrialResult{
		{RunID: "a", Converged: true, NumFitnessEval: 2000, BestFitness: 1.0},
		{RunID: "b", Converged: true, NumFitnessEval: 4000, BestFitness: 1.0},
		{RunID: "c", Converged: false, NumFitnessEval: 10002, BestFitness: 0.5},
	}

	summary := Summarize(trials)
	if summary.Repeats != 3 || summary.Converged != 2 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if math.Abs(summary.ConvergenceRate-2.0/3.0) > 1e-12 {
		t.Fatalf("unexpected convergence rate: %v", summary.ConvergenceRate)
	}
	wantMean := (2000.0 + 4000.0 + 10002.0) / 3.0
	if math.Abs(summary.EvalMean-wantMean) > 1e-9 {
		t.Fatalf("unexpected eval mean: %v", summary.EvalMean)
	}
	if summary.EvalMin != 2000 || summary.EvalMax != 10002 {
		t.Fatalf("unexpected min/max: %+v", summary)
	}
	if math.Abs(summary.SolvedEvalMean-3000.0) > 1e-9 {
		t.Fatalf("unexpected solved mean: %v", summary.SolvedEvalMean)
	}
	if summary.BestFitness != 1.0 {
		t.Fatalf("unexpected best fitness: %v", summary.BestFitness)
	}

	var variance float64
	for _, trial := range trials {
		diff := float64(trial.NumFitnessEval) - wantMean
		variance += diff * diff
	}
	wantStd := math.Sqrt(variance / 3.0)
	if math.Abs(summary.EvalStd-wantStd) > 1e-9 {
		t.Fatalf("unexpected eval std: got=%v want=%v", summary.EvalStd, wantStd)
	}
}

func TestBenchmarkExperimentRoundTrip(t *testing.T) {
	baseDir := t.TempDir()

	exp := BenchmarkExperiment{
		ID:      "exp-1",
		Config:  RunConfig{RunID: "exp-1", Representation: "permutation", Selection: "roulette"},
		Repeats: 3,
		Trials: []TrialResult{
			{RunID: "a", Converged: true, NumFitnessEval: 2100, BestFitness: 1.0},
		},
		StartedAtUTC:   "2026-08-01T10:00:00Z",
		CompletedAtUTC: "2026-08-01T10:05:00Z",
	}
	exp.Summary = Summarize(exp.Trials)

	if err := WriteBenchmarkExperiment(baseDir, exp); err != nil {
		t.Fatalf("write experiment: %v", err)
	}

	loaded, ok, err := ReadBenchmarkExperiment(baseDir, "exp-1")
	if err != nil {
		t.Fatalf("read experiment: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted experiment")
	}
	if loaded.ID != "exp-1" || loaded.Summary.Converged != 1 {
		t.Fatalf("unexpected experiment: %+v", loaded)
	}
}

func TestReadBenchmarkExperimentMissing(t *testing.T) {
	_, ok, err := ReadBenchmarkExperiment(t.TempDir(), "nope")
	if err != nil {
		t.Fatalf("read experiment: %v", err)
	}
	if ok {
		t.Fatal("expected missing experiment")
	}
}

func TestListBenchmarkExperimentsNewestFirst(t *testing.T) {
	baseDir := t.TempDir()

	older := BenchmarkExperiment{ID: "exp-old", StartedAtUTC: "2026-08-01T09:00:00Z"}
	newer := BenchmarkExperiment{ID: "exp-new", StartedAtUTC: "2026-08-01T11:00:00Z"}
	if err := WriteBenchmarkExperiment(baseDir, older); err != nil {
		t.Fatalf("write older: %v", err)
	}
	if err := WriteBenchmarkExperiment(baseDir, newer); err != nil {
		t.Fatalf("write newer: %v", err)
	}

	exps, err := ListBenchmarkExperiments(baseDir)
	if err != nil {
		t.Fatalf("list experiments: %v", err)
	}
	if len(exps) != 2 || exps[0].ID != "exp-new" || exps[1].ID != "exp-old" {
		t.Fatalf("unexpected listing: %+v", exps)
	}
}
