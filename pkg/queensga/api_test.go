package queensga

import (
	"context"
	"errors"
	"testing"

	"queensga/internal/board"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{
		StoreKind:     "memory",
		BenchmarksDir: t.TempDir(),
		ExportsDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientRunPersistsOutcome(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Seed: 11})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected run id")
	}
	if summary.NumFitnessEval <= 0 {
		t.Fatalf("expected positive evaluation count: %d", summary.NumFitnessEval)
	}
	if len(summary.Solution) != board.Size {
		t.Fatalf("unexpected solution length: %v", summary.Solution)
	}
	if summary.Convergence && board.Conflicts(board.Placement(summary.Solution)) != 0 {
		t.Fatalf("converged with conflicting board: %v", summary.Solution)
	}

	report, err := client.Report(ctx, ReportRequest{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.NumFitnessEval != summary.NumFitnessEval || report.Convergence != summary.Convergence {
		t.Fatalf("report disagrees with run summary: %+v vs %+v", report, summary)
	}

	history, err := client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("fitness history: %v", err)
	}
	if len(history) != summary.Generations+1 {
		t.Fatalf("history length %d for %d generations", len(history), summary.Generations)
	}

	solutions, err := client.Solutions(ctx, SolutionsRequest{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("solutions: %v", err)
	}
	if summary.Convergence && len(solutions) == 0 {
		t.Fatal("converged run must persist a solution")
	}
}

func TestClientRunRejectsUnknownStrategy(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Run(ctx, RunRequest{Recombination: "uniform"}); err == nil {
		t.Fatal("expected unknown strategy error")
	}
}

func TestClientRunsListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	first, err := client.Run(ctx, RunRequest{Seed: 1, Budget: 500})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := client.Run(ctx, RunRequest{Seed: 2, Budget: 500})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	items, err := client.Runs(ctx, RunsRequest{})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(items))
	}
	ids := map[string]bool{items[0].RunID: true, items[1].RunID: true}
	if !ids[first.RunID] || !ids[second.RunID] {
		t.Fatalf("listing missing runs: %+v", items)
	}
}

func TestClientLatestResolution(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Seed: 3, Budget: 500})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	report, err := client.Report(ctx, ReportRequest{Latest: true})
	if err != nil {
		t.Fatalf("report latest: %v", err)
	}
	if report.RunID != summary.RunID {
		t.Fatalf("latest resolved to %s, want %s", report.RunID, summary.RunID)
	}

	if _, err := client.Report(ctx, ReportRequest{RunID: summary.RunID, Latest: true}); err == nil {
		t.Fatal("expected error for run id combined with latest")
	}
	if _, err := client.Report(ctx, ReportRequest{}); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestClientExport(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Seed: 5, Budget: 500})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	exported, err := client.Export(ctx, ExportRequest{RunID: summary.RunID, OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.RunID != summary.RunID || exported.Directory == "" {
		t.Fatalf("unexpected export summary: %+v", exported)
	}
}

func TestClientBenchmarkAggregatesTrials(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	result, err := client.Benchmark(ctx, BenchmarkRequest{
		Run:     RunRequest{Seed: 100, Budget: 2000},
		Repeats: 3,
	})
	if err != nil {
		t.Fatalf("benchmark: %v", err)
	}
	if result.ExperimentID == "" {
		t.Fatal("expected experiment id")
	}
	if len(result.Trials) != 3 || result.Summary.Repeats != 3 {
		t.Fatalf("unexpected trials: %+v", result)
	}
	seeds := map[int64]bool{}
	for _, trial := range result.Trials {
		seeds[trial.Seed] = true
	}
	if !seeds[100] || !seeds[101] || !seeds[102] {
		t.Fatalf("expected consecutive seeds, got %+v", result.Trials)
	}
}

func TestClientReportMissingRun(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.Report(ctx, ReportRequest{RunID: "no-such-run"})
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
