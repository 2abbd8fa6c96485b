package storage

import (
	"context"
	"testing"
	"time"

	"queensga/internal/model"
)

func testRunRecord(id string, createdAt time.Time) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              id,
		CreatedAt:       createdAt,
		Config: model.RunConfig{
			Representation:   "permutation",
			Selection:        "best_two_of_five",
			Recombination:    "cut_and_crossfill",
			Mutation:         "swap",
			Survivor:         "replace_worst",
			CrossoverProb:    0.9,
			MutationProb:     0.4,
			PopulationSize:   100,
			EvaluationBudget: 10000,
			Seed:             7,
		},
		NumFitnessEval: 4321,
		Convergence:    true,
		NumSolutions:   1,
		Solution:       []int{4, 2, 7, 3, 6, 8, 5, 1},
		BestFitness:    1.0,
		Generations:    211,
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := testRunRecord("run-1", time.Now().UTC())
	if err := store.SaveRun(ctx, input); err != nil {
		t.Fatalf("save run: %v", err)
	}

	output, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if output.ID != "run-1" || !output.Convergence || output.NumFitnessEval != 4321 {
		t.Fatalf("unexpected run: %+v", output)
	}
	if len(output.Solution) != 8 || output.Solution[0] != 4 {
		t.Fatalf("unexpected solution: %v", output.Solution)
	}

	// Mutating the returned record must not affect the stored copy.
	output.Solution[0] = 99
	again, _, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if again.Solution[0] != 4 {
		t.Fatal("stored solution was aliased by the caller's copy")
	}
}

func TestMemoryStoreGetRunMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	_, ok, err := store.GetRun(ctx, "nope")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if ok {
		t.Fatal("expected missing run")
	}
}

func TestMemoryStoreListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveRun(ctx, testRunRecord("run-old", base)); err != nil {
		t.Fatalf("save run: %v", err)
	}
	if err := store.SaveRun(ctx, testRunRecord("run-new", base.Add(time.Hour))); err != nil {
		t.Fatalf("save run: %v", err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-new" || runs[1].ID != "run-old" {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestMemoryStoreFitnessHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := []float64{0.1, 0.2, 0.5, 1.0}
	if err := store.SaveFitnessHistory(ctx, "run-1", input); err != nil {
		t.Fatalf("save history: %v", err)
	}
	output, ok, err := store.GetFitnessHistory(ctx, "run-1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted fitness history")
	}
	if len(output) != len(input) || output[3] != input[3] {
		t.Fatalf("unexpected history: %+v", output)
	}
}

func TestMemoryStoreSolutionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := []model.SolutionRecord{{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "run-1",
		Placement:       []int{4, 2, 7, 3, 6, 8, 5, 1},
	}}
	if err := store.SaveSolutions(ctx, "run-1", input); err != nil {
		t.Fatalf("save solutions: %v", err)
	}
	output, ok, err := store.GetSolutions(ctx, "run-1")
	if err != nil {
		t.Fatalf("get solutions: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted solutions")
	}
	if len(output) != 1 || output[0].Placement[0] != 4 {
		t.Fatalf("unexpected solutions: %+v", output)
	}
}
