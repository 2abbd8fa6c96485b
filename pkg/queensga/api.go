// Package queensga is the embedding API for the eight queens genetic
// solver: configure a run, execute it, and inspect persisted outcomes.
package queensga

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"queensga/internal/model"
	"queensga/internal/sga"
	"queensga/internal/stats"
	"queensga/internal/storage"
)

// ErrRunNotFound reports a run id with no stored record.
var ErrRunNotFound = errors.New("run not found")

const (
	defaultBenchmarksDir = "benchmarks"
	defaultExportsDir    = "exports"
	defaultDBPath        = "queensga.db"
)

type Options struct {
	StoreKind     string
	DBPath        string
	BenchmarksDir string
	ExportsDir    string
}

type Client struct {
	store       storage.Store
	initialized bool

	benchmarksDir string
	exportsDir    string
}

// RunRequest configures one evolutionary run. Zero values select the
// conventional defaults; strategy fields take canonical operator names.
type RunRequest struct {
	Representation string
	Selection      string
	Recombination  string
	Mutation       string
	Survivor       string
	CrossoverProb  float64
	MutationProb   float64
	Population     int
	Budget         int
	Seed           int64
}

type RunSummary struct {
	RunID            string
	ArtifactsDir     string
	NumFitnessEval   int
	Convergence      bool
	NumSolutions     int
	Solution         []int
	BestFitness      float64
	Generations      int
	BestByGeneration []float64
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID          string
	CreatedAtUTC   string
	Representation string
	Selection      string
	Recombination  string
	Mutation       string
	Survivor       string
	Seed           int64
	Population     int
	Convergence    bool
	NumFitnessEval int
	BestFitness    float64
}

type ReportRequest struct {
	RunID  string
	Latest bool
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type SolutionsRequest struct {
	RunID  string
	Latest bool
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

type BenchmarkRequest struct {
	Run     RunRequest
	Repeats int
}

type BenchmarkResult struct {
	ExperimentID string
	Trials       []stats.TrialResult
	Summary      stats.BenchmarkSummary
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	benchmarksDir := opts.BenchmarksDir
	if benchmarksDir == "" {
		benchmarksDir = defaultBenchmarksDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:         store,
		benchmarksDir: benchmarksDir,
		exportsDir:    exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureStore(ctx)
}

// Run executes one evolutionary run, persists its record, fitness history
// and solutions, and writes the run's artifact directory.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	cfg, err := configFromRequest(req)
	if err != nil {
		return RunSummary{}, err
	}

	runner, err := sga.New(cfg)
	if err != nil {
		return RunSummary{}, err
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	now := time.Now().UTC()
	runID := uuid.NewString()

	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}

	runConfig := model.RunConfig{
		Representation:   cfg.Representation.String(),
		Selection:        cfg.Selection.String(),
		Recombination:    cfg.Recombination.String(),
		Mutation:         cfg.Mutation.String(),
		Survivor:         cfg.Survivor.String(),
		CrossoverProb:    cfg.CrossoverProb,
		MutationProb:     cfg.MutationProb,
		PopulationSize:   cfg.PopulationSize,
		EvaluationBudget: cfg.EvaluationBudget,
		Seed:             cfg.Seed,
	}
	if err := c.store.SaveRun(ctx, model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:             runID,
		CreatedAt:      now,
		Config:         runConfig,
		NumFitnessEval: report.NumFitnessEval,
		Convergence:    report.Convergence,
		NumSolutions:   report.NumSolutions,
		Solution:       append([]int(nil), report.Solution...),
		BestFitness:    report.BestFitness,
		Generations:    report.Generations,
	}); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, report.BestByGeneration); err != nil {
		return RunSummary{}, err
	}

	var solutions []model.SolutionRecord
	var solutionBoards [][]int
	if report.Convergence {
		solutions = append(solutions, model.SolutionRecord{
			VersionedRecord: model.VersionedRecord{
				SchemaVersion: storage.CurrentSchemaVersion,
				CodecVersion:  storage.CurrentCodecVersion,
			},
			RunID:     runID,
			Placement: append([]int(nil), report.Solution...),
		})
		solutionBoards = append(solutionBoards, append([]int(nil), report.Solution...))
	}
	if err := c.store.SaveSolutions(ctx, runID, solutions); err != nil {
		return RunSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(c.benchmarksDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:            runID,
			Representation:   runConfig.Representation,
			Selection:        runConfig.Selection,
			Recombination:    runConfig.Recombination,
			Mutation:         runConfig.Mutation,
			Survivor:         runConfig.Survivor,
			CrossoverProb:    runConfig.CrossoverProb,
			MutationProb:     runConfig.MutationProb,
			PopulationSize:   runConfig.PopulationSize,
			EvaluationBudget: runConfig.EvaluationBudget,
			Seed:             runConfig.Seed,
		},
		Report: stats.RunReport{
			NumFitnessEval: report.NumFitnessEval,
			Convergence:    report.Convergence,
			NumSolutions:   report.NumSolutions,
			Solution:       append([]int(nil), report.Solution...),
			BestFitness:    report.BestFitness,
			Generations:    report.Generations,
		},
		BestByGeneration: report.BestByGeneration,
		Solutions:        solutionBoards,
	})
	if err != nil {
		return RunSummary{}, err
	}

	if err := stats.AppendRunIndex(c.benchmarksDir, stats.RunIndexEntry{
		RunID:          runID,
		Representation: runConfig.Representation,
		Selection:      runConfig.Selection,
		Recombination:  runConfig.Recombination,
		Mutation:       runConfig.Mutation,
		Survivor:       runConfig.Survivor,
		PopulationSize: runConfig.PopulationSize,
		Seed:           runConfig.Seed,
		Convergence:    report.Convergence,
		NumFitnessEval: report.NumFitnessEval,
		BestFitness:    report.BestFitness,
		CreatedAtUTC:   now.Format(time.RFC3339Nano),
	}); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:            runID,
		ArtifactsDir:     filepath.Clean(runDir),
		NumFitnessEval:   report.NumFitnessEval,
		Convergence:      report.Convergence,
		NumSolutions:     report.NumSolutions,
		Solution:         append([]int(nil), report.Solution...),
		BestFitness:      report.BestFitness,
		Generations:      report.Generations,
		BestByGeneration: append([]float64(nil), report.BestByGeneration...),
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}

	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunItem{
			RunID:          run.ID,
			CreatedAtUTC:   run.CreatedAt.Format(time.RFC3339Nano),
			Representation: run.Config.Representation,
			Selection:      run.Config.Selection,
			Recombination:  run.Config.Recombination,
			Mutation:       run.Config.Mutation,
			Survivor:       run.Config.Survivor,
			Seed:           run.Config.Seed,
			Population:     run.Config.PopulationSize,
			Convergence:    run.Convergence,
			NumFitnessEval: run.NumFitnessEval,
			BestFitness:    run.BestFitness,
		})
	}
	return out, nil
}

func (c *Client) Report(ctx context.Context, req ReportRequest) (RunSummary, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return RunSummary{}, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return RunSummary{}, err
	}
	if !ok {
		return RunSummary{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	return RunSummary{
		RunID:          run.ID,
		NumFitnessEval: run.NumFitnessEval,
		Convergence:    run.Convergence,
		NumSolutions:   run.NumSolutions,
		Solution:       append([]int(nil), run.Solution...),
		BestFitness:    run.BestFitness,
		Generations:    run.Generations,
	}, nil
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no fitness history for %s", ErrRunNotFound, runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return append([]float64(nil), history...), nil
}

func (c *Client) Solutions(ctx context.Context, req SolutionsRequest) ([][]int, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	solutions, ok, err := c.store.GetSolutions(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no solutions for %s", ErrRunNotFound, runID)
	}

	out := make([][]int, 0, len(solutions))
	for _, solution := range solutions {
		out = append(out, append([]int(nil), solution.Placement...))
	}
	return out, nil
}

func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	exportedDir, err := stats.ExportRunArtifacts(c.benchmarksDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

// Benchmark repeats one configuration with consecutive seeds and aggregates
// the outcomes into an experiment record.
func (c *Client) Benchmark(ctx context.Context, req BenchmarkRequest) (BenchmarkResult, error) {
	if req.Repeats <= 0 {
		req.Repeats = 10
	}

	started := time.Now().UTC()
	experimentID := "exp-" + uuid.NewString()

	trials := make([]stats.TrialResult, 0, req.Repeats)
	for i := 0; i < req.Repeats; i++ {
		trialReq := req.Run
		trialReq.Seed = req.Run.Seed + int64(i)
		summary, err := c.Run(ctx, trialReq)
		if err != nil {
			return BenchmarkResult{}, fmt.Errorf("trial %d: %w", i+1, err)
		}
		trials = append(trials, stats.TrialResult{
			RunID:          summary.RunID,
			Seed:           trialReq.Seed,
			Converged:      summary.Convergence,
			NumFitnessEval: summary.NumFitnessEval,
			Generations:    summary.Generations,
			BestFitness:    summary.BestFitness,
		})
	}

	summary := stats.Summarize(trials)
	cfg, err := configFromRequest(req.Run)
	if err != nil {
		return BenchmarkResult{}, err
	}
	if err := stats.WriteBenchmarkExperiment(c.benchmarksDir, stats.BenchmarkExperiment{
		ID: experimentID,
		Config: stats.RunConfig{
			RunID:            experimentID,
			Representation:   cfg.Representation.String(),
			Selection:        cfg.Selection.String(),
			Recombination:    cfg.Recombination.String(),
			Mutation:         cfg.Mutation.String(),
			Survivor:         cfg.Survivor.String(),
			CrossoverProb:    cfg.CrossoverProb,
			MutationProb:     cfg.MutationProb,
			PopulationSize:   cfg.PopulationSize,
			EvaluationBudget: cfg.EvaluationBudget,
			Seed:             cfg.Seed,
		},
		Repeats:        req.Repeats,
		StartedAtUTC:   started.Format(time.RFC3339Nano),
		CompletedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
		Trials:         trials,
		Summary:        summary,
	}); err != nil {
		return BenchmarkResult{}, err
	}

	return BenchmarkResult{
		ExperimentID: experimentID,
		Trials:       trials,
		Summary:      summary,
	}, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

func (c *Client) resolveRunID(runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("run id or latest is required")
	}

	entries, err := stats.ListRunIndex(c.benchmarksDir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New("no runs available")
	}
	return entries[0].RunID, nil
}

func configFromRequest(req RunRequest) (sga.Config, error) {
	cfg := sga.DefaultConfig()
	if req.CrossoverProb > 0 {
		cfg.CrossoverProb = req.CrossoverProb
	}
	if req.MutationProb > 0 {
		cfg.MutationProb = req.MutationProb
	}
	if req.Population > 0 {
		cfg.PopulationSize = req.Population
	}
	if req.Budget > 0 {
		cfg.EvaluationBudget = req.Budget
	}
	cfg.Seed = req.Seed

	representation, err := sga.ParseRepresentation(req.Representation)
	if err != nil {
		return sga.Config{}, err
	}
	selection, err := sga.ParseParentSelection(req.Selection)
	if err != nil {
		return sga.Config{}, err
	}
	recombination, err := sga.ParseRecombination(req.Recombination)
	if err != nil {
		return sga.Config{}, err
	}
	mutation, err := sga.ParseMutation(req.Mutation)
	if err != nil {
		return sga.Config{}, err
	}
	survivor, err := sga.ParseSurvivorPolicy(req.Survivor)
	if err != nil {
		return sga.Config{}, err
	}

	cfg.Representation = representation
	cfg.Selection = selection
	cfg.Recombination = recombination
	cfg.Mutation = mutation
	cfg.Survivor = survivor
	return cfg, nil
}
