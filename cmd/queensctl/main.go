package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"queensga/internal/stats"
	"queensga/internal/storage"
	api "queensga/pkg/queensga"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "benchmark":
		return runBenchmark(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "report":
		return runReport(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "solutions":
		return runSolutions(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: queensctl <init|reset|run|benchmark|runs|report|fitness|solutions|export> [flags]", msg)
}

type storeFlags struct {
	kind   *string
	dbPath *string
}

func addStoreFlags(fs *flag.FlagSet, env envConfig) storeFlags {
	defaultKind := env.Store
	if defaultKind == "" {
		defaultKind = storage.DefaultStoreKind()
	}
	return storeFlags{
		kind:   fs.String("store", defaultKind, "store backend: memory|sqlite"),
		dbPath: fs.String("db-path", env.DBPath, "sqlite database path"),
	}
}

func newClient(env envConfig, store storeFlags) (*api.Client, error) {
	return api.New(api.Options{
		StoreKind:     *store.kind,
		DBPath:        *store.dbPath,
		BenchmarksDir: env.BenchmarksDir,
		ExportsDir:    env.ExportsDir,
	})
}

type runFlags struct {
	configPath     *string
	representation *string
	selection      *string
	recombination  *string
	mutation       *string
	survivor       *string
	crossoverProb  *float64
	mutationProb   *float64
	population     *int
	budget         *int
	seed           *int64
}

func addRunFlags(fs *flag.FlagSet) runFlags {
	return runFlags{
		configPath:     fs.String("config", "", "optional run config JSON path"),
		representation: fs.String("representation", "", "genome representation: permutation|binary"),
		selection:      fs.String("selection", "", "parent selection: best_two_of_five|roulette"),
		recombination:  fs.String("recombination", "", "recombination: cut_and_crossfill|pmx|edge_recombination|cycle"),
		mutation:       fs.String("mutation", "", "mutation: swap|insert|scramble|inversion"),
		survivor:       fs.String("survivor", "", "survivor selection: replace_worst|replace_parents"),
		crossoverProb:  fs.Float64("crossover-prob", 0, "crossover probability (0 uses default 0.9)"),
		mutationProb:   fs.Float64("mutation-prob", 0, "mutation probability (0 uses default 0.4)"),
		population:     fs.Int("pop", 0, "population size (0 uses default 100)"),
		budget:         fs.Int("budget", 0, "fitness evaluation budget (0 uses default 10000)"),
		seed:           fs.Int64("seed", 0, "rng seed"),
	}
}

// buildRunRequest layers explicit flags over the optional config file.
func buildRunRequest(fs *flag.FlagSet, flags runFlags) (api.RunRequest, error) {
	req, err := loadOrDefaultRunRequest(*flags.configPath)
	if err != nil {
		return api.RunRequest{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if set["representation"] {
		req.Representation = *flags.representation
	}
	if set["selection"] {
		req.Selection = *flags.selection
	}
	if set["recombination"] {
		req.Recombination = *flags.recombination
	}
	if set["mutation"] {
		req.Mutation = *flags.mutation
	}
	if set["survivor"] {
		req.Survivor = *flags.survivor
	}
	if set["crossover-prob"] {
		req.CrossoverProb = *flags.crossoverProb
	}
	if set["mutation-prob"] {
		req.MutationProb = *flags.mutationProb
	}
	if set["pop"] {
		req.Population = *flags.population
	}
	if set["budget"] {
		req.Budget = *flags.budget
	}
	if set["seed"] {
		req.Seed = *flags.seed
	}
	return req, nil
}

func runInit(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *store.kind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *store.kind == "sqlite" {
		if err := os.Remove(*store.dbPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *store.kind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	flags := addRunFlags(fs)
	jsonOut := fs.Bool("json", false, "emit the run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := buildRunRequest(fs, flags)
	if err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(toRunSummaryJSON(summary))
	}
	fmt.Printf("run id=%s convergence=%t num_fitness_eval=%d num_solutions=%d best_fitness=%.6f generations=%d\n",
		summary.RunID, summary.Convergence, summary.NumFitnessEval, summary.NumSolutions, summary.BestFitness, summary.Generations)
	fmt.Printf("solution=%v artifacts=%s\n", summary.Solution, summary.ArtifactsDir)
	return nil
}

func runBenchmark(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	flags := addRunFlags(fs)
	repeats := fs.Int("repeats", 10, "number of repeated runs with consecutive seeds")
	jsonOut := fs.Bool("json", false, "emit the benchmark summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := buildRunRequest(fs, flags)
	if err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	result, err := client.Benchmark(ctx, api.BenchmarkRequest{Run: req, Repeats: *repeats})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(struct {
			ExperimentID string                 `json:"experiment_id"`
			Trials       []stats.TrialResult    `json:"trials"`
			Summary      stats.BenchmarkSummary `json:"summary"`
		}{result.ExperimentID, result.Trials, result.Summary})
	}
	s := result.Summary
	fmt.Printf("benchmark id=%s repeats=%d converged=%d/%d rate=%.4f eval_mean=%.2f eval_std=%.2f eval_min=%d eval_max=%d\n",
		result.ExperimentID, s.Repeats, s.Converged, s.Repeats, s.ConvergenceRate, s.EvalMean, s.EvalStd, s.EvalMin, s.EvalMax)
	if s.Converged > 0 {
		fmt.Printf("solved_eval_mean=%.2f\n", s.SolvedEvalMean)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.Runs(ctx, api.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}

	if *jsonOut {
		out := make([]runItemJSON, 0, len(items))
		for _, item := range items {
			out = append(out, runItemJSON{
				RunID:          item.RunID,
				CreatedAtUTC:   item.CreatedAtUTC,
				Representation: item.Representation,
				Selection:      item.Selection,
				Recombination:  item.Recombination,
				Mutation:       item.Mutation,
				Survivor:       item.Survivor,
				Seed:           item.Seed,
				Population:     item.Population,
				Convergence:    item.Convergence,
				NumFitnessEval: item.NumFitnessEval,
				BestFitness:    item.BestFitness,
			})
		}
		return printJSON(out)
	}
	for _, item := range items {
		fmt.Printf("run id=%s created=%s selection=%s recombination=%s mutation=%s survivor=%s seed=%d convergence=%t evals=%d best=%.6f\n",
			item.RunID, item.CreatedAtUTC, item.Selection, item.Recombination, item.Mutation, item.Survivor,
			item.Seed, item.Convergence, item.NumFitnessEval, item.BestFitness)
	}
	return nil
}

func runReport(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "report the most recent run from the run index")
	jsonOut := fs.Bool("json", false, "emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	report, err := client.Report(ctx, api.ReportRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(toRunSummaryJSON(report))
	}
	fmt.Printf("run id=%s convergence=%t num_fitness_eval=%d num_solutions=%d best_fitness=%.6f generations=%d solution=%v\n",
		report.RunID, report.Convergence, report.NumFitnessEval, report.NumSolutions, report.BestFitness, report.Generations, report.Solution)
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show fitness history for the most recent run from the run index")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit fitness history as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, api.FitnessHistoryRequest{RunID: *runID, Latest: *latest, Limit: max(*limit, 0)})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(history)
	}
	for i, best := range history {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i, best)
	}
	return nil
}

func runSolutions(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("solutions", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show solutions for the most recent run from the run index")
	jsonOut := fs.Bool("json", false, "emit solutions as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	solutions, err := client.Solutions(ctx, api.SolutionsRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(solutions)
	}
	if len(solutions) == 0 {
		fmt.Println("no solutions recorded")
		return nil
	}
	for _, solution := range solutions {
		fmt.Printf("solution=%v\n", solution)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	store := addStoreFlags(fs, env)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run from the run index")
	outDir := fs.String("out", "", "output directory (defaults to the exports dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(env, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	exported, err := client.Export(ctx, api.ExportRequest{RunID: *runID, Latest: *latest, OutDir: *outDir})
	if err != nil {
		return err
	}
	fmt.Printf("exported run id=%s dir=%s\n", exported.RunID, exported.Directory)
	return nil
}

type runSummaryJSON struct {
	RunID            string    `json:"run_id"`
	ArtifactsDir     string    `json:"artifacts_dir,omitempty"`
	NumFitnessEval   int       `json:"num_fitness_eval"`
	Convergence      bool      `json:"convergence"`
	NumSolutions     int       `json:"num_solutions"`
	Solution         []int     `json:"solution"`
	BestFitness      float64   `json:"best_fitness"`
	Generations      int       `json:"generations"`
	BestByGeneration []float64 `json:"best_by_generation,omitempty"`
}

func toRunSummaryJSON(summary api.RunSummary) runSummaryJSON {
	return runSummaryJSON{
		RunID:            summary.RunID,
		ArtifactsDir:     summary.ArtifactsDir,
		NumFitnessEval:   summary.NumFitnessEval,
		Convergence:      summary.Convergence,
		NumSolutions:     summary.NumSolutions,
		Solution:         summary.Solution,
		BestFitness:      summary.BestFitness,
		Generations:      summary.Generations,
		BestByGeneration: summary.BestByGeneration,
	}
}

type runItemJSON struct {
	RunID          string  `json:"run_id"`
	CreatedAtUTC   string  `json:"created_at_utc"`
	Representation string  `json:"representation"`
	Selection      string  `json:"selection"`
	Recombination  string  `json:"recombination"`
	Mutation       string  `json:"mutation"`
	Survivor       string  `json:"survivor"`
	Seed           int64   `json:"seed"`
	Population     int     `json:"population_size"`
	Convergence    bool    `json:"convergence"`
	NumFitnessEval int     `json:"num_fitness_eval"`
	BestFitness    float64 `json:"best_fitness"`
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
