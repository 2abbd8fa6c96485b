package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

const benchmarkExperimentsDir = "experiments"

// TrialResult is the outcome of one benchmark repetition.
type TrialResult struct {
	RunID          string  `json:"run_id"`
	Seed           int64   `json:"seed"`
	Converged      bool    `json:"converged"`
	NumFitnessEval int     `json:"num_fitness_eval"`
	Generations    int     `json:"generations"`
	BestFitness    float64 `json:"best_fitness"`
}

// BenchmarkSummary aggregates repeated runs of one configuration.
type BenchmarkSummary struct {
	Repeats         int     `json:"repeats"`
	Converged       int     `json:"converged"`
	ConvergenceRate float64 `json:"convergence_rate"`
	EvalMean        float64 `json:"eval_mean"`
	EvalStd         float64 `json:"eval_std"`
	EvalMin         int     `json:"eval_min"`
	EvalMax         int     `json:"eval_max"`
	// SolvedEvalMean averages evaluation counts over converged trials only.
	SolvedEvalMean float64 `json:"solved_eval_mean"`
	BestFitness    float64 `json:"best_fitness"`
}

// BenchmarkExperiment records one benchmark invocation end to end.
type BenchmarkExperiment struct {
	ID             string           `json:"id"`
	Config         RunConfig        `json:"config"`
	Repeats        int              `json:"repeats"`
	StartedAtUTC   string           `json:"started_at_utc,omitempty"`
	CompletedAtUTC string           `json:"completed_at_utc,omitempty"`
	Trials         []TrialResult    `json:"trials,omitempty"`
	Summary        BenchmarkSummary `json:"summary"`
}

// Summarize folds trial results into aggregate statistics.
func Summarize(trials []TrialResult) BenchmarkSummary {
	summary := BenchmarkSummary{Repeats: len(trials)}
	if len(trials) == 0 {
		return summary
	}

	summary.EvalMin = trials[0].NumFitnessEval
	summary.EvalMax = trials[0].NumFitnessEval
	var evalSum, solvedSum float64
	for _, trial := range trials {
		evalSum += float64(trial.NumFitnessEval)
		if trial.NumFitnessEval < summary.EvalMin {
			summary.EvalMin = trial.NumFitnessEval
		}
		if trial.NumFitnessEval > summary.EvalMax {
			summary.EvalMax = trial.NumFitnessEval
		}
		if trial.Converged {
			summary.Converged++
			solvedSum += float64(trial.NumFitnessEval)
		}
		if trial.BestFitness > summary.BestFitness {
			summary.BestFitness = trial.BestFitness
		}
	}
	summary.EvalMean = evalSum / float64(len(trials))
	summary.ConvergenceRate = float64(summary.Converged) / float64(len(trials))
	if summary.Converged > 0 {
		summary.SolvedEvalMean = solvedSum / float64(summary.Converged)
	}

	var variance float64
	for _, trial := range trials {
		diff := float64(trial.NumFitnessEval) - summary.EvalMean
		variance += diff * diff
	}
	summary.EvalStd = math.Sqrt(variance / float64(len(trials)))
	return summary
}

func WriteBenchmarkExperiment(baseDir string, exp BenchmarkExperiment) error {
	if exp.ID == "" {
		return fmt.Errorf("experiment id is required")
	}
	path := benchmarkExperimentPath(baseDir, exp.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeJSON(path, exp)
}

func ReadBenchmarkExperiment(baseDir, id string) (BenchmarkExperiment, bool, error) {
	if id == "" {
		return BenchmarkExperiment{}, false, fmt.Errorf("experiment id is required")
	}
	path := benchmarkExperimentPath(baseDir, id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BenchmarkExperiment{}, false, nil
		}
		return BenchmarkExperiment{}, false, err
	}
	var exp BenchmarkExperiment
	if err := json.Unmarshal(data, &exp); err != nil {
		return BenchmarkExperiment{}, false, err
	}
	return exp, true, nil
}

func ListBenchmarkExperiments(baseDir string) ([]BenchmarkExperiment, error) {
	root := filepath.Join(baseDir, benchmarkExperimentsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []BenchmarkExperiment{}, nil
		}
		return nil, err
	}

	exps := make([]BenchmarkExperiment, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exp, ok, err := ReadBenchmarkExperiment(baseDir, entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		exps = append(exps, exp)
	}
	sort.Slice(exps, func(i, j int) bool {
		switch {
		case exps[i].StartedAtUTC == exps[j].StartedAtUTC:
			return exps[i].ID < exps[j].ID
		case exps[i].StartedAtUTC == "":
			return false
		case exps[j].StartedAtUTC == "":
			return true
		default:
			return exps[i].StartedAtUTC > exps[j].StartedAtUTC
		}
	})
	return exps, nil
}

func benchmarkExperimentPath(baseDir, id string) string {
	return filepath.Join(baseDir, benchmarkExperimentsDir, id, "experiment.json")
}
