package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunConfig is the persisted shape of one run's configuration. Strategy
// fields hold the canonical operator names.
type RunConfig struct {
	Representation   string  `json:"representation"`
	Selection        string  `json:"selection"`
	Recombination    string  `json:"recombination"`
	Mutation         string  `json:"mutation"`
	Survivor         string  `json:"survivor"`
	CrossoverProb    float64 `json:"crossover_prob"`
	MutationProb     float64 `json:"mutation_prob"`
	PopulationSize   int     `json:"population_size"`
	EvaluationBudget int     `json:"evaluation_budget"`
	Seed             int64   `json:"seed"`
}

// RunRecord is the persisted outcome of one run.
type RunRecord struct {
	VersionedRecord
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Config         RunConfig `json:"config"`
	NumFitnessEval int       `json:"num_fitness_eval"`
	Convergence    bool      `json:"convergence"`
	NumSolutions   int       `json:"num_solutions"`
	Solution       []int     `json:"solution"`
	BestFitness    float64   `json:"best_fitness"`
	Generations    int       `json:"generations"`
}

// SolutionRecord is one zero-conflict placement found during a run.
type SolutionRecord struct {
	VersionedRecord
	RunID     string `json:"run_id"`
	Placement []int  `json:"placement"`
}
