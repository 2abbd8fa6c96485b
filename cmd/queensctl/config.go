package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	api "queensga/pkg/queensga"
)

// envConfig carries process-level defaults, overridable per command flag.
type envConfig struct {
	Store         string `env:"QUEENSCTL_STORE"`
	DBPath        string `env:"QUEENSCTL_DB_PATH" envDefault:"queensga.db"`
	BenchmarksDir string `env:"QUEENSCTL_BENCHMARKS_DIR" envDefault:"benchmarks"`
	ExportsDir    string `env:"QUEENSCTL_EXPORTS_DIR" envDefault:"exports"`
}

func loadEnvConfig() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func loadRunRequestFromConfig(path string) (api.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return api.RunRequest{}, err
	}

	var req api.RunRequest
	if v, ok := asString(raw["representation"]); ok {
		req.Representation = v
	}
	if v, ok := asString(raw["selection"]); ok {
		req.Selection = v
	}
	if v, ok := asString(raw["recombination"]); ok {
		req.Recombination = v
	}
	if v, ok := asString(raw["mutation"]); ok {
		req.Mutation = v
	}
	if v, ok := asString(raw["survivor"]); ok {
		req.Survivor = v
	}
	if v, ok := asFloat64(raw["crossover_prob"]); ok {
		req.CrossoverProb = v
	}
	if v, ok := asFloat64(raw["mutation_prob"]); ok {
		req.MutationProb = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["evaluation_budget"]); ok {
		req.Budget = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (api.RunRequest, error) {
	if configPath == "" {
		return api.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return api.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
