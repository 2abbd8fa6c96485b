package storage

import (
	"context"

	"queensga/internal/model"
)

// Store defines persistence operations for run outcomes and their traces.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
	SaveSolutions(ctx context.Context, runID string, solutions []model.SolutionRecord) error
	GetSolutions(ctx context.Context, runID string) ([]model.SolutionRecord, bool, error)
}
