package storage

import (
	"context"
	"sort"
	"sync"

	"queensga/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	history     map[string][]float64
	solutions   map[string][]model.SolutionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.history = make(map[string][]float64)
	s.solutions = make(map[string][]model.SolutionRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.Solution = append([]int(nil), run.Solution...)
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	run.Solution = append([]int(nil), run.Solution...)
	return run, true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		run.Solution = append([]int(nil), run.Solution...)
		runs = append(runs, run)
	}
	// Newest first; ties break on id for a stable listing.
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func (s *MemoryStore) SaveFitnessHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := append([]float64(nil), history...)
	s.history[runID] = copied
	return nil
}

func (s *MemoryStore) GetFitnessHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	copied := append([]float64(nil), history...)
	return copied, true, nil
}

func (s *MemoryStore) SaveSolutions(_ context.Context, runID string, solutions []model.SolutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.SolutionRecord, 0, len(solutions))
	for _, solution := range solutions {
		solution.Placement = append([]int(nil), solution.Placement...)
		copied = append(copied, solution)
	}
	s.solutions[runID] = copied
	return nil
}

func (s *MemoryStore) GetSolutions(_ context.Context, runID string) ([]model.SolutionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	solutions, ok := s.solutions[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.SolutionRecord, 0, len(solutions))
	for _, solution := range solutions {
		solution.Placement = append([]int(nil), solution.Placement...)
		copied = append(copied, solution)
	}
	return copied, true, nil
}
