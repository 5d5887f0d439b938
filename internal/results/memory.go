package results

import (
	"context"
	"slices"
	"sync"
)

type runKey struct {
	sim  string
	seed int64
}

// MemoryStore keeps runs in process.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[runKey]Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[runKey]Run)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	run.Scores = slices.Clone(run.Scores)
	s.runs[runKey{sim: run.Sim, seed: run.Seed}] = run
	return nil
}

// ListRuns returns the runs of sim ordered by seed. An empty sim lists all.
func (s *MemoryStore) ListRuns(_ context.Context, sim string) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	var out []Run
	for k, r := range s.runs {
		if sim != "" && k.sim != sim {
			continue
		}
		r.Scores = slices.Clone(r.Scores)
		out = append(out, r)
	}
	slices.SortFunc(out, compareRuns)
	return out, nil
}

func compareRuns(a, b Run) int {
	if a.Sim != b.Sim {
		if a.Sim < b.Sim {
			return -1
		}
		return 1
	}
	switch {
	case a.Seed < b.Seed:
		return -1
	case a.Seed > b.Seed:
		return 1
	}
	return 0
}
