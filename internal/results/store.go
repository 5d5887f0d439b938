// Package results persists the outcome of batch foraging runs.
package results

import (
	"context"
	"errors"
	"fmt"

	"forage/internal/sims/forage"
)

// ErrNotInitialized is returned by stores used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Run is the summary of one completed (or capped) run.
type Run struct {
	Sim      string `json:"sim"`
	Seed     int64  `json:"seed"`
	Turns    int    `json:"turns"`
	Finished bool   `json:"finished"`

	InitialValue   int   `json:"initial_value"`
	CollectedValue int   `json:"collected_value"`
	Scores         []int `json:"scores"`
}

// Total sums the per-agent scores.
func (r Run) Total() int {
	total := 0
	for _, s := range r.Scores {
		total += s
	}
	return total
}

// Store saves and lists runs. Saving the same sim and seed twice replaces the
// earlier run.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, sim string) ([]Run, error)
}

// NewStore builds a backend by name.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

// Summarize captures a world's outcome as a Run.
func Summarize(w *forage.World, seed int64) Run {
	st := w.State()
	return Run{
		Sim:            w.Name(),
		Seed:           seed,
		Turns:          st.Turn,
		Finished:       st.Status == forage.StatusFinished,
		InitialValue:   st.InitialValue,
		CollectedValue: st.CollectedValue,
		Scores:         w.Scores(),
	}
}
