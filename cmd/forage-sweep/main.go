// Command forage-sweep runs many seeded simulations in parallel and records
// each outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"forage/internal/app"
	"forage/internal/results"
)

type job struct {
	sim  string
	seed int64
}

type outcome struct {
	run results.Run
	err error
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	seeds := flag.Int("seeds", 32, "number of seeds per variant, starting at -seed")
	variants := flag.String("variants", "forage,forage-vision,forage-omniscient", "comma-separated sim variants")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	storeKind := flag.String("store", "memory", "results backend (memory or sqlite)")
	dbPath := flag.String("db", "forage-runs.db", "sqlite database path")
	flag.Parse()

	logger := log.New(os.Stderr, "[forage] ", log.LstdFlags|log.Lmicroseconds)
	ctx := context.Background()

	store, err := results.NewStore(*storeKind, *dbPath)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	if err := store.Init(ctx); err != nil {
		logger.Fatalf("init store: %v", err)
	}
	defer func() {
		if err := results.CloseIfSupported(store); err != nil {
			logger.Printf("close store: %v", err)
		}
	}()

	var sims []string
	for _, v := range strings.Split(*variants, ",") {
		if v = strings.TrimSpace(v); v != "" {
			sims = append(sims, v)
		}
	}

	fmt.Printf("Sweeping %d variants x %d seeds (%d workers, cap %d turns)\n", len(sims), *seeds, *workers, cfg.MaxTurns)

	jobs := make(chan job)
	outcomes := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				run, err := runOne(cfg, j)
				outcomes <- outcome{run: run, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	go func() {
		for _, sim := range sims {
			for i := 0; i < *seeds; i++ {
				jobs <- job{sim: sim, seed: cfg.Seed + int64(i)}
			}
		}
		close(jobs)
	}()

	start := time.Now()
	failed := 0
	for o := range outcomes {
		if o.err != nil {
			failed++
			logger.Printf("run failed: %v", o.err)
			continue
		}
		if err := store.SaveRun(ctx, o.run); err != nil {
			logger.Fatalf("save run: %v", err)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("\nSummary (elapsed %s, %d failed):\n", elapsed.Round(time.Millisecond), failed)
	for _, sim := range sims {
		runs, err := store.ListRuns(ctx, sim)
		if err != nil {
			logger.Fatalf("list runs: %v", err)
		}
		printSummary(sim, runs)
	}
}

func runOne(cfg *app.Config, j job) (results.Run, error) {
	c := *cfg
	c.Sim = j.sim
	c.Seed = j.seed
	c.Scenario = ""
	w, err := app.BuildWorld(&c)
	if err != nil {
		return results.Run{}, fmt.Errorf("%s seed %d: %w", j.sim, j.seed, err)
	}
	if err := app.Play(w, c.MaxTurns, nil); err != nil {
		return results.Run{}, err
	}
	return results.Summarize(w, j.seed), nil
}

func printSummary(sim string, runs []results.Run) {
	if len(runs) == 0 {
		fmt.Printf("%-18s no runs\n", sim)
		return
	}
	finished := 0
	var turns []int
	for _, r := range runs {
		if r.Finished {
			finished++
			turns = append(turns, r.Turns)
		}
	}
	sort.Ints(turns)
	median := "-"
	if len(turns) > 0 {
		median = fmt.Sprint(turns[len(turns)/2])
	}
	fmt.Printf("%-18s finished %d/%d  median turns %s  best %s\n", sim, finished, len(runs), median, bestRun(runs))
}

func bestRun(runs []results.Run) string {
	best := -1
	for i, r := range runs {
		if !r.Finished {
			continue
		}
		if best < 0 || r.Turns < runs[best].Turns {
			best = i
		}
	}
	if best < 0 {
		return "-"
	}
	r := runs[best]
	return fmt.Sprintf("seed %d in %d turns, scores %v", r.Seed, r.Turns, r.Scores)
}
