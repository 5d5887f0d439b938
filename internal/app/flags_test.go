package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"forage/internal/sims/forage"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-sim", "forage-vision", "-seed", "9", "-tps", "10", "-cols", "20", "-agents", "5", "-v"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim != "forage-vision" || cfg.Seed != 9 || !cfg.Verbose {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TurnInterval() != 100*time.Millisecond {
		t.Fatalf("unexpected interval %v", cfg.TurnInterval())
	}
	opts := cfg.SimOptions()
	if opts["cols"] != "20" || opts["agents"] != "5" {
		t.Fatalf("unexpected options %v", opts)
	}
	if _, ok := opts["rows"]; ok {
		t.Fatal("unset rows should be omitted")
	}
}

func TestBuildWorldFromSim(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "forage-omniscient"
	cfg.Cols = 6
	cfg.Rows = 5
	w, err := BuildWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if w.Config().Variant != forage.VariantOmniscient || w.Size().W != 6 || w.Size().H != 5 {
		t.Fatalf("unexpected world %s %+v", w.Name(), w.Size())
	}
	if w.Status() != forage.StatusRunning {
		t.Fatalf("expected running world, got %v", w.Status())
	}

	cfg.Sim = "life"
	if _, err := BuildWorld(cfg); err == nil {
		t.Fatal("unknown sim should fail")
	}
}

func TestBuildWorldFromScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	raw := "layout:\n  agents: [[0, 0]]\n  resources:\n    - at: [0, 1]\n      value: 2\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfig()
	cfg.Scenario = path
	w, err := BuildWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if w.Board().AgentCount() != 1 || w.Board().ResourceCount() != 1 {
		t.Fatalf("scenario layout not applied")
	}
}

func TestPlayStopsAtCapOrFinish(t *testing.T) {
	w := forage.NewWithConfig(forage.DefaultConfig())
	if err := w.Reset(2); err != nil {
		t.Fatal(err)
	}
	calls := 0
	if err := Play(w, 3, func(forage.TurnReport) error { calls++; return nil }); err != nil {
		t.Fatal(err)
	}
	if w.Status() == forage.StatusRunning && (w.Turn() != 3 || calls != 3) {
		t.Fatalf("expected cap at 3 turns, got turn %d calls %d", w.Turn(), calls)
	}

	single := forage.NewWithConfig(forage.DefaultConfig())
	err := single.ResetLayout(forage.Layout{
		Agents:    []forage.Pos{{Row: 0, Col: 0}},
		Resources: []forage.ResourceSpec{{Pos: forage.Pos{Row: 0, Col: 1}, Value: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := Play(single, 0, nil); err != nil {
		t.Fatal(err)
	}
	if single.Status() != forage.StatusFinished || single.Turn() != 1 {
		t.Fatalf("expected finish on turn 1, got %v at %d", single.Status(), single.Turn())
	}
}
