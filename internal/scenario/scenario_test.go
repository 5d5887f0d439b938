package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"forage/internal/sims/forage"
)

func TestParseDefaultsAndOverrides(t *testing.T) {
	sc, err := Parse([]byte(`
name: wide
columns: 20
rows: 10
seed: 5
variant: vision
agents: 4
resources: 10
vision_radius: 3
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := sc.Config
	if cfg.Columns != 20 || cfg.Rows != 10 || cfg.Seed != 5 || cfg.Variant != forage.VariantVision {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Params.AgentCount != 4 || cfg.Params.ResourceCount != 10 || cfg.Params.VisionRadius != 3 {
		t.Fatalf("unexpected params %+v", cfg.Params)
	}
	if cfg.Params.CoopMinAgents != 2 {
		t.Fatalf("unset field should keep default, got %d", cfg.Params.CoopMinAgents)
	}
	if sc.Layout != nil {
		t.Fatal("no layout expected")
	}
}

func TestParseLayoutBuildsPinnedWorld(t *testing.T) {
	sc, err := Parse([]byte(`
columns: 12
rows: 8
layout:
  agents: [[0, 0]]
  resources:
    - at: [0, 1]
      value: 2
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w, err := sc.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	w.AdvanceTurn()
	if w.Status() != forage.StatusFinished || w.Scores()[0] != 2 {
		t.Fatalf("expected finished with score 2, got %v %v", w.Status(), w.Scores())
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want error
	}{
		"variant":     {raw: "variant: psychic", want: forage.ErrInvalidConfig},
		"crowded":     {raw: "columns: 2\nrows: 2\nagents: 3\nresources: 3", want: forage.ErrInvalidConfig},
		"value":       {raw: "layout:\n  agents: [[0,0]]\n  resources:\n    - at: [1,1]\n      value: 9", want: forage.ErrInvalidValue},
		"outOfBounds": {raw: "columns: 4\nrows: 4\nlayout:\n  agents: [[5,0]]", want: forage.ErrOutOfBounds},
	}
	for name, tc := range cases {
		_, err := Parse([]byte(tc.raw))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
	if _, err := Parse([]byte("columns: [")); err == nil {
		t.Fatal("malformed YAML should fail")
	}
}

func TestLoadBundledScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenarios", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no bundled scenarios found")
	}
	for _, p := range paths {
		sc, err := Load(p)
		if err != nil {
			t.Fatalf("load %s: %v", p, err)
		}
		if _, err := sc.Build(); err != nil {
			t.Fatalf("build %s: %v", p, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
