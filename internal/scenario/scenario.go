// Package scenario loads foraging runs described in YAML files.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"forage/internal/sims/forage"
)

// File is the on-disk scenario shape. Zero fields keep the defaults.
type File struct {
	Name    string `yaml:"name"`
	Columns int    `yaml:"columns"`
	Rows    int    `yaml:"rows"`
	Seed    int64  `yaml:"seed"`
	Variant string `yaml:"variant"`

	Agents        int `yaml:"agents"`
	Resources     int `yaml:"resources"`
	VisionRadius  int `yaml:"vision_radius"`
	CoopMinAgents int `yaml:"coop_min_agents"`
	Attempts      int `yaml:"placement_attempts"`

	Layout *LayoutFile `yaml:"layout"`
}

// LayoutFile pins the starting arrangement.
type LayoutFile struct {
	Agents    [][2]int       `yaml:"agents"`
	Resources []ResourceFile `yaml:"resources"`
}

// ResourceFile is one pinned resource given as [row, col] plus value.
type ResourceFile struct {
	At    [2]int `yaml:"at"`
	Value int    `yaml:"value"`
}

// Scenario is a parsed, validated scenario.
type Scenario struct {
	Name   string
	Config forage.Config
	Layout *forage.Layout
}

// Load reads and parses a scenario file.
func Load(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates scenario YAML.
func Parse(raw []byte) (Scenario, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	return f.Scenario()
}

// Scenario converts the file into engine settings.
func (f File) Scenario() (Scenario, error) {
	cfg := forage.DefaultConfig()
	if f.Columns != 0 {
		cfg.Columns = f.Columns
	}
	if f.Rows != 0 {
		cfg.Rows = f.Rows
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if f.Variant != "" {
		v, err := forage.ParseVariant(f.Variant)
		if err != nil {
			return Scenario{}, err
		}
		cfg.Variant = v
	}
	if f.Agents != 0 {
		cfg.Params.AgentCount = f.Agents
	}
	if f.Resources != 0 {
		cfg.Params.ResourceCount = f.Resources
	}
	if f.VisionRadius != 0 {
		cfg.Params.VisionRadius = f.VisionRadius
	}
	if f.CoopMinAgents != 0 {
		cfg.Params.CoopMinAgents = f.CoopMinAgents
	}
	if f.Attempts != 0 {
		cfg.Params.PlacementAttempts = f.Attempts
	}

	sc := Scenario{Name: f.Name, Config: cfg}
	if f.Layout != nil {
		layout, err := f.Layout.layout(cfg)
		if err != nil {
			return Scenario{}, fmt.Errorf("invalid layout: %w", err)
		}
		sc.Layout = &layout
		cfg.Params.AgentCount = len(layout.Agents)
		cfg.Params.ResourceCount = len(layout.Resources)
		sc.Config = cfg
	}
	if err := validate(sc); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario: %w", err)
	}
	return sc, nil
}

func (l LayoutFile) layout(cfg forage.Config) (forage.Layout, error) {
	var out forage.Layout
	for _, a := range l.Agents {
		out.Agents = append(out.Agents, forage.Pos{Row: a[0], Col: a[1]})
	}
	for _, r := range l.Resources {
		if r.Value < 1 || r.Value > cfg.Params.MaxValue {
			return forage.Layout{}, fmt.Errorf("%w: %d at %v", forage.ErrInvalidValue, r.Value, r.At)
		}
		out.Resources = append(out.Resources, forage.ResourceSpec{Pos: forage.Pos{Row: r.At[0], Col: r.At[1]}, Value: r.Value})
	}
	if len(out.Agents) == 0 {
		return forage.Layout{}, errors.New("layout needs at least one agent")
	}
	return out, nil
}

func validate(sc Scenario) error {
	if sc.Layout == nil {
		return sc.Config.Validate()
	}
	cfg := sc.Config
	if cfg.Columns <= 0 || cfg.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be positive", forage.ErrInvalidConfig, cfg.Columns, cfg.Rows)
	}
	for _, p := range sc.Layout.Agents {
		if p.Row < 0 || p.Row >= cfg.Rows || p.Col < 0 || p.Col >= cfg.Columns {
			return fmt.Errorf("agent at %v: %w", p, forage.ErrOutOfBounds)
		}
	}
	for _, r := range sc.Layout.Resources {
		if r.Pos.Row < 0 || r.Pos.Row >= cfg.Rows || r.Pos.Col < 0 || r.Pos.Col >= cfg.Columns {
			return fmt.Errorf("resource at %v: %w", r.Pos, forage.ErrOutOfBounds)
		}
	}
	return nil
}

// Build constructs and places the world described by the scenario.
func (sc Scenario) Build() (*forage.World, error) {
	w := forage.NewWithConfig(sc.Config)
	if sc.Layout != nil {
		if err := w.ResetLayout(*sc.Layout); err != nil {
			return nil, err
		}
		return w, nil
	}
	if err := w.Reset(sc.Config.Seed); err != nil {
		return nil, err
	}
	return w, nil
}
