package app

import (
	"flag"
	"strconv"
	"time"
)

// Config represents the command-line parameters shared by the entry points.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Scenario string
	Trace    string
	MaxTurns int
	Verbose  bool

	Cols      int
	Rows      int
	Agents    int
	Resources int
	Vision    int
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{Sim: "forage", Scale: 48, TPS: 4, Seed: 42, MaxTurns: 1000}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation variant (forage, forage-vision, forage-omniscient)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "turns per second while autoplaying")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for placement and exploration")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario YAML file (overrides -sim and grid flags)")
	fs.StringVar(&c.Trace, "trace", c.Trace, "write a zstd JSONL turn trace to this path")
	fs.IntVar(&c.MaxTurns, "max-turns", c.MaxTurns, "stop after this many turns")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "print the board after every turn")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns (0 keeps the default)")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows (0 keeps the default)")
	fs.IntVar(&c.Agents, "agents", c.Agents, "number of agents (0 keeps the default)")
	fs.IntVar(&c.Resources, "resources", c.Resources, "number of resources (0 keeps the default)")
	fs.IntVar(&c.Vision, "vision", c.Vision, "vision radius (0 keeps the default)")
}

// SimOptions returns the flag-style map consumed by the sim factories. Unset
// values are omitted so the factory keeps its defaults.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{}
	put := func(key string, v int) {
		if v > 0 {
			opts[key] = strconv.Itoa(v)
		}
	}
	put("cols", c.Cols)
	put("rows", c.Rows)
	put("agents", c.Agents)
	put("resources", c.Resources)
	put("vision", c.Vision)
	return opts
}

// TurnInterval is the autoplay period implied by TPS.
func (c *Config) TurnInterval() time.Duration {
	if c.TPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TPS)
}
