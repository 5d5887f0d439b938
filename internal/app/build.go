package app

import (
	"fmt"

	"forage/internal/core"
	"forage/internal/scenario"
	"forage/internal/sims/forage"
)

// BuildWorld constructs and places the world selected by the config: the
// scenario file when one is given, otherwise the named sim variant.
func BuildWorld(c *Config) (*forage.World, error) {
	if c.Scenario != "" {
		sc, err := scenario.Load(c.Scenario)
		if err != nil {
			return nil, err
		}
		return sc.Build()
	}
	factory, ok := core.Lookup(c.Sim)
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", c.Sim)
	}
	w, ok := factory(c.SimOptions()).(*forage.World)
	if !ok {
		return nil, fmt.Errorf("sim %q is not a foraging world", c.Sim)
	}
	if err := w.Reset(c.Seed); err != nil {
		return nil, err
	}
	return w, nil
}
