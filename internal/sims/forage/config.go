package forage

import (
	"fmt"
	"strconv"
)

// DefaultMaxValue is the highest value a resource can carry.
const DefaultMaxValue = 3

// Variant selects how far agents can see and what they do when they see nothing.
type Variant uint8

const (
	// VariantExplore limits vision and explores when nothing is visible.
	VariantExplore Variant = iota
	// VariantVision limits vision and idles when nothing is visible.
	VariantVision
	// VariantOmniscient lets every agent see the whole grid.
	VariantOmniscient
)

var variantNames = [...]string{"explore", "vision", "omniscient"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// ParseVariant maps a name back to a Variant.
func ParseVariant(s string) (Variant, error) {
	i, err := lookupName(variantNames[:], "variant", s)
	if err != nil {
		return 0, err
	}
	return Variant(i), nil
}

func lookupName(names []string, kind, s string) (int, error) {
	for i, name := range names {
		if s == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, kind, s)
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText decodes a variant name.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Params holds the population and rule settings of a run.
type Params struct {
	AgentCount    int
	ResourceCount int
	VisionRadius  int

	// MaxValue bounds resource values to 1..MaxValue.
	MaxValue int
	// CoopValue is the smallest value that needs cooperative collection.
	CoopValue int
	// CoopMinAgents is how many adjacent agents a cooperative resource needs.
	CoopMinAgents int

	// PlacementAttempts bounds the random draws spent on each placement.
	PlacementAttempts int
}

// Config controls the board dimensions, seed and rules.
type Config struct {
	Columns int
	Rows    int

	Seed    int64
	Variant Variant

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Columns: 12,
		Rows:    8,
		Seed:    42,
		Variant: VariantExplore,
		Params: Params{
			AgentCount:        3,
			ResourceCount:     8,
			VisionRadius:      2,
			MaxValue:          DefaultMaxValue,
			CoopValue:         3,
			CoopMinAgents:     2,
			PlacementAttempts: 1000,
		},
	}
}

// Radius returns the effective vision radius for the variant.
func (c Config) Radius() int {
	if c.Variant == VariantOmniscient {
		return Unlimited
	}
	return c.Params.VisionRadius
}

// Validate reports configurations that cannot produce a world.
func (c Config) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, c.Columns, c.Rows)
	}
	p := c.Params
	if p.AgentCount <= 0 {
		return fmt.Errorf("%w: agent count %d must be positive", ErrInvalidConfig, p.AgentCount)
	}
	if p.ResourceCount <= 0 {
		return fmt.Errorf("%w: resource count %d must be positive", ErrInvalidConfig, p.ResourceCount)
	}
	if c.Variant != VariantOmniscient && p.VisionRadius <= 0 {
		return fmt.Errorf("%w: vision radius %d must be positive", ErrInvalidConfig, p.VisionRadius)
	}
	if p.MaxValue <= 0 {
		return fmt.Errorf("%w: max value %d must be positive", ErrInvalidConfig, p.MaxValue)
	}
	if p.CoopValue <= 0 {
		return fmt.Errorf("%w: cooperative value %d must be positive", ErrInvalidConfig, p.CoopValue)
	}
	if p.CoopMinAgents <= 0 {
		return fmt.Errorf("%w: cooperative agent count %d must be positive", ErrInvalidConfig, p.CoopMinAgents)
	}
	if p.PlacementAttempts <= 0 {
		return fmt.Errorf("%w: placement attempts %d must be positive", ErrInvalidConfig, p.PlacementAttempts)
	}
	if cells := c.Columns * c.Rows; p.AgentCount+p.ResourceCount > cells {
		return fmt.Errorf("%w: %d agents and %d resources do not fit on %d cells",
			ErrInvalidConfig, p.AgentCount, p.ResourceCount, cells)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Columns = parsed
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["variant"]; ok {
		if parsed, err := ParseVariant(v); err == nil {
			c.Variant = parsed
		}
	}
	if v, ok := cfg["agents"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.AgentCount = parsed
		}
	}
	if v, ok := cfg["resources"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ResourceCount = parsed
		}
	}
	if v, ok := cfg["vision"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.VisionRadius = parsed
		}
	}
	if v, ok := cfg["coop_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.CoopMinAgents = parsed
		}
	}
	if v, ok := cfg["attempts"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.PlacementAttempts = parsed
		}
	}
	return c
}
