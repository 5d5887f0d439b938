package forage

import "math/rand/v2"

// ResourceSpec is an explicit resource placement.
type ResourceSpec struct {
	Pos   Pos `json:"pos"`
	Value int `json:"value"`
}

// Layout is an explicit starting arrangement. Agent ids follow slice order.
type Layout struct {
	Agents    []Pos
	Resources []ResourceSpec
}

// placeRandom scatters agents and then resources over free cells.
func placeRandom(b *Board, p Params, rng *rand.Rand) error {
	for i := 0; i < p.AgentCount; i++ {
		pos, err := randomFreeCell(b, "agent", p.PlacementAttempts, rng)
		if err != nil {
			return err
		}
		if _, err := b.PlaceAgent(pos); err != nil {
			return err
		}
	}
	maxValue := p.MaxValue
	if maxValue <= 0 {
		maxValue = DefaultMaxValue
	}
	for i := 0; i < p.ResourceCount; i++ {
		pos, err := randomFreeCell(b, "resource", p.PlacementAttempts, rng)
		if err != nil {
			return err
		}
		if _, err := b.PlaceResource(pos, rng.IntN(maxValue)+1); err != nil {
			return err
		}
	}
	return nil
}

// randomFreeCell draws cells until one holds neither an agent nor a
// resource, giving up after attempts draws.
func randomFreeCell(b *Board, kind string, attempts int, rng *rand.Rand) (Pos, error) {
	total := b.cols * b.rows
	for i := 0; i < attempts; i++ {
		pos := b.PosOf(rng.IntN(total))
		if b.IsFree(pos) {
			return pos, nil
		}
	}
	return Pos{}, &PlacementError{Kind: kind, Attempts: attempts, Err: ErrPlacementExhausted}
}

// placeLayout applies an explicit layout.
func placeLayout(b *Board, l Layout) error {
	for _, pos := range l.Agents {
		if _, err := b.PlaceAgent(pos); err != nil {
			return err
		}
	}
	for _, spec := range l.Resources {
		if _, err := b.PlaceResource(spec.Pos, spec.Value); err != nil {
			return err
		}
	}
	return nil
}
