package forage

import (
	"testing"

	pcore "forage/pkg/core"
)

func newPlannerBoard(t *testing.T, agents []Pos, resources []ResourceSpec) *Board {
	t.Helper()
	b := NewBoard(12, 8, DefaultMaxValue)
	if err := placeLayout(b, Layout{Agents: agents, Resources: resources}); err != nil {
		t.Fatalf("layout: %v", err)
	}
	return b
}

func TestPursuitStepsTowardTarget(t *testing.T) {
	b := newPlannerBoard(t, []Pos{{Row: 2, Col: 2}}, []ResourceSpec{{Pos: Pos{Row: 2, Col: 5}, Value: 1}})
	p := NewPlanner(b, 3, true, pcore.NewRNG(1).Source())

	dec := p.Decide(0)
	if dec.Mode != ModePursue || !dec.HasTarget || dec.Target != (Pos{Row: 2, Col: 5}) {
		t.Fatalf("expected pursuit of (2,5), got %+v", dec)
	}
	if dec.Dir != Right || dec.To != (Pos{Row: 2, Col: 3}) {
		t.Fatalf("expected right to (2,3), got %v to %v", dec.Dir, dec.To)
	}
	if d := Manhattan(dec.To, dec.Target); d != 2 {
		t.Fatalf("expected resulting distance 2, got %d", d)
	}
}

func TestPursuitStaysOnCoincidentTarget(t *testing.T) {
	b := newPlannerBoard(t, []Pos{{Row: 2, Col: 2}}, []ResourceSpec{{Pos: Pos{Row: 2, Col: 2}, Value: 2}})
	p := NewPlanner(b, 2, true, pcore.NewRNG(1).Source())

	dec := p.Decide(0)
	if dec.Moved() {
		t.Fatalf("agent on its target must not move, got %v", dec.Dir)
	}
	if dec.Mode != ModePursue {
		t.Fatalf("expected pursue mode, got %v", dec.Mode)
	}
}

func TestPursuitIdlesWithoutImprovement(t *testing.T) {
	b := newPlannerBoard(t,
		[]Pos{{Row: 2, Col: 2}, {Row: 2, Col: 3}},
		[]ResourceSpec{{Pos: Pos{Row: 2, Col: 5}, Value: 1}},
	)
	p := NewPlanner(b, 3, true, pcore.NewRNG(1).Source())

	if dec := p.Decide(0); dec.Moved() {
		t.Fatalf("blocked agent should stay, got %v", dec.Dir)
	}
}

func TestPursuitTieBreaksOnEnumerationOrder(t *testing.T) {
	b := newPlannerBoard(t,
		[]Pos{{Row: 2, Col: 2}},
		[]ResourceSpec{{Pos: Pos{Row: 2, Col: 0}, Value: 1}, {Pos: Pos{Row: 0, Col: 2}, Value: 1}},
	)
	p := NewPlanner(b, 2, true, pcore.NewRNG(1).Source())

	target, ok := p.SelectTarget(Agent{ID: 0, Pos: Pos{Row: 2, Col: 2}})
	if !ok || target.Pos != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("expected first row-major resource (0,2), got %v", target.Pos)
	}
	if dec := p.Decide(0); dec.Dir != Up {
		t.Fatalf("expected up toward (0,2), got %v", dec.Dir)
	}
}

func TestPursuitIgnoresResourcesOutsideWindow(t *testing.T) {
	b := newPlannerBoard(t, []Pos{{Row: 0, Col: 0}}, []ResourceSpec{{Pos: Pos{Row: 7, Col: 11}, Value: 1}})

	limited := NewPlanner(b, 2, false, pcore.NewRNG(1).Source())
	if dec := limited.Decide(0); dec.Mode != ModeIdle || dec.Moved() {
		t.Fatalf("vision-limited agent without exploration should idle, got %+v", dec)
	}

	omniscient := NewPlanner(b, Unlimited, false, pcore.NewRNG(1).Source())
	dec := omniscient.Decide(0)
	if dec.Mode != ModePursue || dec.Dir != Down {
		t.Fatalf("omniscient agent should pursue downward first, got %+v", dec)
	}
}

func TestExplorePicksStrictMaximum(t *testing.T) {
	b := newPlannerBoard(t, []Pos{{Row: 1, Col: 2}}, nil)
	for seed := int64(1); seed <= 32; seed++ {
		p := NewPlanner(b, 2, true, pcore.NewRNG(seed).Source())
		dec := p.Decide(0)
		if dec.Mode != ModeExplore {
			t.Fatalf("expected explore, got %v", dec.Mode)
		}
		if dec.Dir != Down || dec.Revealed != 5 {
			t.Fatalf("seed %d: expected down revealing 5, got %v revealing %d", seed, dec.Dir, dec.Revealed)
		}
	}
}

func TestExploreTieBreakStaysAmongMaximizers(t *testing.T) {
	b := newPlannerBoard(t, []Pos{{Row: 0, Col: 0}}, nil)
	seen := map[Direction]int{}
	for seed := int64(1); seed <= 64; seed++ {
		p := NewPlanner(b, 2, true, pcore.NewRNG(seed).Source())
		dec := p.Decide(0)
		if dec.Dir != Down && dec.Dir != Right {
			t.Fatalf("seed %d: chose %v outside the tied maximizers", seed, dec.Dir)
		}
		if dec.Revealed != 3 {
			t.Fatalf("seed %d: expected 3 revealed cells, got %d", seed, dec.Revealed)
		}
		seen[dec.Dir]++
	}
	if seen[Down] == 0 || seen[Right] == 0 {
		t.Fatalf("expected both tied moves across seeds, got %v", seen)
	}
}

func TestExploreIdlesWhenBoxedIn(t *testing.T) {
	b := newPlannerBoard(t, []Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}, nil)
	p := NewPlanner(b, 2, true, pcore.NewRNG(1).Source())

	dec := p.Decide(0)
	if dec.Moved() {
		t.Fatalf("boxed-in agent should idle, got %v", dec.Dir)
	}
}

func TestLegalMovesSkipOccupiedCells(t *testing.T) {
	b := newPlannerBoard(t,
		[]Pos{{Row: 3, Col: 3}, {Row: 2, Col: 3}},
		[]ResourceSpec{{Pos: Pos{Row: 3, Col: 4}, Value: 1}},
	)
	p := NewPlanner(b, 2, true, pcore.NewRNG(1).Source())

	moves := p.LegalMoves(Pos{Row: 3, Col: 3})
	if len(moves) != 2 || moves[0].Dir != Down || moves[1].Dir != Left {
		t.Fatalf("expected down and left only, got %+v", moves)
	}
}
