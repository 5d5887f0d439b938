package forage

import (
	"slices"
	"testing"
)

func newCollectorBoard(t *testing.T, agents []Pos, resources []ResourceSpec) (*Board, *Ledger, *Collector) {
	t.Helper()
	b := NewBoard(6, 6, DefaultMaxValue)
	if err := placeLayout(b, Layout{Agents: agents, Resources: resources}); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l := NewLedger(b.AgentCount())
	return b, l, NewCollector(b, l, 3, 2)
}

func TestSoloPickupCreditsActingAgentOnly(t *testing.T) {
	b, l, c := newCollectorBoard(t,
		[]Pos{{Row: 2, Col: 1}, {Row: 2, Col: 3}},
		[]ResourceSpec{{Pos: Pos{Row: 2, Col: 2}, Value: 2}},
	)

	got := c.Resolve(1)
	if len(got) != 1 || got[0].Cooperative || !slices.Equal(got[0].Credited, []int{1}) {
		t.Fatalf("unexpected collections %+v", got)
	}
	if l.Score(1) != 2 || l.Score(0) != 0 {
		t.Fatalf("expected scores [0 2], got %v", l.Scores())
	}
	if b.ResourceCount() != 0 {
		t.Fatal("resource should be removed")
	}
	if again := c.Resolve(0); len(again) != 0 {
		t.Fatalf("second agent must not collect a removed resource, got %+v", again)
	}
}

func TestCooperativeResourceNeedsTwoAdjacentAgents(t *testing.T) {
	b, l, c := newCollectorBoard(t,
		[]Pos{{Row: 2, Col: 1}, {Row: 5, Col: 5}},
		[]ResourceSpec{{Pos: Pos{Row: 2, Col: 2}, Value: 3}},
	)

	if got := c.Resolve(0); len(got) != 0 {
		t.Fatalf("single adjacent agent must not collect, got %+v", got)
	}
	if b.ResourceCount() != 1 || l.Total() != 0 {
		t.Fatal("cooperative resource should remain untouched")
	}

	if err := b.MoveAgent(1, Pos{Row: 1, Col: 2}); err != nil {
		t.Fatal(err)
	}
	got := c.Resolve(1)
	if len(got) != 1 || !got[0].Cooperative || !slices.Equal(got[0].Credited, []int{0, 1}) {
		t.Fatalf("expected cooperative pickup credited to [0 1], got %+v", got)
	}
	if !slices.Equal(l.Scores(), []int{3, 3}) {
		t.Fatalf("expected both agents credited 3, got %v", l.Scores())
	}
	if b.ResourceCount() != 0 {
		t.Fatal("cooperative resource should be removed once")
	}
}

func TestCooperativeCreditsEveryAdjacentAgent(t *testing.T) {
	_, l, c := newCollectorBoard(t,
		[]Pos{{Row: 1, Col: 2}, {Row: 3, Col: 2}, {Row: 2, Col: 1}, {Row: 0, Col: 0}},
		[]ResourceSpec{{Pos: Pos{Row: 2, Col: 2}, Value: 3}},
	)

	got := c.Resolve(2)
	if len(got) != 1 || !slices.Equal(got[0].Credited, []int{0, 1, 2}) {
		t.Fatalf("expected agents 0-2 credited, got %+v", got)
	}
	if !slices.Equal(l.Scores(), []int{3, 3, 3, 0}) {
		t.Fatalf("unexpected scores %v", l.Scores())
	}
}

func TestResolveCollectsEveryAdjacentResource(t *testing.T) {
	b, l, c := newCollectorBoard(t,
		[]Pos{{Row: 2, Col: 2}},
		[]ResourceSpec{
			{Pos: Pos{Row: 2, Col: 3}, Value: 1},
			{Pos: Pos{Row: 1, Col: 2}, Value: 2},
			{Pos: Pos{Row: 3, Col: 3}, Value: 1},
		},
	)

	got := c.Resolve(0)
	if len(got) != 2 {
		t.Fatalf("expected two orthogonal pickups, got %+v", got)
	}
	if got[0].Pos != (Pos{Row: 2, Col: 3}) || got[1].Pos != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("pickups out of right, left, down, up order: %+v", got)
	}
	if l.Score(0) != 3 {
		t.Fatalf("expected score 3, got %d", l.Score(0))
	}
	if !b.IsOccupiedByResource(Pos{Row: 3, Col: 3}) {
		t.Fatal("diagonal resource must not be collected")
	}
}

func TestLedgerIgnoresInvalidCredits(t *testing.T) {
	l := NewLedger(2)
	l.Credit(0, 2)
	l.Credit(0, -5)
	l.Credit(0, 0)
	l.Credit(4, 3)
	if l.Score(0) != 2 || l.Total() != 2 || l.Score(4) != 0 {
		t.Fatalf("unexpected ledger state %v total %d", l.Scores(), l.Total())
	}
}
