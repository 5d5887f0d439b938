package forage

import (
	"math/rand/v2"

	pcore "forage/pkg/core"
)

// Direction is a single orthogonal step.
type Direction uint8

const (
	Stay Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = [...]string{"stay", "up", "down", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Delta returns the coordinate offset of the step.
func (d Direction) Delta() Pos {
	switch d {
	case Up:
		return Pos{Row: -1}
	case Down:
		return Pos{Row: 1}
	case Left:
		return Pos{Col: -1}
	case Right:
		return Pos{Col: 1}
	default:
		return Pos{}
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	i, err := lookupName(directionNames[:], "direction", string(b))
	if err != nil {
		return err
	}
	*d = Direction(i)
	return nil
}

// stepOrder is the candidate enumeration order; earlier entries win pursuit ties.
var stepOrder = [4]Direction{Up, Down, Left, Right}

// Move is a legal single-step candidate.
type Move struct {
	Dir Direction
	To  Pos
}

// Mode describes how a decision was reached.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModePursue
	ModeExplore
)

var modeNames = [...]string{"idle", "pursue", "explore"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	i, err := lookupName(modeNames[:], "mode", string(b))
	if err != nil {
		return err
	}
	*m = Mode(i)
	return nil
}

// Decision is the planner's output for one agent on one turn.
type Decision struct {
	AgentID   int       `json:"agent"`
	Mode      Mode      `json:"mode"`
	Dir       Direction `json:"dir"`
	From      Pos       `json:"from"`
	To        Pos       `json:"to"`
	Target    Pos       `json:"target"`
	HasTarget bool      `json:"has_target"`
	Revealed  int       `json:"revealed,omitempty"`
}

// Moved reports whether the decision relocates the agent.
func (d Decision) Moved() bool { return d.Dir != Stay }

// Planner picks one greedy step per agent against the live board.
type Planner struct {
	board   *Board
	radius  int
	explore bool
	rng     *rand.Rand
}

// NewPlanner builds a planner. When explore is false an agent that sees no
// resource idles instead of exploring.
func NewPlanner(b *Board, radius int, explore bool, rng *rand.Rand) *Planner {
	return &Planner{board: b, radius: radius, explore: explore, rng: rng}
}

// LegalMoves lists the in-bounds steps from p onto cells free of agents and
// resources, in up, down, left, right order.
func (p *Planner) LegalMoves(from Pos) []Move {
	moves := make([]Move, 0, 4)
	for _, d := range stepOrder {
		to := from.Add(d.Delta())
		if p.board.IsFree(to) {
			moves = append(moves, Move{Dir: d, To: to})
		}
	}
	return moves
}

// SelectTarget returns the visible resource nearest to the agent by
// Manhattan distance. Ties keep the first resource in row-major order.
func (p *Planner) SelectTarget(agent Agent) (Resource, bool) {
	win := WindowAt(agent.Pos, p.radius, p.board.cols, p.board.rows)
	var (
		best  Resource
		found bool
	)
	bestDist := 0
	p.board.EachResource(win, func(r Resource) bool {
		d := Manhattan(agent.Pos, r.Pos)
		if !found || d < bestDist {
			best, bestDist, found = r, d, true
		}
		return true
	})
	return best, found
}

// Decide chooses the move for the agent with the given id using the board
// as it stands right now.
func (p *Planner) Decide(id int) Decision {
	agent, ok := p.board.Agent(id)
	if !ok {
		return Decision{AgentID: id}
	}
	dec := Decision{AgentID: id, From: agent.Pos, To: agent.Pos}

	if target, ok := p.SelectTarget(agent); ok {
		dec.Mode = ModePursue
		dec.Target = target.Pos
		dec.HasTarget = true
		if m, ok := p.pursue(agent.Pos, target.Pos); ok {
			dec.Dir, dec.To = m.Dir, m.To
		}
		return dec
	}
	if !p.explore {
		return dec
	}
	dec.Mode = ModeExplore
	if m, gain, ok := p.exploreStep(agent.Pos); ok {
		dec.Dir, dec.To, dec.Revealed = m.Dir, m.To, gain
	}
	return dec
}

// pursue returns the first legal step that strictly shortens the distance
// to target. No step is returned when nothing improves.
func (p *Planner) pursue(from, target Pos) (Move, bool) {
	bestDist := Manhattan(from, target)
	var (
		best  Move
		found bool
	)
	for _, m := range p.LegalMoves(from) {
		if d := Manhattan(m.To, target); d < bestDist {
			best, bestDist, found = m, d, true
		}
	}
	return best, found
}

// exploreStep returns a legal step revealing the most unseen cells, breaking
// ties uniformly at random.
func (p *Planner) exploreStep(from Pos) (Move, int, bool) {
	moves := p.LegalMoves(from)
	if len(moves) == 0 {
		return Move{}, 0, false
	}
	cols, rows := p.board.cols, p.board.rows
	current := WindowAt(from, p.radius, cols, rows).Cells()

	maxGain := -1
	var best []Move
	for _, m := range moves {
		gain := Revealed(current, WindowAt(m.To, p.radius, cols, rows).Cells())
		switch {
		case gain > maxGain:
			maxGain = gain
			best = append(best[:0], m)
		case gain == maxGain:
			best = append(best, m)
		}
	}
	return best[pcore.Pick(p.rng, len(best))], maxGain, true
}
