package forage

import (
	"fmt"

	"forage/internal/core"
)

// Pos is a grid coordinate with the origin at the top-left cell.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Add returns p shifted by d.
func (p Pos) Add(d Pos) Pos { return Pos{Row: p.Row + d.Row, Col: p.Col + d.Col} }

// Manhattan returns |Δrow| + |Δcol|.
func Manhattan(a, b Pos) int { return abs(a.Row-b.Row) + abs(a.Col-b.Col) }

// Chebyshev returns max(|Δrow|, |Δcol|).
func Chebyshev(a, b Pos) int { return max(abs(a.Row-b.Row), abs(a.Col-b.Col)) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Agent is a forager placed on the board. ID is its stable turn order.
type Agent struct {
	ID  int `json:"id"`
	Pos Pos `json:"pos"`
}

// Resource is an apple token. Present is false once it has been collected.
type Resource struct {
	ID      int  `json:"id"`
	Pos     Pos  `json:"pos"`
	Value   int  `json:"value"`
	Present bool `json:"present"`
}

// Board owns cell occupancy. An agent and a resource may share a cell but
// two agents or two resources may not.
type Board struct {
	cols, rows int
	maxValue   int

	agentAt    *core.SlotGrid
	resourceAt *core.SlotGrid

	agents    []Agent
	resources []Resource
	remaining int
}

// NewBoard allocates an empty board. Resource values are accepted in 1..maxValue.
func NewBoard(cols, rows, maxValue int) *Board {
	if maxValue <= 0 {
		maxValue = DefaultMaxValue
	}
	return &Board{
		cols:       cols,
		rows:       rows,
		maxValue:   maxValue,
		agentAt:    core.NewSlotGrid(cols, rows),
		resourceAt: core.NewSlotGrid(cols, rows),
	}
}

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

// Index returns the linear index row*cols+col of p.
func (b *Board) Index(p Pos) int { return p.Row*b.cols + p.Col }

// PosOf converts a linear index back into a coordinate.
func (b *Board) PosOf(idx int) Pos { return Pos{Row: idx / b.cols, Col: idx % b.cols} }

// IsOccupiedByAgent reports whether an agent stands on p.
func (b *Board) IsOccupiedByAgent(p Pos) bool {
	return b.agentAt.At(p.Col, p.Row) != core.Empty
}

// IsOccupiedByResource reports whether a resource lies on p.
func (b *Board) IsOccupiedByResource(p Pos) bool {
	return b.resourceAt.At(p.Col, p.Row) != core.Empty
}

// IsFree reports whether p is on the board and holds neither an agent nor a resource.
func (b *Board) IsFree(p Pos) bool {
	return b.InBounds(p) && !b.IsOccupiedByAgent(p) && !b.IsOccupiedByResource(p)
}

// AgentAt returns the id of the agent on p.
func (b *Board) AgentAt(p Pos) (int, bool) {
	id := b.agentAt.At(p.Col, p.Row)
	return id, id != core.Empty
}

// ResourceAt returns the resource lying on p.
func (b *Board) ResourceAt(p Pos) (Resource, bool) {
	id := b.resourceAt.At(p.Col, p.Row)
	if id == core.Empty {
		return Resource{}, false
	}
	return b.resources[id], true
}

// PlaceAgent puts a new agent on p and returns its id.
func (b *Board) PlaceAgent(p Pos) (int, error) {
	if !b.InBounds(p) {
		return 0, &PlacementError{Kind: "agent", Pos: p, Err: ErrOutOfBounds}
	}
	if b.IsOccupiedByAgent(p) {
		return 0, &PlacementError{Kind: "agent", Pos: p, Err: ErrCellOccupied}
	}
	id := len(b.agents)
	b.agents = append(b.agents, Agent{ID: id, Pos: p})
	b.agentAt.Set(p.Col, p.Row, id)
	return id, nil
}

// PlaceResource puts a new resource of the given value on p and returns its id.
func (b *Board) PlaceResource(p Pos, value int) (int, error) {
	if !b.InBounds(p) {
		return 0, &PlacementError{Kind: "resource", Pos: p, Err: ErrOutOfBounds}
	}
	if value < 1 || value > b.maxValue {
		return 0, &PlacementError{Kind: "resource", Pos: p, Err: fmt.Errorf("%w: %d", ErrInvalidValue, value)}
	}
	if b.IsOccupiedByResource(p) {
		return 0, &PlacementError{Kind: "resource", Pos: p, Err: ErrCellOccupied}
	}
	id := len(b.resources)
	b.resources = append(b.resources, Resource{ID: id, Pos: p, Value: value, Present: true})
	b.resourceAt.Set(p.Col, p.Row, id)
	b.remaining++
	return id, nil
}

// MoveAgent relocates an agent. The target must be on the board and hold
// neither an agent nor a resource.
func (b *Board) MoveAgent(id int, to Pos) error {
	if id < 0 || id >= len(b.agents) {
		return &IllegalMoveError{AgentID: id, To: to, Err: ErrUnknownAgent}
	}
	from := b.agents[id].Pos
	if !b.InBounds(to) {
		return &IllegalMoveError{AgentID: id, From: from, To: to, Err: ErrOutOfBounds}
	}
	if b.IsOccupiedByAgent(to) || b.IsOccupiedByResource(to) {
		return &IllegalMoveError{AgentID: id, From: from, To: to, Err: ErrCellOccupied}
	}
	b.agentAt.Unset(from.Col, from.Row)
	b.agentAt.Set(to.Col, to.Row, id)
	b.agents[id].Pos = to
	return nil
}

// RemoveResource collects the resource on p. Removed resources are never re-added.
func (b *Board) RemoveResource(p Pos) (Resource, bool) {
	id := b.resourceAt.At(p.Col, p.Row)
	if id == core.Empty {
		return Resource{}, false
	}
	b.resourceAt.Unset(p.Col, p.Row)
	b.resources[id].Present = false
	b.remaining--
	return b.resources[id], true
}

// Agent returns the agent with the given id.
func (b *Board) Agent(id int) (Agent, bool) {
	if id < 0 || id >= len(b.agents) {
		return Agent{}, false
	}
	return b.agents[id], true
}

// AgentCount returns the number of placed agents.
func (b *Board) AgentCount() int { return len(b.agents) }

// Agents returns a copy of every agent in turn order.
func (b *Board) Agents() []Agent {
	return append([]Agent(nil), b.agents...)
}

// Resources returns the resources still on the board in row-major order.
func (b *Board) Resources() []Resource {
	out := make([]Resource, 0, b.remaining)
	b.EachResource(Window{MaxRow: b.rows - 1, MaxCol: b.cols - 1}, func(r Resource) bool {
		out = append(out, r)
		return true
	})
	return out
}

// EachResource visits the resources inside win in row-major order until fn returns false.
func (b *Board) EachResource(win Window, fn func(Resource) bool) {
	for row := win.MinRow; row <= win.MaxRow; row++ {
		for col := win.MinCol; col <= win.MaxCol; col++ {
			id := b.resourceAt.At(col, row)
			if id == core.Empty {
				continue
			}
			if !fn(b.resources[id]) {
				return
			}
		}
	}
}

// Placed returns every resource ever placed, collected ones included, in placement order.
func (b *Board) Placed() []Resource {
	return append([]Resource(nil), b.resources...)
}

// ResourceCount returns the number of resources still on the board.
func (b *Board) ResourceCount() int { return b.remaining }

// RemainingValue sums the value of the resources still on the board.
func (b *Board) RemainingValue() int {
	total := 0
	for _, r := range b.resources {
		if r.Present {
			total += r.Value
		}
	}
	return total
}

// Neighbors returns the in-bounds orthogonal neighbors of p in resolution
// order: right, left, down, up.
func (b *Board) Neighbors(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range neighborOffsets {
		n := p.Add(d)
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

var neighborOffsets = [4]Pos{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
