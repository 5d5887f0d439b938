package forage

import "sort"

// Collection records one resource pickup.
type Collection struct {
	ResourceID  int   `json:"resource"`
	Pos         Pos   `json:"pos"`
	Value       int   `json:"value"`
	Cooperative bool  `json:"cooperative"`
	Credited    []int `json:"credited"`
}

// Collector resolves pickups around an agent after it has moved.
type Collector struct {
	board  *Board
	ledger *Ledger

	coopValue  int
	minHelpers int
}

// NewCollector builds a resolver. Resources worth coopValue or more need at
// least minHelpers adjacent agents; cheaper ones go to the acting agent alone.
func NewCollector(b *Board, l *Ledger, coopValue, minHelpers int) *Collector {
	if minHelpers < 1 {
		minHelpers = 1
	}
	return &Collector{board: b, ledger: l, coopValue: coopValue, minHelpers: minHelpers}
}

// Resolve inspects the cells orthogonally adjacent to the agent and collects
// whatever the rules allow. Adjacency is read from the board at call time.
func (c *Collector) Resolve(id int) []Collection {
	agent, ok := c.board.Agent(id)
	if !ok {
		return nil
	}
	var out []Collection
	for _, n := range c.board.Neighbors(agent.Pos) {
		res, ok := c.board.ResourceAt(n)
		if !ok {
			continue
		}
		if res.Value < c.coopValue {
			c.board.RemoveResource(n)
			c.ledger.Credit(id, res.Value)
			out = append(out, Collection{ResourceID: res.ID, Pos: n, Value: res.Value, Credited: []int{id}})
			continue
		}
		helpers := c.Helpers(n)
		if len(helpers) < c.minHelpers {
			continue
		}
		c.board.RemoveResource(n)
		for _, h := range helpers {
			c.ledger.Credit(h, res.Value)
		}
		out = append(out, Collection{ResourceID: res.ID, Pos: n, Value: res.Value, Cooperative: true, Credited: helpers})
	}
	return out
}

// Helpers lists, in turn order, every agent orthogonally adjacent to p.
func (c *Collector) Helpers(p Pos) []int {
	var ids []int
	for _, n := range c.board.Neighbors(p) {
		if id, ok := c.board.AgentAt(n); ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
