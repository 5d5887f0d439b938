package forage

// Ledger accumulates the value collected by each agent. Scores only grow.
type Ledger struct {
	scores []int
	total  int
}

// NewLedger returns a ledger with n zeroed scores.
func NewLedger(n int) *Ledger {
	return &Ledger{scores: make([]int, n)}
}

// Credit adds value to the agent's score. Unknown agents and non-positive
// values are ignored.
func (l *Ledger) Credit(id, value int) {
	if value <= 0 || id < 0 || id >= len(l.scores) {
		return
	}
	l.scores[id] += value
	l.total += value
}

// Score returns the agent's accumulated value.
func (l *Ledger) Score(id int) int {
	if id < 0 || id >= len(l.scores) {
		return 0
	}
	return l.scores[id]
}

// Scores returns a copy of every score in turn order.
func (l *Ledger) Scores() []int {
	return append([]int(nil), l.scores...)
}

// Total returns the sum of every credit. Cooperative pickups count once per
// credited agent.
func (l *Ledger) Total() int { return l.total }
