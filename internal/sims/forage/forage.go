package forage

import (
	"fmt"
	"math/rand/v2"

	"forage/internal/core"
	pcore "forage/pkg/core"
)

// Status is the turn controller state.
type Status uint8

const (
	// StatusPending means nothing has been placed yet.
	StatusPending Status = iota
	// StatusRunning means resources remain and turns advance.
	StatusRunning
	// StatusFinished is terminal: every resource has been collected.
	StatusFinished
)

var statusNames = [...]string{"pending", "running", "finished"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	i, err := lookupName(statusNames[:], "status", string(b))
	if err != nil {
		return err
	}
	*s = Status(i)
	return nil
}

// TurnReport summarizes one call to AdvanceTurn.
type TurnReport struct {
	Turn        int          `json:"turn"`
	Advanced    bool         `json:"advanced"`
	Decisions   []Decision   `json:"decisions,omitempty"`
	Collections []Collection `json:"collections,omitempty"`
	Status      Status       `json:"status"`
	Remaining   int          `json:"remaining"`
}

// AgentState is the public view of an agent.
type AgentState struct {
	ID     int    `json:"id"`
	Pos    Pos    `json:"pos"`
	Score  int    `json:"score"`
	Window Window `json:"window"`
}

// State is a read-only copy of the world for rendering collaborators.
type State struct {
	Turn    int     `json:"turn"`
	Status  Status  `json:"status"`
	Variant Variant `json:"variant"`
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`

	Agents    []AgentState `json:"agents"`
	Resources []Resource   `json:"resources"`

	InitialValue   int `json:"initial_value"`
	CollectedValue int `json:"collected_value"`
	RemainingValue int `json:"remaining_value"`
}

// World runs the foraging simulation one synchronous turn at a time.
type World struct {
	cfg Config

	board     *Board
	field     *Field
	planner   *Planner
	collector *Collector
	ledger    *Ledger
	rng       *rand.Rand

	status       Status
	turn         int
	initialValue int
	collected    int
	display      []uint8
}

// New returns a world with the provided dimensions using defaults.
func New(cols, rows int) *World {
	cfg := DefaultConfig()
	cfg.Columns = cols
	cfg.Rows = rows
	return NewWithConfig(cfg)
}

// NewWithConfig returns an unplaced world. Call Reset or ResetLayout before
// advancing turns.
func NewWithConfig(cfg Config) *World {
	total := cfg.Columns * cfg.Rows
	if total < 0 {
		total = 0
	}
	return &World{cfg: cfg, display: make([]uint8, total)}
}

// SimName returns the registry name of a variant.
func SimName(v Variant) string {
	if v == VariantExplore {
		return "forage"
	}
	return "forage-" + v.String()
}

// Name returns the simulation identifier.
func (w *World) Name() string { return SimName(w.cfg.Variant) }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Columns, H: w.cfg.Rows} }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Status returns the controller state.
func (w *World) Status() Status { return w.status }

// Turn returns the number of completed turns.
func (w *World) Turn() int { return w.turn }

// Board exposes the occupancy index for read-only queries.
func (w *World) Board() *Board { return w.board }

// Ledger exposes the per-agent scores.
func (w *World) Ledger() *Ledger { return w.ledger }

// Field exposes the visibility windows of the current turn.
func (w *World) Field() *Field { return w.field }

// Reset places agents and resources at random. A zero seed falls back to the
// configured seed.
func (w *World) Reset(seed int64) error {
	if err := w.cfg.Validate(); err != nil {
		w.status = StatusPending
		return err
	}
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = pcore.NewRNG(effective).Source()
	w.prepare()
	if err := placeRandom(w.board, w.cfg.Params, w.rng); err != nil {
		w.status = StatusPending
		return err
	}
	w.start()
	return nil
}

// ResetLayout places the given arrangement. Exploration tie-breaks draw from
// the configured seed.
func (w *World) ResetLayout(l Layout) error {
	if w.cfg.Columns <= 0 || w.cfg.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, w.cfg.Columns, w.cfg.Rows)
	}
	w.rng = pcore.NewRNG(w.cfg.Seed).Source()
	w.prepare()
	if err := placeLayout(w.board, l); err != nil {
		w.status = StatusPending
		return err
	}
	w.cfg.Params.AgentCount = len(l.Agents)
	w.cfg.Params.ResourceCount = len(l.Resources)
	w.start()
	return nil
}

func (w *World) prepare() {
	w.board = NewBoard(w.cfg.Columns, w.cfg.Rows, w.cfg.Params.MaxValue)
	w.field = NewField(w.cfg.Radius())
	w.turn = 0
	w.collected = 0
	w.initialValue = 0
}

func (w *World) start() {
	p := w.cfg.Params
	w.ledger = NewLedger(w.board.AgentCount())
	w.planner = NewPlanner(w.board, w.cfg.Radius(), w.cfg.Variant == VariantExplore, w.rng)
	w.collector = NewCollector(w.board, w.ledger, p.CoopValue, p.CoopMinAgents)
	w.initialValue = w.board.RemainingValue()
	w.field.Recompute(w.board)
	w.status = StatusRunning
	w.rebuildDisplay()
}

// Step advances one turn and discards the report.
func (w *World) Step() { w.AdvanceTurn() }

// AdvanceTurn runs one complete turn: every agent in id order plans, moves
// and collects, then visibility is refreshed and termination checked. It is a
// no-op unless the world is running.
func (w *World) AdvanceTurn() TurnReport {
	if w.status != StatusRunning {
		report := TurnReport{Turn: w.turn, Status: w.status}
		if w.board != nil {
			report.Remaining = w.board.ResourceCount()
		}
		return report
	}
	w.turn++
	report := TurnReport{Turn: w.turn, Advanced: true}
	for id := 0; id < w.board.AgentCount(); id++ {
		dec := w.planner.Decide(id)
		if dec.Moved() {
			if err := w.board.MoveAgent(id, dec.To); err != nil {
				panic(fmt.Sprintf("forage: planner proposed an illegal move: %v", err))
			}
			w.field.Refresh(w.board, id)
		}
		report.Decisions = append(report.Decisions, dec)
		for _, c := range w.collector.Resolve(id) {
			w.collected += c.Value
			report.Collections = append(report.Collections, c)
		}
	}
	w.field.Recompute(w.board)
	if w.board.ResourceCount() == 0 {
		w.status = StatusFinished
	}
	w.rebuildDisplay()
	report.Status = w.status
	report.Remaining = w.board.ResourceCount()
	return report
}

// State copies the current world for rendering collaborators.
func (w *World) State() State {
	s := State{
		Turn:    w.turn,
		Status:  w.status,
		Variant: w.cfg.Variant,
		Columns: w.cfg.Columns,
		Rows:    w.cfg.Rows,
	}
	if w.board == nil {
		return s
	}
	for _, a := range w.board.agents {
		win, _ := w.field.Window(a.ID)
		s.Agents = append(s.Agents, AgentState{ID: a.ID, Pos: a.Pos, Score: w.ledger.Score(a.ID), Window: win})
	}
	s.Resources = w.board.Resources()
	s.InitialValue = w.initialValue
	s.CollectedValue = w.collected
	s.RemainingValue = w.board.RemainingValue()
	return s
}

// Scores returns every agent's score in turn order.
func (w *World) Scores() []int {
	if w.ledger == nil {
		return nil
	}
	return w.ledger.Scores()
}

func init() {
	for _, v := range []Variant{VariantExplore, VariantVision, VariantOmniscient} {
		variant := v
		core.Register(SimName(variant), func(cfg map[string]string) core.Sim {
			c := FromMap(cfg)
			c.Variant = variant
			return NewWithConfig(c)
		})
	}
}
