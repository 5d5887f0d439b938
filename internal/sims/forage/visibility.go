package forage

import "github.com/zyedidia/generic/mapset"

// Unlimited is the vision radius of an agent that perceives the whole grid.
const Unlimited = -1

// Window is an inclusive rectangle of cells clipped to the grid.
type Window struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// WindowAt returns the square of Chebyshev radius r around p clipped to a
// cols x rows grid. A negative radius covers the whole grid.
func WindowAt(p Pos, r, cols, rows int) Window {
	if r < 0 {
		return Window{MaxRow: rows - 1, MaxCol: cols - 1}
	}
	return Window{
		MinRow: max(p.Row-r, 0),
		MinCol: max(p.Col-r, 0),
		MaxRow: min(p.Row+r, rows-1),
		MaxCol: min(p.Col+r, cols-1),
	}
}

// Contains reports whether p lies inside the window.
func (w Window) Contains(p Pos) bool {
	return p.Row >= w.MinRow && p.Row <= w.MaxRow && p.Col >= w.MinCol && p.Col <= w.MaxCol
}

// Len returns the number of cells covered.
func (w Window) Len() int {
	if w.MaxRow < w.MinRow || w.MaxCol < w.MinCol {
		return 0
	}
	return (w.MaxRow - w.MinRow + 1) * (w.MaxCol - w.MinCol + 1)
}

// Cells collects the covered coordinates into a set.
func (w Window) Cells() mapset.Set[Pos] {
	set := mapset.New[Pos]()
	for row := w.MinRow; row <= w.MaxRow; row++ {
		for col := w.MinCol; col <= w.MaxCol; col++ {
			set.Put(Pos{Row: row, Col: col})
		}
	}
	return set
}

// ComputeVisible returns the cells within radius of the agent.
func ComputeVisible(b *Board, agent Agent, radius int) mapset.Set[Pos] {
	return WindowAt(agent.Pos, radius, b.Cols(), b.Rows()).Cells()
}

// Revealed counts the cells of next that are absent from cur.
func Revealed(cur mapset.Set[Pos], next mapset.Set[Pos]) int {
	gain := 0
	next.Each(func(p Pos) {
		if !cur.Has(p) {
			gain++
		}
	})
	return gain
}

// Field holds the vision window of every agent for the current turn.
// It carries no state between recomputations.
type Field struct {
	radius  int
	windows []Window
}

// NewField returns an empty field for the given radius.
func NewField(radius int) *Field {
	return &Field{radius: radius}
}

// Radius returns the vision radius.
func (f *Field) Radius() int { return f.radius }

// Recompute rebuilds every agent's window from scratch.
func (f *Field) Recompute(b *Board) {
	f.windows = f.windows[:0]
	for _, a := range b.agents {
		f.windows = append(f.windows, WindowAt(a.Pos, f.radius, b.cols, b.rows))
	}
}

// Refresh recomputes a single agent's window after it moved.
func (f *Field) Refresh(b *Board, id int) {
	if id < 0 || id >= len(f.windows) || id >= len(b.agents) {
		f.Recompute(b)
		return
	}
	f.windows[id] = WindowAt(b.agents[id].Pos, f.radius, b.cols, b.rows)
}

// Window returns the window of the agent with the given id.
func (f *Field) Window(id int) (Window, bool) {
	if id < 0 || id >= len(f.windows) {
		return Window{}, false
	}
	return f.windows[id], true
}

// Visible reports whether p is inside any agent's window.
func (f *Field) Visible(p Pos) bool {
	for _, w := range f.windows {
		if w.Contains(p) {
			return true
		}
	}
	return false
}
