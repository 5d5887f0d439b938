package core

// Empty marks a slot that holds no occupant.
const Empty = -1

// SlotGrid stores at most one occupant id per cell in row-major order.
type SlotGrid struct {
	W, H int
	data []int
}

// NewSlotGrid allocates an empty grid with the given dimensions.
func NewSlotGrid(w, h int) *SlotGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &SlotGrid{W: w, H: h, data: make([]int, w*h)}
	g.Clear()
	return g
}

// Index returns the linear slice index for coordinates (x, y).
func (g *SlotGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies on the grid.
func (g *SlotGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the occupant id stored at (x, y), or Empty.
func (g *SlotGrid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.data[g.Index(x, y)]
}

// Set stores id at (x, y).
func (g *SlotGrid) Set(x, y, id int) {
	g.data[g.Index(x, y)] = id
}

// Unset clears (x, y).
func (g *SlotGrid) Unset(x, y int) {
	g.data[g.Index(x, y)] = Empty
}

// Count reports how many cells hold an occupant.
func (g *SlotGrid) Count() int {
	n := 0
	for _, v := range g.data {
		if v != Empty {
			n++
		}
	}
	return n
}

// Clear empties every slot.
func (g *SlotGrid) Clear() {
	for i := range g.data {
		g.data[i] = Empty
	}
}
