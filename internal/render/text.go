package render

import (
	"fmt"
	"io"
	"strings"

	"forage/internal/sims/forage"
)

// Board draws the state as text, one row per line. Agents are letters from
// A, resources show their value, cells outside every vision window are
// blank and visible empty cells are dots.
func Board(st forage.State) string {
	if st.Columns <= 0 || st.Rows <= 0 {
		return ""
	}
	grid := make([][]byte, st.Rows)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", st.Columns))
	}
	for _, a := range st.Agents {
		w := a.Window
		for r := max(w.MinRow, 0); r <= min(w.MaxRow, st.Rows-1); r++ {
			for c := max(w.MinCol, 0); c <= min(w.MaxCol, st.Columns-1); c++ {
				grid[r][c] = '.'
			}
		}
	}
	for _, res := range st.Resources {
		if inside(st, res.Pos) {
			grid[res.Pos.Row][res.Pos.Col] = byte('0' + res.Value%10)
		}
	}
	for _, a := range st.Agents {
		if inside(st, a.Pos) {
			grid[a.Pos.Row][a.Pos.Col] = agentGlyph(a.ID)
		}
	}

	var b strings.Builder
	border := "+" + strings.Repeat("-", st.Columns) + "+\n"
	b.WriteString(border)
	for _, row := range grid {
		b.WriteByte('|')
		b.Write(row)
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}

// Scoreboard lists every agent's score, headed by the completion banner once
// the run is finished.
func Scoreboard(st forage.State) string {
	var b strings.Builder
	if st.Status == forage.StatusFinished {
		b.WriteString("All apples collected!\n")
	}
	for i, a := range st.Agents {
		fmt.Fprintf(&b, "Agent %d: %d points\n", i+1, a.Score)
	}
	return b.String()
}

// WriteTurn prints a one-line turn header followed by the board.
func WriteTurn(w io.Writer, st forage.State) error {
	_, err := fmt.Fprintf(w, "turn %d  %s  apples left %d\n%s", st.Turn, st.Status, len(st.Resources), Board(st))
	return err
}

func agentGlyph(id int) byte {
	if id < 26 {
		return byte('A' + id)
	}
	return '@'
}

func inside(st forage.State, p forage.Pos) bool {
	return p.Row >= 0 && p.Row < st.Rows && p.Col >= 0 && p.Col < st.Columns
}
