package render

import (
	"image/color"
	"strings"
	"testing"

	"forage/internal/sims/forage"
)

func TestFillPaletteRGBAClampsIndices(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := PaletteImage([]uint8{0, 1, 7}, palette)
	want := []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}
	if string(buf) != string(want) {
		t.Fatalf("unexpected pixels %v", buf)
	}
	empty := PaletteImage([]uint8{3}, nil)
	if string(empty) != string([]byte{0, 0, 0, 0}) {
		t.Fatalf("empty palette should clear, got %v", empty)
	}
}

func TestBoardMarksAgentsAndResources(t *testing.T) {
	st := forage.State{
		Columns: 4,
		Rows:    3,
		Agents: []forage.AgentState{
			{ID: 0, Pos: forage.Pos{Row: 0, Col: 0}, Window: forage.Window{MinRow: 0, MinCol: 0, MaxRow: 1, MaxCol: 1}},
		},
		Resources: []forage.Resource{
			{ID: 0, Pos: forage.Pos{Row: 1, Col: 1}, Value: 3, Present: true},
			{ID: 1, Pos: forage.Pos{Row: 2, Col: 3}, Value: 1, Present: true},
		},
	}
	got := Board(st)
	want := strings.Join([]string{
		"+----+",
		"|A.  |",
		"|.3  |",
		"|   1|",
		"+----+",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected board:\n%s\nwant:\n%s", got, want)
	}
}

func TestScoreboardFormat(t *testing.T) {
	st := forage.State{
		Status: forage.StatusFinished,
		Agents: []forage.AgentState{{ID: 0, Score: 5}, {ID: 1, Score: 0}},
	}
	want := "All apples collected!\nAgent 1: 5 points\nAgent 2: 0 points\n"
	if got := Scoreboard(st); got != want {
		t.Fatalf("unexpected scoreboard %q", got)
	}
	st.Status = forage.StatusRunning
	if got := Scoreboard(st); strings.Contains(got, "All apples") {
		t.Fatalf("running scoreboard should not announce completion: %q", got)
	}
}

func TestBoardFromWorld(t *testing.T) {
	w := forage.NewWithConfig(forage.DefaultConfig())
	if err := w.Reset(4); err != nil {
		t.Fatal(err)
	}
	board := Board(w.State())
	lines := strings.Split(strings.TrimSuffix(board, "\n"), "\n")
	if len(lines) != 8+2 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len(l) != 12+2 {
			t.Fatalf("line %q has wrong width", l)
		}
	}
	for _, glyph := range []string{"A", "B", "C"} {
		if strings.Count(board, glyph) != 1 {
			t.Fatalf("expected one %s on the board", glyph)
		}
	}
}
