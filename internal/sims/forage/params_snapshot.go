package forage

import (
	"fmt"
	"strconv"

	"forage/internal/core"
)

// Parameters returns the turn summary and scoreboard for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	remaining := 0
	if w.board != nil {
		remaining = w.board.ResourceCount()
	}
	run := core.ParameterGroup{
		Name: "Run",
		Params: []core.Parameter{
			{Key: "turn", Label: "Turn", Value: strconv.Itoa(w.turn)},
			{Key: "status", Label: "Status", Value: w.status.String()},
			{Key: "resources", Label: "Apples left", Value: strconv.Itoa(remaining)},
			{Key: "vision", Label: "Vision", Value: visionLabel(w.cfg.Radius())},
		},
	}
	if w.status == StatusFinished {
		run.Summary = "All apples collected!"
	}
	scores := core.ParameterGroup{Name: "Scores"}
	for i, s := range w.Scores() {
		scores.Params = append(scores.Params, core.Parameter{
			Key:   fmt.Sprintf("agent_%d", i),
			Label: fmt.Sprintf("Agent %d", i+1),
			Value: fmt.Sprintf("%d points", s),
		})
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{run, scores}}
}

func visionLabel(r int) string {
	if r < 0 {
		return "full"
	}
	return fmt.Sprintf("%dx%d", 2*r+1, 2*r+1)
}
