package ui

import (
	"strings"

	"forage/internal/core"
)

// PanelLines flattens a parameter snapshot into the text lines the HUD draws.
func PanelLines(title string, snap core.ParameterSnapshot) []string {
	lines := []string{title}
	for _, group := range snap.Groups {
		lines = append(lines, "")
		if group.Summary != "" {
			lines = append(lines, group.Summary)
		}
		if group.Name != "" {
			lines = append(lines, strings.ToUpper(group.Name))
		}
		for _, p := range group.Params {
			lines = append(lines, p.Label+": "+p.Value)
		}
	}
	return lines
}

// Title returns the heading for a simulation panel.
func Title(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Scoreboard"
	}
	return sim.Name() + " scoreboard"
}
