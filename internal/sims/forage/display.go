package forage

import "image/color"

const (
	displayVisibleBit  = 0x01
	displayAgentBit    = 0x02
	displayValueShift  = 2
	displayValueMask   = 0x0c
	displayPaletteSize = 16
)

var foragePalette = buildForagePalette()

// Cells exposes the current display buffer, one byte per cell.
func (w *World) Cells() []uint8 { return w.display }

// Palette exposes the color palette used for rendering the board.
func (w *World) Palette() []color.RGBA { return foragePalette }

// DecodeCell splits a display byte into its parts.
func DecodeCell(v uint8) (visible, agent bool, value int) {
	return v&displayVisibleBit != 0, v&displayAgentBit != 0, int(v&displayValueMask) >> displayValueShift
}

func encodeDisplayValue(visible, agent bool, value int) uint8 {
	var v uint8
	if visible {
		v |= displayVisibleBit
	}
	if agent {
		v |= displayAgentBit
	}
	if value > 3 {
		value = 3
	}
	if value > 0 {
		v |= uint8(value<<displayValueShift) & displayValueMask
	}
	return v
}

func (w *World) rebuildDisplay() {
	if w.board == nil {
		return
	}
	for i := range w.display {
		p := w.board.PosOf(i)
		value := 0
		if r, ok := w.board.ResourceAt(p); ok {
			value = r.Value
		}
		w.display[i] = encodeDisplayValue(w.field.Visible(p), w.board.IsOccupiedByAgent(p), value)
	}
}

func buildForagePalette() []color.RGBA {
	palette := make([]color.RGBA, displayPaletteSize)
	for i := range palette {
		visible, agent, value := DecodeCell(uint8(i))
		palette[i] = paletteColorFor(visible, agent, value)
	}
	return palette
}

func paletteColorFor(visible, agent bool, value int) color.RGBA {
	base := color.RGBA{R: 28, G: 30, B: 36, A: 255}
	if visible {
		base = color.RGBA{R: 64, G: 70, B: 58, A: 255}
	}
	switch {
	case agent:
		return color.RGBA{R: 90, G: 160, B: 235, A: 255}
	case value == 1:
		return color.RGBA{R: 235, G: 120, B: 110, A: 255}
	case value == 2:
		return color.RGBA{R: 220, G: 60, B: 50, A: 255}
	case value >= 3:
		return color.RGBA{R: 170, G: 20, B: 30, A: 255}
	default:
		return base
	}
}
