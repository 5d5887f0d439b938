//go:build ebiten

package ui

import (
	"image/color"
	"strconv"

	"forage/internal/core"
	"forage/internal/sims/forage"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type stateProvider interface {
	State() forage.State
}

// Overlay labels agents and resources and outlines vision windows.
type Overlay struct {
	sim         core.Sim
	scale       int
	showWindows bool
	showLabels  bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showLabels: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: 1 for vision windows, 2 for labels.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showWindows = !o.showWindows
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showLabels = !o.showLabels
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(stateProvider)
	if !ok {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	st := provider.State()

	if o.showWindows {
		for _, a := range st.Agents {
			o.drawWindow(screen, a.Window, scale, agentColor(a.ID))
		}
	}
	if !o.showLabels || scale < 10 {
		return
	}
	face := basicfont.Face7x13
	for _, r := range st.Resources {
		x := r.Pos.Col*scale + scale/2 - 3
		y := r.Pos.Row*scale + scale/2 + 5
		text.Draw(screen, strconv.Itoa(r.Value), face, x, y, color.Black)
	}
	for i, a := range st.Agents {
		label := strconv.Itoa(i + 1)
		x := a.Pos.Col*scale + scale/2 - 3*len(label)
		y := a.Pos.Row*scale + scale/2 + 5
		text.Draw(screen, label, face, x, y, color.White)
	}
}

func (o *Overlay) drawWindow(screen *ebiten.Image, w forage.Window, scale int, col color.RGBA) {
	x0 := float64(w.MinCol * scale)
	y0 := float64(w.MinRow * scale)
	x1 := float64((w.MaxCol + 1) * scale)
	y1 := float64((w.MaxRow + 1) * scale)
	o.fillRect(screen, x0, y0, x1-x0, 1, col)
	o.fillRect(screen, x0, y1-1, x1-x0, 1, col)
	o.fillRect(screen, x0, y0, 1, y1-y0, col)
	o.fillRect(screen, x1-1, y0, 1, y1-y0, col)
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

var agentColors = []color.RGBA{
	{R: 255, G: 80, B: 80, A: 255},
	{R: 80, G: 200, B: 255, A: 255},
	{R: 255, G: 220, B: 60, A: 255},
	{R: 180, G: 120, B: 255, A: 255},
}

func agentColor(id int) color.RGBA {
	return agentColors[id%len(agentColors)]
}
