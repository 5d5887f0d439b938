//go:build ebiten

package app

import (
	"log"
	"time"

	"forage/internal/core"
	"forage/internal/render"
	"forage/internal/sims/forage"
	"forage/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the scoreboard panel width in pixels.
const HUDWidth = 220

// Game adapts a foraging world to the ebiten.Game interface. Turns advance
// on N or on the fixed-step timer while autoplay is on.
type Game struct {
	world   *forage.World
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep
	log     *log.Logger

	scale    int
	autoplay bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(w *forage.World, scale, tps int, seed int64, logger *log.Logger) *Game {
	size := w.Size()
	return &Game{
		world:   w,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(w, HUDWidth),
		overlay: ui.NewOverlay(w, scale),
		timer:   core.NewFixedStep(tps),
		log:     logger,
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	if err := g.world.Reset(seed); err != nil {
		g.log.Printf("reset failed: %v", err)
	}
	g.tickOnce = false
	g.timer.Restart()
}

// Update handles input and advances the world.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.autoplay = !g.autoplay
		g.timer.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()

	if g.tickOnce || (g.autoplay && g.timer.ShouldStep()) {
		g.advance()
		g.tickOnce = false
	}
	g.hud.Update()
	return nil
}

func (g *Game) advance() {
	report := g.world.AdvanceTurn()
	if !report.Advanced {
		return
	}
	if report.Status == forage.StatusFinished {
		g.autoplay = false
		g.log.Printf("all apples collected after %d turns, scores %v", report.Turn, g.world.Scores())
	}
}

// Draw renders the board, overlay and scoreboard.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world.Cells(), g.world.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.world.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
