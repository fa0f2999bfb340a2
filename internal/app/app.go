//go:build ebiten

package app

import (
	"image/color"
	"time"

	"pixelciv/internal/core"
	"pixelciv/internal/render"
	"pixelciv/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface. The simulation
// ticks at its own rate, decoupled from the display frame rate.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	timer   *core.FixedStep

	palette []color.RGBA

	dt       float64
	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation, advancing it tps times
// per second by one tick of 1/tps simulated years.
func New(sim core.Sim, scale int, seed int64, tps int) *Game {
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	timer := core.NewFixedStep(tps)
	g := &Game{
		sim:     sim,
		painter: gp,
		timer:   timer,
		dt:      timer.Delta(),
		scale:   scale,
		seed:    seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// AttachHUD wires the stats panel over the simulation view.
func (g *Game) AttachHUD(h *ui.HUD) { g.hud = h }

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
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

	if g.tickOnce {
		g.sim.Step(g.dt)
		g.tickOnce = false
		return nil
	}
	if !g.paused && g.timer.ShouldStep() {
		g.sim.Step(g.dt)
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	if g.hud != nil {
		g.hud.Draw(screen, ebiten.ActualTPS())
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
