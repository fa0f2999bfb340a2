//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"pixelciv/internal/sims/pixelciv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type statsProvider interface {
	Stats() pixelciv.Stats
}

// HUD paints the population statistics panel in the lower-left corner of the
// simulation view.
type HUD struct {
	sim   statsProvider
	panel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation.
func NewHUD(sim statsProvider) *HUD {
	return &HUD{sim: sim}
}

const (
	hudLineHeight = 14
	hudPadding    = 6
	hudWidth      = 360
)

// Draw renders the stats readout over the given screen.
func (h *HUD) Draw(screen *ebiten.Image, tps float64) {
	if h == nil || h.sim == nil {
		return
	}
	body := fmt.Sprintf("pixelciv ~ Tps %.0f\n", tps) + FormatStats(h.sim.Stats())
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")

	height := len(lines)*hudLineHeight + 2*hudPadding
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(hudWidth, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 220})

	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(h.panel, line, face, hudPadding, hudPadding+(i+1)*hudLineHeight-3, color.White)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(screen.Bounds().Dy()-height))
	screen.DrawImage(h.panel, op)
}
