//go:build !ebiten

package ui

import "pixelciv/internal/sims/pixelciv"

type statsProvider interface {
	Stats() pixelciv.Stats
}

// HUD is a placeholder for builds without the ebiten tag.
type HUD struct{}

// NewHUD returns a no-op HUD in the headless build.
func NewHUD(statsProvider) *HUD { return &HUD{} }

// Draw is a no-op placeholder to satisfy the interface shape.
func (h *HUD) Draw(any, float64) {}
