package pixelciv

import "image/color"

// Display byte layout: water and grass tiles first, then one pair of entries
// per faction (healthy, diseased).
const (
	displayWater uint8 = iota
	displayGrass
	displayOccupiedBase
)

var palette = buildPalette()

// Palette exposes the color table used for rendering the display buffer.
func (w *World) Palette() []color.RGBA {
	return palette
}

func buildPalette() []color.RGBA {
	p := make([]color.RGBA, int(displayOccupiedBase)+NumGroups*2)
	p[displayWater] = color.RGBA{B: 255, A: 255}
	p[displayGrass] = color.RGBA{G: 255, A: 255}
	for g := GroupRed; g <= GroupBlue; g++ {
		base := groupColor(g)
		healthy, diseased := encodeDisplayValue(g, false), encodeDisplayValue(g, true)
		p[healthy] = base
		p[diseased] = dim(base)
	}
	return p
}

func groupColor(g Group) color.RGBA {
	switch g {
	case GroupRed:
		return color.RGBA{R: 255, A: 255}
	case GroupYellow:
		return color.RGBA{R: 255, G: 200, A: 255}
	case GroupViolet:
		return color.RGBA{R: 128, B: 255, A: 255}
	case GroupBlue:
		return color.RGBA{G: 128, B: 255, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}

// dim darkens a faction color to mark infected agents.
func dim(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * 160 / 255),
		G: uint8(uint16(c.G) * 160 / 255),
		B: uint8(uint16(c.B) * 160 / 255),
		A: 255,
	}
}

func encodeDisplayValue(g Group, diseased bool) uint8 {
	v := displayOccupiedBase + uint8(g-GroupRed)*2
	if diseased {
		v++
	}
	return v
}

func (w *World) rebuildDisplay() {
	cells := w.grid.cells
	for i := range cells {
		p := &cells[i]
		if p.Active {
			w.display[i] = encodeDisplayValue(p.Group, p.Diseased())
			continue
		}
		if w.terrain.tiles[i] == TileWalkable {
			w.display[i] = displayGrass
		} else {
			w.display[i] = displayWater
		}
	}
}
