package pixelciv

import (
	"image"
	"image/color"
	"slices"
	"testing"
)

func TestMaskFromImageClassifiesExactColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	green := color.RGBA{G: 255, A: 255}
	img.Set(1, 0, green)
	img.Set(3, 1, green)
	img.Set(0, 1, color.RGBA{B: 255, A: 255})

	m := MaskFromImage(img, green)
	w, h := m.Size()
	if w != 4 || h != 2 {
		t.Fatalf("mask size %dx%d, expected 4x2", w, h)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := (x == 1 && y == 0) || (x == 3 && y == 1)
			if got := m.Walkable(x, y); got != want {
				t.Fatalf("Walkable(%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestMaskWalkableOutsideBounds(t *testing.T) {
	m := NewTerrainMask(3, 3)
	for i := range m.Tiles() {
		m.Tiles()[i] = TileWalkable
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if m.Walkable(c[0], c[1]) {
			t.Fatalf("coordinates (%d,%d) outside the mask must be blocked", c[0], c[1])
		}
	}
}

func TestGenerateMaskDeterministic(t *testing.T) {
	a := GenerateMask(64, 48, 42, 0.45)
	b := GenerateMask(64, 48, 42, 0.45)
	if !slices.Equal(a.Tiles(), b.Tiles()) {
		t.Fatal("same seed must generate the same mask")
	}
	c := GenerateMask(64, 48, 43, 0.45)
	if slices.Equal(a.Tiles(), c.Tiles()) {
		t.Fatal("different seeds should generate different masks")
	}

	walkable := 0
	for _, tile := range a.Tiles() {
		if tile == TileWalkable {
			walkable++
		}
	}
	if walkable == 0 || walkable == len(a.Tiles()) {
		t.Fatalf("generated mask should mix land and water, got %d/%d walkable",
			walkable, len(a.Tiles()))
	}
}
