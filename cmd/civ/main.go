//go:build ebiten

package main

import (
	"errors"
	"flag"
	"image/color"
	"image/png"
	"log"
	"os"

	"pixelciv/internal/app"
	"pixelciv/internal/core"
	"pixelciv/internal/sims/pixelciv"
	"pixelciv/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	sim := factory(cfg.SimOptions())
	world, _ := sim.(*pixelciv.World)

	if cfg.Terrain != "" && world != nil {
		f, err := os.Open(cfg.Terrain)
		if err != nil {
			log.Fatalf("open terrain: %v", err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			log.Fatalf("decode terrain: %v", err)
		}
		if err := world.SetTerrain(pixelciv.MaskFromImage(img, color.RGBA{G: 255, A: 255})); err != nil {
			log.Fatalf("apply terrain: %v", err)
		}
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Seed, cfg.TPS)
	if world != nil {
		game.AttachHUD(ui.NewHUD(world))
	}

	size := sim.Size()
	ebiten.SetWindowTitle("pixelciv — " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
