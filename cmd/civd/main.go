// civd runs the simulation headless, serving tick frames to websocket viewers
// and optionally recording per-tick statistics.
package main

import (
	"flag"
	"image/color"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixelciv/internal/record"
	"pixelciv/internal/server"
	"pixelciv/internal/sims/pixelciv"
	"pixelciv/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	addr := flag.String("addr", ":8791", "listen address for the viewer endpoint")
	tps := flag.Int("tps", 60, "ticks per second")
	seed := flag.Int64("seed", 0, "override the configured seed when non-zero")
	ticks := flag.Uint64("ticks", 0, "stop after this many ticks (0 = run until interrupted)")
	terrain := flag.String("terrain", "", "terrain image file (walkable = pure green)")
	dbPath := flag.String("db", "", "record tick stats into this SQLite file")
	logPath := flag.String("ticklog", "", "record tick stats into this zstd JSONL file")
	flag.Parse()

	cfg := pixelciv.DefaultConfig()
	if *configPath != "" {
		loaded, err := pixelciv.LoadConfig(*configPath)
		if err != nil {
			slog.Error("load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	world, err := pixelciv.New(cfg)
	if err != nil {
		slog.Error("create world", "err", err)
		os.Exit(1)
	}
	if *terrain != "" {
		f, err := os.Open(*terrain)
		if err != nil {
			slog.Error("open terrain", "path", *terrain, "err", err)
			os.Exit(1)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			slog.Error("decode terrain", "path", *terrain, "err", err)
			os.Exit(1)
		}
		if err := world.SetTerrain(pixelciv.MaskFromImage(img, color.RGBA{G: 255, A: 255})); err != nil {
			slog.Error("apply terrain", "path", *terrain, "err", err)
			os.Exit(1)
		}
	}
	world.Reset(cfg.Seed)

	var db *record.StatsDB
	if *dbPath != "" {
		db, err = record.OpenStatsDB(*dbPath)
		if err != nil {
			slog.Error("open stats db", "err", err)
			os.Exit(1)
		}
		defer db.Close()
	}
	var tickLog *record.TickLog
	if *logPath != "" {
		tickLog, err = record.NewTickLog(*logPath)
		if err != nil {
			slog.Error("open tick log", "err", err)
			os.Exit(1)
		}
		defer tickLog.Close()
	}

	resetCh := make(chan int64, 1)
	hub := server.NewHub(cfg.Width, cfg.Height)
	hub.OnReset(func(seed int64) {
		select {
		case resetCh <- seed:
		default:
		}
	})
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())
	go func() {
		slog.Info("viewer endpoint listening", "addr", *addr)
		if err := http.ListenAndServe(*addr, mux); err != nil {
			slog.Error("http serve", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	dt := 1.0 / float64(*tps)
	ticker := time.NewTicker(time.Second / time.Duration(*tps))
	defer ticker.Stop()

	slog.Info("simulation started",
		"size", cfg.Width*cfg.Height, "workers", cfg.Workers, "seed", cfg.Seed, "tps", *tps)

	var tick uint64
loop:
	for {
		select {
		case <-stop:
			break loop
		case seed := <-resetCh:
			world.Reset(seed)
			slog.Info("world reset", "seed", seed, "tick", tick)
		case <-ticker.C:
			tick++
			stats := world.StepStats(dt)
			hub.Broadcast(tick, world.Cells(), stats)
			if db != nil {
				if err := db.WriteSnapshot(tick, stats); err != nil {
					slog.Warn("stats db write failed", "tick", tick, "err", err)
				}
			}
			if tickLog != nil {
				if err := tickLog.Write(tick, stats); err != nil {
					slog.Warn("tick log write failed", "tick", tick, "err", err)
				}
			}
			if *ticks > 0 && tick >= *ticks {
				break loop
			}
		}
	}

	slog.Info("simulation stopped", "tick", tick, "alive", world.Stats().TotalAlive())
	os.Stdout.WriteString(ui.FormatStats(world.Stats()))
}
