package pixelciv

import (
	"fmt"
	"sync"

	"pixelciv/internal/core"
)

// World runs the population simulation: a dense person grid over a static
// terrain mask, updated in parallel by one worker per partition each tick.
type World struct {
	cfg Config

	grid    *Grid
	terrain *TerrainMask
	// terrainGenerated marks a procedural mask, which Reset rebuilds from the
	// seed. A mask supplied via SetTerrain survives resets.
	terrainGenerated bool

	// rowLocks serialize cell writes per grid row. Workers acquire the locks
	// of the rows they touch in ascending order, which makes the legal
	// cross-partition neighbor writes safe.
	rowLocks []sync.Mutex

	workers []*core.RNG

	stats   Stats
	display []uint8
}

// New constructs a world from the configuration, failing fast on invalid
// bounds. The terrain defaults to a procedural mask derived from the seed.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:              cfg,
		grid:             NewGrid(cfg.Width, cfg.Height),
		terrain:          GenerateMask(cfg.Width, cfg.Height, cfg.Seed, cfg.SeaLevel),
		terrainGenerated: true,
		rowLocks:         make([]sync.Mutex, cfg.Height),
		display:          make([]uint8, cfg.Width*cfg.Height),
	}
	w.seedWorkers(cfg.Seed)
	return w, nil
}

// workerSeedStride separates the per-worker PCG streams derived from the
// master seed. The derivation wraps in unsigned arithmetic.
const workerSeedStride uint64 = 0x9e3779b97f4a7c15

func (w *World) seedWorkers(seed int64) {
	w.workers = make([]*core.RNG, w.cfg.Workers)
	for i := range w.workers {
		w.workers[i] = core.NewRNG(int64(uint64(seed) + uint64(i+1)*workerSeedStride))
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "pixelciv" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// Cells exposes the display buffer for rendering.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the population grid.
func (w *World) Grid() *Grid { return w.grid }

// Terrain exposes the active terrain mask.
func (w *World) Terrain() *TerrainMask { return w.terrain }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Stats returns the snapshot aggregated during the most recent tick.
func (w *World) Stats() Stats { return w.stats }

// SetTerrain replaces the terrain mask, typically with one decoded from a map
// image. The mask must match the grid dimensions.
func (w *World) SetTerrain(mask *TerrainMask) error {
	if mask == nil {
		return fmt.Errorf("%w: nil terrain mask", ErrInvalidConfig)
	}
	mw, mh := mask.Size()
	if mw != w.grid.W || mh != w.grid.H {
		return fmt.Errorf("%w: terrain mask %dx%d for a %dx%d grid",
			ErrInvalidConfig, mw, mh, w.grid.W, w.grid.H)
	}
	w.terrain = mask
	w.terrainGenerated = false
	w.rebuildDisplay()
	return nil
}

// Reset clears the grid and spawns the configured tribes using deterministic
// randomness. A zero seed falls back to the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	if w.terrainGenerated {
		w.terrain = GenerateMask(w.grid.W, w.grid.H, effective, w.cfg.SeaLevel)
	}
	w.grid.Clear()
	w.seedWorkers(effective)

	rng := core.NewRNG(effective)
	for _, tribe := range w.cfg.Tribes {
		w.spawnTribe(rng, tribe)
	}
	w.stats = Stats{}
	w.rebuildDisplay()
}

// spawnTribe scatters agents across the tribe's rectangle, keeping only the
// draws that land on walkable tiles. Water draws are discarded, so the actual
// population may come in below Count.
func (w *World) spawnTribe(rng *core.RNG, tribe TribeSpawn) {
	pr := w.cfg.Params
	for i := 0; i < tribe.Count; i++ {
		x := clamp(rng.Between(tribe.MinX, tribe.MaxX), 0, w.grid.W-1)
		y := clamp(rng.Between(tribe.MinY, tribe.MaxY), 0, w.grid.H-1)
		if !w.terrain.Walkable(x, y) {
			continue
		}
		w.grid.cells[w.grid.Index(x, y)] = Person{
			Active:       true,
			Group:        tribe.Group,
			Male:         rng.Bool(),
			Reproduction: float64(rng.Between(1, 20)),
			Age:          float64(rng.Between(1, 35)),
			Strength:     rng.Between(pr.MinStartStrength, pr.MaxStartStrength),
		}
	}
}

// Step advances the world by one tick of dt years.
func (w *World) Step(dt float64) { w.StepStats(dt) }

// StepStats runs one tick and returns the per-faction statistics gathered
// during it. The call is synchronous: it returns only after every worker has
// finished its partition and the counters are merged.
func (w *World) StepStats(dt float64) Stats {
	parts := w.grid.Partition(len(w.workers))
	local := make([]Stats, len(parts))

	var wg sync.WaitGroup
	for i, r := range parts {
		wg.Add(1)
		go func(i int, r Range) {
			defer wg.Done()
			wk := worker{world: w, rng: w.workers[i], dt: dt}
			wk.run(r)
			local[i] = wk.stats
		}(i, r)
	}
	wg.Wait()

	merged := Stats{}
	for _, s := range local {
		merged.Merge(s)
	}
	w.stats = merged
	w.rebuildDisplay()
	return merged
}

func (w *World) lockRow(y int)   { w.rowLocks[y].Lock() }
func (w *World) unlockRow(y int) { w.rowLocks[y].Unlock() }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	core.Register("pixelciv", func(cfg map[string]string) core.Sim {
		w, err := New(FromMap(cfg))
		if err != nil {
			// FromMap only emits validated values, so this is unreachable
			// without a programming error.
			panic(err)
		}
		return w
	})
}
