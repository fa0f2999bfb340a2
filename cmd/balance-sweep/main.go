// balance-sweep evaluates disease and reproduction parameter sets headless
// and reports how each faction fares, to help pick defaults that keep all
// four tribes alive.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"pixelciv/internal/sims/pixelciv"
)

type paramSet struct {
	chanceForDisease int
	maxDisease       float64
	minReproduce     int
	maxReproduce     int
}

func (p paramSet) String() string {
	return fmt.Sprintf("disease=1/%d maxSick=%.0fy reproduce=[%d,%d]y",
		p.chanceForDisease+1, p.maxDisease, p.minReproduce, p.maxReproduce)
}

type result struct {
	params   paramSet
	alive    int
	survived int
	perGroup [pixelciv.NumGroups]int
}

func main() {
	steps := flag.Int("steps", 2000, "ticks to simulate per scenario")
	dt := flag.Float64("dt", 0.02, "years per tick")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scenario evaluations")
	seed := flag.Int64("seed", 1337, "seed used for deterministic runs")
	flag.Parse()

	var scenarios []paramSet
	for _, chance := range []int{2000, 20000, 200000} {
		for _, sick := range []float64{1, 2, 4} {
			for _, repro := range [][2]int{{2, 8}, {3, 12}, {5, 20}} {
				scenarios = append(scenarios, paramSet{
					chanceForDisease: chance,
					maxDisease:       sick,
					minReproduce:     repro[0],
					maxReproduce:     repro[1],
				})
			}
		}
	}

	jobs := make(chan paramSet)
	results := make([]result, 0, len(scenarios))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				r := evaluate(params, *steps, *dt, *seed)
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}()
	}
	for _, s := range scenarios {
		jobs <- s
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].survived != results[j].survived {
			return results[i].survived > results[j].survived
		}
		return results[i].alive > results[j].alive
	})

	fmt.Printf("%-44s %9s %9s  per-group\n", "params", "factions", "alive")
	for _, r := range results {
		fmt.Printf("%-44s %9d %9d  %v\n", r.params, r.survived, r.alive, r.perGroup)
	}
}

func evaluate(params paramSet, steps int, dt float64, seed int64) result {
	cfg := pixelciv.DefaultConfig()
	cfg.Width = 160
	cfg.Height = 120
	cfg.Seed = seed
	cfg.Workers = 2
	cfg.SeaLevel = 0.35
	cfg.Params.ChanceForDisease = params.chanceForDisease
	cfg.Params.MaxLengthDisease = params.maxDisease
	cfg.Params.MinYearsUntilReproduce = params.minReproduce
	cfg.Params.MaxYearsUntilReproduce = params.maxReproduce
	cfg.Tribes = []pixelciv.TribeSpawn{
		{Group: pixelciv.GroupRed, MinX: 10, MinY: 10, MaxX: 50, MaxY: 50, Count: 60},
		{Group: pixelciv.GroupYellow, MinX: 110, MinY: 10, MaxX: 150, MaxY: 50, Count: 60},
		{Group: pixelciv.GroupViolet, MinX: 10, MinY: 70, MaxX: 50, MaxY: 110, Count: 60},
		{Group: pixelciv.GroupBlue, MinX: 110, MinY: 70, MaxX: 150, MaxY: 110, Count: 60},
	}

	world, err := pixelciv.New(cfg)
	if err != nil {
		panic(err)
	}
	world.Reset(seed)

	var stats pixelciv.Stats
	for i := 0; i < steps; i++ {
		stats = world.StepStats(dt)
	}

	r := result{params: params, alive: stats.TotalAlive()}
	for g := pixelciv.GroupRed; g <= pixelciv.GroupBlue; g++ {
		r.perGroup[g-pixelciv.GroupRed] = stats[g].Total
		if stats[g].Total > 0 {
			r.survived++
		}
	}
	return r
}
