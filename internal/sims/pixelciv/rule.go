package pixelciv

// maxAge is the hard lifespan cap in years, regardless of strength.
const maxAge = 85

// worker applies the transition rule over one partition. Each worker owns its
// RNG stream and its Stats; the only shared state it touches is the grid, and
// every grid mutation happens under the affected row locks.
type worker struct {
	world *World
	rng   randSource
	dt    float64
	stats Stats
}

// randSource is the slice of RNG behavior the rule depends on, so tests can
// drive single scenarios with a seeded stream.
type randSource interface {
	IntN(n int) int
	Between(min, max int) int
	Bool() bool
}

// run processes the cells of r in strict row-major order.
func (wk *worker) run(r Range) {
	w := wk.world.grid.W
	x := r.From % w
	y := r.From / w
	for idx := r.From; idx < r.From+r.Length; idx++ {
		wk.updateCell(x, y, idx)
		x++
		if x >= w {
			x = 0
			y++
		}
	}
}

// updateCell advances the agent at (x, y) by one tick. The movement target is
// resolved in the same pass, which may write into a neighboring row owned by
// another worker; the row locks serialize those writes.
func (wk *worker) updateCell(x, y, idx int) {
	w := wk.world
	cells := w.grid.cells
	p := &cells[idx]

	w.lockRow(y)
	if !p.Active || p.Updated {
		// A cell that arrived this tick is skipped once; an empty cell has
		// nothing to do. Either way the arrival marker is consumed.
		p.Updated = false
		w.unlockRow(y)
		return
	}

	wk.stats.record(p)

	p.Age += wk.dt
	if p.Age >= float64(p.Strength) || p.Age >= maxAge {
		*p = Person{}
		w.unlockRow(y)
		return
	}

	if !p.Male {
		p.Reproduction -= wk.dt
	}

	pr := &w.cfg.Params
	if p.Diseased() {
		p.Age += wk.dt * pr.DiseasedAgingFactor
		p.Disease -= wk.dt
	} else if pr.ChanceForDisease > 0 && wk.rng.IntN(pr.ChanceForDisease+1) == 1 {
		p.Disease = float64(wk.rng.Between(1, int(pr.MaxLengthDisease)))
	}

	tx, ty := wk.destination(x, y)
	if (tx == x && ty == y) || !w.terrain.Walkable(tx, ty) {
		w.unlockRow(y)
		return
	}

	// Take the target row lock in ascending order. When the target row lies
	// above the acting row the acting lock is dropped and the pair is
	// reacquired low-to-high; the agent itself cannot be deactivated or
	// relocated by anyone else in that window, since only this worker
	// processes its partition.
	if ty > y {
		w.lockRow(ty)
	} else if ty < y {
		w.unlockRow(y)
		w.lockRow(ty)
		w.lockRow(y)
	}

	wk.resolve(p, &cells[w.grid.Index(tx, ty)])

	if ty != y {
		w.unlockRow(ty)
	}
	w.unlockRow(y)
}

// destination picks one of the four Manhattan neighbors uniformly. A step
// past the grid edge clamps to "stay".
func (wk *worker) destination(x, y int) (int, int) {
	g := wk.world.grid
	switch wk.rng.IntN(4) {
	case 0:
		if x+1 < g.W {
			return x + 1, y
		}
	case 1:
		if y+1 < g.H {
			return x, y + 1
		}
	case 2:
		if x > 0 {
			return x - 1, y
		}
	case 3:
		if y > 0 {
			return x, y - 1
		}
	}
	return x, y
}

// resolve applies the target-cell interaction for an agent that chose a
// walkable destination. Both cells' row locks are held by the caller.
func (wk *worker) resolve(p, target *Person) {
	pr := &wk.world.cfg.Params
	switch {
	case !target.Active:
		if !p.Male && p.Reproduction <= 0 {
			// Birth: the parent stays put, resets its countdown and places a
			// child at the destination. The child inherits group and disease,
			// everything else is rolled fresh.
			p.Reproduction = float64(wk.rng.Between(pr.MinYearsUntilReproduce, pr.MaxYearsUntilReproduce))
			child := *p
			child.Male = wk.rng.Bool()
			child.Reproduction = float64(wk.rng.Between(pr.MinYearsUntilReproduce, pr.MaxYearsUntilReproduce))
			lo := p.Strength - 15
			if lo < 15 {
				lo = 15
			}
			child.Strength = wk.rng.Between(lo, p.Strength+30)
			child.Age = 1
			child.Updated = true
			*target = child
			return
		}
		// Walk to the free destination.
		*target = *p
		target.Updated = true
		*p = Person{}

	case target.Group == p.Group:
		// Meeting a neighbor of the same faction can pass on an infection.
		if p.Diseased() && wk.rng.IntN(3) == 0 {
			target.Disease = p.Disease
		}

	default:
		// Combat. The weaker agent's age is set to the winner's strength, so
		// it falls at its own next death check rather than instantly.
		if target.Strength > p.Strength {
			p.Age = float64(target.Strength)
		} else {
			target.Age = float64(p.Strength)
		}
	}
}
