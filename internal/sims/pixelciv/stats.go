package pixelciv

// PopulationStats records the aggregate counters for one faction. SumAge
// accumulates whole years (ages are truncated before summing).
type PopulationStats struct {
	Total       int `json:"total"`
	Diseased    int `json:"diseased"`
	SumStrength int `json:"sum_strength"`
	SumAge      int `json:"sum_age"`
}

// AvgStrength returns the mean strength, or 0 for an empty faction.
func (s PopulationStats) AvgStrength() int {
	if s.Total == 0 {
		return 0
	}
	return s.SumStrength / s.Total
}

// AvgAge returns the mean age in whole years, or 0 for an empty faction.
func (s PopulationStats) AvgAge() int {
	if s.Total == 0 {
		return 0
	}
	return s.SumAge / s.Total
}

// Stats indexes per-faction counters by Group. Index 0 (GroupNone) stays
// empty. Each worker accumulates its own Stats during the parallel phase and
// the scheduler merges them at the join point.
type Stats [NumGroups + 1]PopulationStats

// record folds one active agent into the counters.
func (s *Stats) record(p *Person) {
	g := &s[p.Group]
	g.Total++
	g.SumStrength += p.Strength
	g.SumAge += int(p.Age)
	if p.Diseased() {
		g.Diseased++
	}
}

// Merge adds the counters from other into s.
func (s *Stats) Merge(other Stats) {
	for i := range s {
		s[i].Total += other[i].Total
		s[i].Diseased += other[i].Diseased
		s[i].SumStrength += other[i].SumStrength
		s[i].SumAge += other[i].SumAge
	}
}

// TotalAlive sums the population across all factions.
func (s Stats) TotalAlive() int {
	alive := 0
	for i := range s {
		alive += s[i].Total
	}
	return alive
}
