package pixelciv

// Group identifies one of the fixed population factions. The zero value means
// no faction and only appears on inactive cells.
type Group uint8

const (
	GroupNone Group = iota
	GroupRed
	GroupYellow
	GroupViolet
	GroupBlue
)

// NumGroups counts the playable factions (GroupNone excluded).
const NumGroups = 4

// String returns the faction name for display purposes.
func (g Group) String() string {
	switch g {
	case GroupRed:
		return "Red"
	case GroupYellow:
		return "Yellow"
	case GroupViolet:
		return "Violet"
	case GroupBlue:
		return "Blue"
	default:
		return "None"
	}
}

// Person is a single entity of the population, stored by value in its grid
// cell. An inactive cell holds the zero Person; an active cell always has
// Strength > 0 and Age >= 0.
type Person struct {
	// Active reports whether the cell holds a living agent.
	Active bool
	// Updated is set when an agent arrives in this cell mid-tick (by moving
	// or being born) and cleared the next time the cell is visited, so the
	// arrival is not processed twice in one pass.
	Updated bool
	// Group is the faction the agent belongs to.
	Group Group
	// Male agents never carry a reproduction countdown; only non-male agents
	// track and consume Reproduction. This asymmetry is part of the rules.
	Male bool
	// Disease is the number of years of infection remaining; 0 means healthy.
	Disease float64
	// Reproduction is the number of years until the next eligible birth.
	Reproduction float64
	// Age in years.
	Age float64
	// Strength determines combat outcomes and caps the agent's lifespan.
	Strength int
}

// Diseased reports whether the agent currently carries an infection.
func (p *Person) Diseased() bool { return p.Disease > 0 }
