package pixelciv

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("pixelciv: invalid config")

// Params holds the tunable probabilities and intervals of the population
// rules. All values are fixed for the lifetime of a run.
type Params struct {
	// DiseasedAgingFactor multiplies the extra aging applied per tick while an
	// agent is infected.
	DiseasedAgingFactor float64 `yaml:"diseased_aging_factor"`
	// ChanceForDisease expresses infection odds as 1-in-(N+1) per tick.
	// Zero disables infection entirely.
	ChanceForDisease int `yaml:"chance_for_disease"`
	// MaxLengthDisease is the longest possible infection, in years.
	MaxLengthDisease float64 `yaml:"max_length_disease"`

	MinYearsUntilReproduce int `yaml:"min_years_until_reproduce"`
	MaxYearsUntilReproduce int `yaml:"max_years_until_reproduce"`

	MinStartStrength int `yaml:"min_start_strength"`
	MaxStartStrength int `yaml:"max_start_strength"`
}

// TribeSpawn places Count agents of one faction at random walkable positions
// inside the given rectangle when the world resets.
type TribeSpawn struct {
	Group Group `yaml:"group"`
	MinX  int   `yaml:"min_x"`
	MinY  int   `yaml:"min_y"`
	MaxX  int   `yaml:"max_x"`
	MaxY  int   `yaml:"max_y"`
	Count int   `yaml:"count"`
}

// Config controls the simulation dimensions, concurrency and rules.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`

	// Workers is the number of grid partitions updated in parallel per tick.
	Workers int `yaml:"workers"`

	// SeaLevel feeds the procedural terrain generator when no terrain image
	// is supplied.
	SeaLevel float64 `yaml:"sea_level"`

	Params Params `yaml:"params"`

	Tribes []TribeSpawn `yaml:"tribes"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    640,
		Height:   360,
		Seed:     1337,
		Workers:  4,
		SeaLevel: 0.45,
		Params: Params{
			DiseasedAgingFactor:    16,
			ChanceForDisease:       20000,
			MaxLengthDisease:       2,
			MinYearsUntilReproduce: 3,
			MaxYearsUntilReproduce: 12,
			MinStartStrength:       40,
			MaxStartStrength:       85,
		},
		Tribes: []TribeSpawn{
			{Group: GroupRed, MinX: 380, MinY: 60, MaxX: 400, MaxY: 80, Count: 50},
			{Group: GroupBlue, MinX: 400, MinY: 110, MaxX: 420, MaxY: 130, Count: 50},
		},
	}
}

// Validate reports whether the configuration satisfies the engine's
// preconditions. Every violation fails fast at construction time.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	p := c.Params
	if p.DiseasedAgingFactor < 0 {
		return fmt.Errorf("%w: diseased aging factor %f", ErrInvalidConfig, p.DiseasedAgingFactor)
	}
	if p.ChanceForDisease < 0 {
		return fmt.Errorf("%w: chance for disease %d", ErrInvalidConfig, p.ChanceForDisease)
	}
	if p.MaxLengthDisease < 1 {
		return fmt.Errorf("%w: max disease length %f", ErrInvalidConfig, p.MaxLengthDisease)
	}
	if p.MinYearsUntilReproduce > p.MaxYearsUntilReproduce {
		return fmt.Errorf("%w: reproduce interval [%d,%d]", ErrInvalidConfig,
			p.MinYearsUntilReproduce, p.MaxYearsUntilReproduce)
	}
	if p.MinStartStrength <= 0 || p.MinStartStrength > p.MaxStartStrength {
		return fmt.Errorf("%w: start strength [%d,%d]", ErrInvalidConfig,
			p.MinStartStrength, p.MaxStartStrength)
	}
	for i, t := range c.Tribes {
		if t.Group == GroupNone || t.Group > GroupBlue {
			return fmt.Errorf("%w: tribe %d group %d", ErrInvalidConfig, i, t.Group)
		}
		if t.Count < 0 || t.MinX > t.MaxX || t.MinY > t.MaxY {
			return fmt.Errorf("%w: tribe %d spawn area", ErrInvalidConfig, i)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file and merges it over the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["sea_level"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SeaLevel = parsed
		}
	}
	if v, ok := cfg["diseased_aging_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DiseasedAgingFactor = parsed
		}
	}
	if v, ok := cfg["chance_for_disease"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.ChanceForDisease = parsed
		}
	}
	if v, ok := cfg["max_length_disease"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 1 {
			c.Params.MaxLengthDisease = parsed
		}
	}
	if v, ok := cfg["min_years_until_reproduce"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MinYearsUntilReproduce = parsed
		}
	}
	if v, ok := cfg["max_years_until_reproduce"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxYearsUntilReproduce = parsed
		}
	}
	if c.Params.MaxYearsUntilReproduce < c.Params.MinYearsUntilReproduce {
		c.Params.MaxYearsUntilReproduce = c.Params.MinYearsUntilReproduce
	}
	if v, ok := cfg["min_start_strength"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MinStartStrength = parsed
		}
	}
	if v, ok := cfg["max_start_strength"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxStartStrength = parsed
		}
	}
	if c.Params.MaxStartStrength < c.Params.MinStartStrength {
		c.Params.MaxStartStrength = c.Params.MinStartStrength
	}
	return c
}
