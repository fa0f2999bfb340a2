package pixelciv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestValidateRejectsBadBounds(t *testing.T) {
	mutations := map[string]func(*Config){
		"zero width":            func(c *Config) { c.Width = 0 },
		"negative height":       func(c *Config) { c.Height = -1 },
		"zero workers":          func(c *Config) { c.Workers = 0 },
		"strength inverted":     func(c *Config) { c.Params.MinStartStrength = 90; c.Params.MaxStartStrength = 40 },
		"strength not positive": func(c *Config) { c.Params.MinStartStrength = 0 },
		"reproduce inverted":    func(c *Config) { c.Params.MinYearsUntilReproduce = 12; c.Params.MaxYearsUntilReproduce = 3 },
		"short disease":         func(c *Config) { c.Params.MaxLengthDisease = 0.5 },
		"negative factor":       func(c *Config) { c.Params.DiseasedAgingFactor = -1 },
		"tribe without group":   func(c *Config) { c.Tribes = []TribeSpawn{{Count: 5}} },
		"tribe area inverted":   func(c *Config) { c.Tribes = []TribeSpawn{{Group: GroupRed, MinX: 10, MaxX: 5, Count: 1}} },
	}
	for name, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestNewFailsFastOnInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.MinStartStrength = 100
	cfg.Params.MaxStartStrength = 50
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected construction to fail fast, got %v", err)
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                  "32",
		"h":                  "16",
		"seed":               "7",
		"workers":            "2",
		"chance_for_disease": "500",
		"min_start_strength": "60",
		"max_start_strength": "20",
	})
	if cfg.Width != 32 || cfg.Height != 16 || cfg.Seed != 7 || cfg.Workers != 2 {
		t.Fatalf("dimension overrides not applied: %+v", cfg)
	}
	if cfg.Params.ChanceForDisease != 500 {
		t.Fatalf("disease chance override not applied: %d", cfg.Params.ChanceForDisease)
	}
	// An inverted strength range is corrected, never emitted.
	if cfg.Params.MaxStartStrength < cfg.Params.MinStartStrength {
		t.Fatalf("FromMap emitted inverted strength range [%d,%d]",
			cfg.Params.MinStartStrength, cfg.Params.MaxStartStrength)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("FromMap output must validate, got %v", err)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	raw := `
width: 48
height: 24
seed: 99
workers: 3
params:
  chance_for_disease: 1000
  max_length_disease: 3
tribes:
  - group: 1
    min_x: 0
    min_y: 0
    max_x: 20
    max_y: 20
    count: 10
`
	path := filepath.Join(t.TempDir(), "civ.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 48 || cfg.Height != 24 || cfg.Workers != 3 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Params.ChanceForDisease != 1000 || cfg.Params.MaxLengthDisease != 3 {
		t.Fatalf("yaml params not applied: %+v", cfg.Params)
	}
	// Untouched keys keep their defaults.
	if cfg.Params.MinStartStrength != DefaultConfig().Params.MinStartStrength {
		t.Fatalf("defaults lost on partial yaml: %+v", cfg.Params)
	}
	if len(cfg.Tribes) != 1 || cfg.Tribes[0].Group != GroupRed || cfg.Tribes[0].Count != 10 {
		t.Fatalf("tribes not applied: %+v", cfg.Tribes)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
