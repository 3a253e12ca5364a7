package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() is invalid: %v", err)
	}
}

func TestLoadConfigFromBytes_ValidConfig(t *testing.T) {
	yamlText := `
seed: 12345
cageDimensions: [120, 100, 150]
cageWeightLimit: 800
strategy: ems
algorithm: mcts
numSimulations: 500
rolloutDepth: 10
uctConst: 1.2
workers: 2
`
	cfg, err := LoadConfigFromBytes([]byte(yamlText))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", cfg.Seed)
	}
	if cfg.CageDimensions != [3]float64{120, 100, 150} {
		t.Errorf("CageDimensions = %v, want [120 100 150]", cfg.CageDimensions)
	}
	if cfg.Strategy != "ems" {
		t.Errorf("Strategy = %q, want \"ems\"", cfg.Strategy)
	}
	// Fields absent from the YAML keep their DefaultConfig value.
	if cfg.MeasurementError != 3.0 {
		t.Errorf("MeasurementError = %v, want default 3.0", cfg.MeasurementError)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("strategy: cp\nalgorithm: heuristic\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Algorithm != "heuristic" {
		t.Errorf("Algorithm = %q, want \"heuristic\"", cfg.Algorithm)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
	}{
		{"non-positive cage dimension", func(c *Config) { c.CageDimensions[0] = 0 }},
		{"non-positive weight limit", func(c *Config) { c.CageWeightLimit = 0 }},
		{"lookahead exceeds capacity", func(c *Config) { c.LookaheadDepth = c.TempAreaCapacity + 1 }},
		{"stability factor out of range", func(c *Config) { c.StabilityFactor = 1.5 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "bogus" }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "bogus" }},
		{"mcts with zero simulations", func(c *Config) { c.Algorithm = "mcts"; c.NumSimulations = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestHash_SensitiveToChanges(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	b.Seed = a.Seed + 1

	if string(a.Hash()) == string(b.Hash()) {
		t.Error("expected different configs to hash differently")
	}

	c := DefaultConfig()
	if string(a.Hash()) != string(c.Hash()) {
		t.Error("expected identical configs to hash identically")
	}
}
