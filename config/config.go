package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config specifies every tunable constant the packing core depends on.
// It supports YAML parsing and validates every field's documented
// range on load.
type Config struct {
	// Seed is the master seed all per-decision RNGs derive from. 0 is
	// a valid seed (it is not auto-generated, unlike the teacher's
	// time-based fallback): a seed of 0 reproduces the same sequence
	// every time, like any other seed.
	Seed uint64 `yaml:"seed" json:"seed"`

	// CageDimensions is [length, width, height] in cm.
	CageDimensions [3]float64 `yaml:"cageDimensions" json:"cageDimensions"`

	// CageWeightLimit is the maximum total weight (kg) a cage may hold.
	CageWeightLimit float64 `yaml:"cageWeightLimit" json:"cageWeightLimit"`

	// MeasurementError is ε (cm), added once to each base dimension.
	MeasurementError float64 `yaml:"measurementError" json:"measurementError"`

	// TempAreaCapacity bounds the conveyor lookahead window (items).
	TempAreaCapacity int `yaml:"tempAreaCapacity" json:"tempAreaCapacity"`

	// LookaheadDepth is how many of TempAreaCapacity's items a packer
	// considers per decision.
	LookaheadDepth int `yaml:"lookaheadDepth" json:"lookaheadDepth"`

	// StabilityFactor is the minimum supported-area fraction (0,1] the
	// Stackability predicate requires.
	StabilityFactor float64 `yaml:"stabilityFactor" json:"stabilityFactor"`

	// MergeMargin is the z-coplanarity tolerance the Stackability
	// predicate uses. The support-surface update the packers run after a
	// commit (surface.Update) does not read it; it applies its own 1e-6
	// default.
	MergeMargin float64 `yaml:"mergeMargin" json:"mergeMargin"`

	// WZScore is the height-term weight in the scoring function.
	WZScore float64 `yaml:"wzScore" json:"wzScore"`

	// SafetyMarginRatio narrows the cage footprint into the safety
	// rectangle the CenterOfGravity predicate checks against.
	SafetyMarginRatio float64 `yaml:"safetyMarginRatio" json:"safetyMarginRatio"`

	// Strategy selects the anchor.Generator: "cp" or "ems".
	Strategy string `yaml:"strategy" json:"strategy"`

	// Algorithm selects the packer.Packer: "heuristic" or "mcts".
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// NumSimulations, RolloutDepth, UCTConst and Workers tune the MCTS
	// packer; ignored when Algorithm is "heuristic".
	NumSimulations int     `yaml:"numSimulations" json:"numSimulations"`
	RolloutDepth   int     `yaml:"rolloutDepth" json:"rolloutDepth"`
	UCTConst       float64 `yaml:"uctConst" json:"uctConst"`
	Workers        int     `yaml:"workers" json:"workers"`
}

// DefaultConfig returns the documented defaults for every field.
func DefaultConfig() Config {
	return Config{
		Seed:              0,
		CageDimensions:    [3]float64{100, 100, 100},
		CageWeightLimit:   500,
		MeasurementError:  3.0,
		TempAreaCapacity:  3,
		LookaheadDepth:    3,
		StabilityFactor:   0.75,
		MergeMargin:       1e-6,
		WZScore:           1.0,
		SafetyMarginRatio: 0.8,
		Strategy:          "cp",
		Algorithm:         "heuristic",
		NumSimulations:    200,
		RolloutDepth:      8,
		UCTConst:          1.4,
		Workers:           1,
	}
}

// LoadConfig reads, parses and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates YAML configuration bytes,
// starting from DefaultConfig so an omitted field keeps its default
// rather than its Go zero value.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field against its documented range, returning
// an error describing the first failure found.
func (c *Config) Validate() error {
	for axis, v := range c.CageDimensions {
		if v <= 0 {
			return fmt.Errorf("cageDimensions[%d] must be positive, got %v", axis, v)
		}
	}
	if c.CageWeightLimit <= 0 {
		return fmt.Errorf("cageWeightLimit must be positive, got %v", c.CageWeightLimit)
	}
	if c.MeasurementError < 0 {
		return fmt.Errorf("measurementError must be non-negative, got %v", c.MeasurementError)
	}
	if c.TempAreaCapacity < 1 {
		return fmt.Errorf("tempAreaCapacity must be at least 1, got %d", c.TempAreaCapacity)
	}
	if c.LookaheadDepth < 1 || c.LookaheadDepth > c.TempAreaCapacity {
		return fmt.Errorf("lookaheadDepth must be in [1, tempAreaCapacity=%d], got %d", c.TempAreaCapacity, c.LookaheadDepth)
	}
	if c.StabilityFactor <= 0 || c.StabilityFactor > 1 {
		return fmt.Errorf("stabilityFactor must be in (0, 1], got %v", c.StabilityFactor)
	}
	if c.MergeMargin <= 0 {
		return fmt.Errorf("mergeMargin must be positive, got %v", c.MergeMargin)
	}
	if c.WZScore < 0 {
		return fmt.Errorf("wzScore must be non-negative, got %v", c.WZScore)
	}
	if c.SafetyMarginRatio <= 0 || c.SafetyMarginRatio > 1 {
		return fmt.Errorf("safetyMarginRatio must be in (0, 1], got %v", c.SafetyMarginRatio)
	}
	if c.Strategy != "cp" && c.Strategy != "ems" {
		return fmt.Errorf("strategy must be \"cp\" or \"ems\", got %q", c.Strategy)
	}
	if c.Algorithm != "heuristic" && c.Algorithm != "mcts" {
		return fmt.Errorf("algorithm must be \"heuristic\" or \"mcts\", got %q", c.Algorithm)
	}
	if c.Algorithm == "mcts" {
		if c.NumSimulations < 1 {
			return errors.New("numSimulations must be at least 1 when algorithm is \"mcts\"")
		}
		if c.RolloutDepth < 0 {
			return errors.New("rolloutDepth must be non-negative")
		}
		if c.UCTConst < 0 {
			return errors.New("uctConst must be non-negative")
		}
		if c.Workers < 1 {
			return errors.New("workers must be at least 1")
		}
	}
	return nil
}

// ToYAML serializes the config back to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic SHA-256 digest of the configuration's
// YAML encoding, so two configurations can be compared by digest. No
// RNG in this module derives its seed from it.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		sum := sha256.Sum256([]byte(fmt.Sprintf("config-hash-fallback-seed-%d", c.Seed)))
		return sum[:]
	}
	sum := sha256.Sum256(data)
	return sum[:]
}
