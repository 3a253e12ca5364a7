// Package config loads and validates the YAML-backed process
// configuration for the packing core: cage geometry, feasibility
// tuning constants, and packer strategy selection.
package config
