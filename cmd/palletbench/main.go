// Command palletbench replays a synthetic stream of candidate items
// against the heuristic or MCTS packer and reports per-decision stats,
// the programmatic analogue of a conveyor-driven packing session.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/binstack/cellpack/config"
	"github.com/binstack/cellpack/export"
	"github.com/binstack/cellpack/internal/anchor"
	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/packer"
	"github.com/binstack/cellpack/internal/rng"
	"github.com/binstack/cellpack/internal/scoring"
)

const version = "1.0.0"

var (
	configPath = flag.String("config", "", "Path to YAML configuration file (optional; defaults are used if empty)")
	outputDir  = flag.String("output", ".", "Output directory for exported artifacts")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	items      = flag.Int("items", 20, "Number of synthetic candidate items to generate")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	verbose    = flag.Bool("verbose", false, "Enable verbose per-decision output")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		return fmt.Errorf("invalid format %q, must be one of: json, svg, all", *format)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		if *verbose {
			fmt.Printf("Loading configuration from %s\n", *configPath)
		}
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding seed from %d to %d\n", cfg.Seed, *seedFlag)
		}
		cfg.Seed = *seedFlag
	}

	if *verbose {
		fmt.Printf("Using seed: %d\n", cfg.Seed)
		fmt.Printf("Cage: %v weight_limit=%.1f\n", cfg.CageDimensions, cfg.CageWeightLimit)
		fmt.Printf("Strategy: %s  Algorithm: %s\n", cfg.Strategy, cfg.Algorithm)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cage := entity.NewCage("bench", entity.Dims{
		L: cfg.CageDimensions[0], W: cfg.CageDimensions[1], H: cfg.CageDimensions[2],
	}, cfg.CageWeightLimit)

	gen := anchor.Get(cfg.Strategy)
	if gen == nil {
		return fmt.Errorf("unknown anchor strategy %q", cfg.Strategy)
	}
	params := constraint.Params{
		StabilityFactor:   cfg.StabilityFactor,
		MergeMargin:       cfg.MergeMargin,
		SafetyMarginRatio: cfg.SafetyMarginRatio,
	}
	weights := scoring.Weights{WZ: cfg.WZScore}

	p, err := newPacker(cfg, gen, params, weights)
	if err != nil {
		return err
	}

	stream := syntheticStream(cfg, *items)

	start := time.Now()
	committed := 0
	for len(stream) > 0 {
		window := stream
		if len(window) > cfg.LookaheadDepth {
			window = window[:cfg.LookaheadDepth]
		}

		placement, err := p.Pack(cage, window)
		if err != nil {
			return fmt.Errorf("pack failed: %w", err)
		}
		if placement == nil {
			if *verbose {
				fmt.Printf("no feasible placement for window of %d item(s); dropping head\n", len(window))
			}
			stream = stream[1:]
			continue
		}

		stream = removeByID(stream, placement.Item.ID)
		committed++
		if *verbose {
			fmt.Printf("decision %d: item=%d position=(%.2f,%.2f,%.2f) rotation=%s\n",
				committed, placement.Item.ID, placement.Position.X, placement.Position.Y, placement.Position.Z, placement.Rotation)
		}
	}
	elapsed := time.Since(start)

	printStats(cage, committed, elapsed)

	baseName := fmt.Sprintf("palletbench_%d", cfg.Seed)
	if *format == "json" || *format == "all" {
		if err := exportJSON(cage, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(cage, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully packed %d/%d item(s) (seed=%d) in %v\n", committed, *items, cfg.Seed, elapsed)
	return nil
}

func newPacker(cfg config.Config, gen anchor.Generator, params constraint.Params, weights scoring.Weights) (packer.Packer, error) {
	switch cfg.Algorithm {
	case "heuristic":
		return packer.NewHeuristic(gen, params, weights), nil
	case "mcts":
		mctsCfg := packer.MCTSConfig{
			NumSimulations: cfg.NumSimulations,
			RolloutDepth:   cfg.RolloutDepth,
			UCTConst:       cfg.UCTConst,
			Workers:        cfg.Workers,
		}
		return packer.NewMCTS(gen, params, weights, mctsCfg, cfg.Seed), nil
	default:
		return nil, fmt.Errorf("unknown packing algorithm %q", cfg.Algorithm)
	}
}

// syntheticStream generates n candidate items with dimensions and
// weights drawn from an RNG derived from cfg.Seed, so a given seed
// always replays the same synthetic conveyor.
func syntheticStream(cfg config.Config, n int) []entity.Item {
	r := rng.Derive(cfg.Seed, "bench-items", nil)
	out := make([]entity.Item, 0, n)
	for i := 1; i <= n; i++ {
		dims := entity.Dims{
			L: 1 + r.Float64()*4,
			W: 1 + r.Float64()*4,
			H: 1 + r.Float64()*4,
		}
		weight := 1 + r.Float64()*10
		fragile := r.Float64() < 0.1
		rotations := allowedRotations(r, fragile)
		item, err := entity.NewItem(i, dims, weight, rotations, fragile, cfg.MeasurementError)
		if err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// allowedRotations returns every rotation type for a non-fragile item,
// or just the identity rotation for a fragile one (fragile items never
// tip onto an edge in this synthetic stream).
func allowedRotations(r *rand.Rand, fragile bool) []entity.Rotation {
	if fragile {
		return []entity.Rotation{entity.Rotation0}
	}
	return []entity.Rotation{
		entity.Rotation0, entity.Rotation1, entity.Rotation2,
		entity.Rotation3, entity.Rotation4, entity.Rotation5,
	}
}

func removeByID(items []entity.Item, id int) []entity.Item {
	out := make([]entity.Item, 0, len(items)-1)
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func printStats(cage *entity.Cage, committed int, elapsed time.Duration) {
	fmt.Println("\nPacking Statistics:")
	fmt.Printf("  Packed items: %d\n", committed)
	fmt.Printf("  Current weight: %.2f / %.2f\n", cage.CurrentWeight(), cage.WeightLimit)
	fmt.Printf("  Support surfaces: %d\n", len(cage.Surfaces()))
	fmt.Printf("  Elapsed: %v\n", elapsed)
}

func exportJSON(cage *entity.Cage, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := export.SaveJSONToFile(cage, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	return nil
}

func exportSVG(cage *entity.Cage, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("palletbench cage=%s", cage.ID)
	if err := export.SaveSVGToFile(cage, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	return nil
}
