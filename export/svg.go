package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/binstack/cellpack/internal/entity"
)

// SVGOptions configures the top-down footprint visualization. This is a
// debug aid for a single (X, Y) snapshot, not the excluded 3D conveyor
// rendering.
type SVGOptions struct {
	Width        int    // Canvas width in pixels
	Height       int    // Canvas height in pixels
	Margin       int    // Canvas margin in pixels (default: 40)
	ShowSurfaces bool   // Outline current support surfaces
	ShowLabels   bool   // Label each item with its id
	Title        string // Optional title drawn above the footprint
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:        900,
		Height:       900,
		Margin:       40,
		ShowSurfaces: true,
		ShowLabels:   true,
		Title:        "",
	}
}

// itemPalette cycles colors by insertion order, so a viewer can trace the
// packing sequence at a glance.
var itemPalette = []string{
	"#4299e1", "#48bb78", "#ed8936", "#9f7aea",
	"#f56565", "#38b2ac", "#ecc94b", "#ed64a6",
}

// SnapshotSVG writes a top-down (X, Y) footprint of the cage to w: the
// cage outline, each packed item's rectangle colored by insertion order,
// and (when enabled) the current support-surface outlines.
func SnapshotSVG(cage *entity.Cage, w io.Writer, opts SVGOptions) error {
	if cage == nil {
		return fmt.Errorf("export: cannot render a nil cage")
	}
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	headerHeight := 0
	if opts.Title != "" {
		headerHeight = 30
	}

	drawWidth := float64(opts.Width - 2*opts.Margin)
	drawHeight := float64(opts.Height - 2*opts.Margin - headerHeight)
	scaleX := drawWidth / cage.Dims.L
	scaleY := drawHeight / cage.Dims.W
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	// project maps a cage-space (x, y) point to canvas pixels. Y is
	// flipped: cage Y grows "north", SVG Y grows downward.
	project := func(x, y float64) (int, int) {
		px := opts.Margin + int(x*scale)
		py := opts.Margin + headerHeight + int((cage.Dims.W-y)*scale)
		return px, py
	}

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(opts.Width/2, 20, opts.Title,
			"text-anchor:middle;font-size:16px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	// Cage outline.
	ox, oy := project(0, cage.Dims.W)
	cx, cy := project(cage.Dims.L, 0)
	canvas.Rect(ox, oy, cx-ox, cy-oy, "fill:none;stroke:#e2e8f0;stroke-width:2")

	if opts.ShowSurfaces {
		for _, s := range cage.Surfaces() {
			sx, sy := project(s.Rect.XMin, s.Rect.YMax)
			sw := int((s.Rect.XMax - s.Rect.XMin) * scale)
			sh := int((s.Rect.YMax - s.Rect.YMin) * scale)
			canvas.Rect(sx, sy, sw, sh, "fill:none;stroke:#718096;stroke-width:1;stroke-dasharray:4,4")
		}
	}

	for i, p := range cage.PackedItems() {
		foot := p.Footprint()
		ix, iy := project(foot.XMin, foot.YMax)
		iw := int((foot.XMax - foot.XMin) * scale)
		ih := int((foot.YMax - foot.YMin) * scale)
		color := itemPalette[i%len(itemPalette)]

		canvas.Rect(ix, iy, iw, ih, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1;opacity:0.85", color))

		if opts.ShowLabels {
			canvas.Text(ix+iw/2, iy+ih/2+4, fmt.Sprintf("%d", p.Item.ID),
				"text-anchor:middle;font-size:11px;font-family:monospace;fill:#1a1a2e;font-weight:bold")
		}
	}

	canvas.End()
	return nil
}

// SnapshotSVGBytes renders SnapshotSVG to an in-memory byte slice.
func SnapshotSVGBytes(cage *entity.Cage, opts SVGOptions) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := SnapshotSVG(cage, buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveSVGToFile renders SnapshotSVG and writes it to path with 0644
// permissions.
func SaveSVGToFile(cage *entity.Cage, path string, opts SVGOptions) error {
	data, err := SnapshotSVGBytes(cage, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
