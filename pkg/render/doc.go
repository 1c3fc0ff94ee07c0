// Package render draws layout snapshots.
//
// # Overview
//
// Rendering works on an [io.Snapshot], so it can draw a live session as well
// as a snapshot read back from disk. Two renderers are provided:
//
//   - [RenderSVG] draws every rectangle directly as nested SVG boxes
//   - [ToDOT] emits Graphviz DOT with pinned node positions, which
//     [RenderDOT] turns into SVG using the neato engine
//
// The native SVG renderer needs nothing outside this module. The DOT path is
// useful when the layout should be post-processed with Graphviz tooling, or
// when containment edges between parents and children should be drawn.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Without it they fail with
// UNSUPPORTED; [CanConvert] checks ahead of time.
//
//	svg := render.RenderSVG(snap, render.WithLabels())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Coordinates
//
// Layout units are multiplied by the scale (8 pixels per unit unless set
// otherwise). The drawing is translated so the snapshot's bounding box
// starts at the top-left corner of the canvas.
//
// [io.Snapshot]: github.com/matzehuels/reflow/pkg/io.Snapshot
package render
