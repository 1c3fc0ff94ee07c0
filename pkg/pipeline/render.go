package pipeline

import (
	"bytes"
	"context"
	"fmt"

	pkgio "github.com/matzehuels/reflow/pkg/io"
	"github.com/matzehuels/reflow/pkg/render"
)

// RenderFromSnapshot produces every format in opts.Formats. The rectangles
// changed by the last generation are highlighted in SVG and DOT output.
func RenderFromSnapshot(ctx context.Context, snap *pkgio.Snapshot, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	opts.SetRenderDefaults()

	highlight := lastChanged(snap)
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	if opts.Wants(FormatSVG) || opts.Wants(FormatPNG) || opts.Wants(FormatPDF) {
		svgOpts := []render.SVGOption{render.WithScale(opts.Scale), render.WithHighlight(highlight...)}
		if opts.Labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		svg = render.RenderSVG(snap, svgOpts...)
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = pkgio.WriteJSON(snap, &buf)
			data = buf.Bytes()
		case FormatSVG:
			data = svg
		case FormatDOT:
			data = []byte(render.ToDOT(snap, render.Options{Scale: opts.Scale, Edges: opts.Edges, Highlight: highlight}))
		case FormatPNG:
			data, err = render.ToPNG(ctx, svg, 1)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func lastChanged(snap *pkgio.Snapshot) []string {
	if len(snap.Changed) == 0 {
		return nil
	}
	last := snap.Changed[len(snap.Changed)-1]
	ids := make([]string, len(last.Rects))
	for i, r := range last.Rects {
		ids[i] = r.ID
	}
	return ids
}
