package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/reflow/pkg/io"
)

// Options configures DOT output.
type Options struct {
	// Scale is the number of points per layout unit. Zero means DefaultScale.
	Scale float64
	// Edges draws an arrow from every parent to each of its children.
	Edges bool
	// Highlight lists identities drawn with a red outline.
	Highlight []string
}

const pointsPerInch = 72.0

// ToDOT converts a snapshot to Graphviz DOT with every node pinned at the
// centre of its rectangle. Render the result with [RenderDOT]; other engines
// than neato ignore the pinned positions.
func ToDOT(s *io.Snapshot, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontsize=10, fontname=monospace];\n")
	buf.WriteString("\n")

	for _, d := range depthOrder(s) {
		fmt.Fprintf(&buf, "  %q [%s];\n", d.rect.ID, strings.Join(fmtAttrs(d, scale, highlight[d.rect.ID]), ", "))
	}

	if opts.Edges {
		buf.WriteString("\n")
		for _, r := range s.Rects {
			if r.Parent != "" {
				fmt.Fprintf(&buf, "  %q -> %q;\n", r.Parent, r.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(d depthRect, scale float64, highlighted bool) []string {
	r := d.rect
	w := float64(r.Size[0]) * scale
	h := float64(r.Size[1]) * scale
	// Graphviz's y axis points up.
	cx := float64(r.Offset[0])*scale + w/2
	cy := -(float64(r.Offset[1])*scale + h/2)

	attrs := []string{
		fmt.Sprintf("label=%q", r.ID+"\n"+r.Size.String()),
		fmt.Sprintf("pos=\"%s,%s!\"", inches(cx), inches(cy)),
		fmt.Sprintf("width=%s", inches(w)),
		fmt.Sprintf("height=%s", inches(h)),
		fmt.Sprintf("fillcolor=%q", palette[d.depth%len(palette)]),
	}
	if highlighted {
		attrs = append(attrs, "color=\"#d62728\"", "penwidth=2")
	}
	return attrs
}

func inches(points float64) string {
	return strconv.FormatFloat(points/pointsPerInch, 'f', 4, 64)
}

// RenderDOT renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
