package render

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/io"
)

// DefaultScale is the number of pixels (or points) per layout unit.
const DefaultScale = 8.0

const margin = 4.0

var palette = []string{"#f4f1de", "#e0ecf4", "#e5f5e0", "#fde0dd", "#efedf5", "#fff7bc"}

const svgStyle = `
    .rect { stroke: #333; stroke-width: 1; }
    .rect.changed { stroke: #d62728; stroke-width: 2; }
    .label { font-family: monospace; font-size: 10px; fill: #333; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale     float64
	labels    bool
	highlight map[string]bool
}

func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithScale sets the pixels per layout unit. Non-positive values are ignored.
func WithScale(f float64) SVGOption {
	return func(r *svgRenderer) {
		if f > 0 {
			r.scale = f
		}
	}
}

// WithHighlight outlines the given identities, typically the rectangles
// changed by the last generation.
func WithHighlight(ids ...string) SVGOption {
	return func(r *svgRenderer) {
		for _, id := range ids {
			r.highlight[id] = true
		}
	}
}

// RenderSVG draws every rectangle of s as a box. Parents are drawn before
// their children so nested boxes stay visible.
func RenderSVG(s *io.Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale, highlight: make(map[string]bool)}
	for _, opt := range opts {
		opt(&r)
	}

	bounds := s.Bounds()
	width := float64(bounds.Size[0])*r.scale + 2*margin
	height := float64(bounds.Size[1])*r.scale + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)

	for _, d := range depthOrder(s) {
		x, y := r.project(d.rect.Offset, bounds.Offset)
		class := "rect"
		if r.highlight[d.rect.ID] {
			class += " changed"
		}
		fmt.Fprintf(&buf, `  <rect id="rect-%s" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			html.EscapeString(d.rect.ID), class, x, y,
			float64(d.rect.Size[0])*r.scale, float64(d.rect.Size[1])*r.scale,
			palette[d.depth%len(palette)])
		if r.labels {
			fmt.Fprintf(&buf, `  <text class="label" x="%.1f" y="%.1f">%s</text>`+"\n",
				x+2, y+10, html.EscapeString(d.rect.ID))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) project(o, origin geom.Offset2) (float64, float64) {
	d := o.Sub(origin)
	return float64(d[0])*r.scale + margin, float64(d[1])*r.scale + margin
}

type depthRect struct {
	rect  io.Rect
	depth int
}

// depthOrder sorts rects by depth, then by id.
func depthOrder(s *io.Snapshot) []depthRect {
	depths := s.Depths()
	out := make([]depthRect, len(s.Rects))
	for i, r := range s.Rects {
		out[i] = depthRect{rect: r, depth: depths[r.ID]}
	}
	slices.SortFunc(out, func(a, b depthRect) int {
		if c := cmp.Compare(a.depth, b.depth); c != 0 {
			return c
		}
		return cmp.Compare(a.rect.ID, b.rect.ID)
	})
	return out
}
