package layout

import (
	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
)

// place writes the rectangle of id at offset and positions its children in
// pre-order. Clean children are shifted instead of re-placed.
func (p *pass[ID, O, S]) place(id ID, offset O) {
	state := p.state(id)
	p.stats.Placed++
	p.write(id, geom.NewRect(offset, state.outerSize))

	if len(state.children) == 0 {
		return
	}

	offsets := p.policy.PlaceChildren(id, offset, p.childSizes(state.children))
	if len(offsets) != len(state.children) {
		violation(errors.ErrCodePlacementMismatch,
			"policy returned %d offsets for the %d children of %v", len(offsets), len(state.children), id)
	}

	for i, child := range state.children {
		if p.walk(child) {
			p.place(child, offsets[i])
			continue
		}
		prev := p.engine.rects[child]
		p.shift(child, offsets[i].Sub(prev.Offset))
	}
}

// shift translates a clean subtree by delta.
func (p *pass[ID, O, S]) shift(id ID, delta O) {
	var zero O
	if delta == zero {
		return
	}

	rect, ok := p.engine.rects[id]
	if !ok {
		violation(errors.ErrCodeInternal, "clean node %v has no cached rectangle", id)
	}
	p.stats.Shifted++
	p.write(id, rect.Translate(delta))

	if state, ok := p.engine.nodes[id]; ok {
		for _, child := range state.children {
			p.shift(child, delta)
		}
	}
}

// write stores rect for id and records a change unless it equals the cached
// value.
func (p *pass[ID, O, S]) write(id ID, rect geom.Rect[O, S]) {
	if prev, ok := p.engine.rects[id]; ok && prev == rect {
		return
	}
	p.engine.rects[id] = rect
	p.changed = append(p.changed, Change[ID, O, S]{ID: id, Rect: rect})
}
