package layout

import "github.com/matzehuels/reflow/pkg/errors"

// measure computes the outer size of id in post-order. Children that are
// clean and already laid out contribute their cached size without being
// visited.
func (p *pass[ID, O, S]) measure(id ID) S {
	state := p.state(id)

	sizes := make([]S, len(state.children))
	for i, child := range state.children {
		if p.walk(child) {
			sizes[i] = p.measure(child)
		} else {
			sizes[i] = p.cachedSize(child)
		}
	}

	state.outerSize = p.policy.Measure(id, sizes)
	p.stats.Measured++
	return state.outerSize
}

func (p *pass[ID, O, S]) cachedSize(id ID) S {
	state, ok := p.engine.nodes[id]
	if !ok {
		violation(errors.ErrCodeInternal, "no cached size for laid out node %v", id)
	}
	return state.outerSize
}

func (p *pass[ID, O, S]) childSizes(children []ID) []S {
	sizes := make([]S, len(children))
	for i, child := range children {
		sizes[i] = p.cachedSize(child)
	}
	return sizes
}
