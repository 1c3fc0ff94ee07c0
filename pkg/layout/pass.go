package layout

import (
	"slices"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
)

// pass holds the borrowed providers and scratch state of one generation.
type pass[ID comparable, O geom.Offset[O], S geom.Size[S]] struct {
	engine *Engine[ID, O, S]
	topo   Topology[ID]
	policy Policy[ID, O, S]

	refreshed map[ID]struct{}
	affected  orderedSet[ID]
	changed   []Change[ID, O, S]
	stats     Stats
}

// refreshPending drains the pending set. Vanished identities are evicted;
// the others have their child lists reloaded and are returned in the order
// they were marked.
func (p *pass[ID, O, S]) refreshPending() []ID {
	pending := p.engine.pending.drain()
	p.stats.Pending = len(pending)

	survivors := pending[:0]
	for _, id := range pending {
		if !p.topo.Exists(id) {
			p.evict(id)
			continue
		}
		p.refresh(id)
		survivors = append(survivors, id)
	}
	return survivors
}

// refresh reloads the child lists of id and of every descendant not yet
// refreshed in this generation.
func (p *pass[ID, O, S]) refresh(id ID) {
	if _, done := p.refreshed[id]; done {
		return
	}
	state := p.load(id)
	for _, child := range state.children {
		p.refresh(child)
	}
}

// load copies id's children from the topology into its node state and
// evicts previously cached children that no longer exist.
func (p *pass[ID, O, S]) load(id ID) *nodeState[ID, S] {
	p.refreshed[id] = struct{}{}

	children := slices.Clone(p.topo.ChildrenOf(id))
	for _, child := range children {
		if !p.topo.Exists(child) {
			violation(errors.ErrCodeDanglingChild, "node %v lists child %v which does not exist", id, child)
		}
	}

	state, ok := p.engine.nodes[id]
	if !ok {
		state = &nodeState[ID, S]{}
		p.engine.nodes[id] = state
	}
	for _, old := range state.children {
		if !p.topo.Exists(old) {
			p.evict(old)
		}
	}
	state.children = children
	return state
}

// evict drops the cached state and rectangle of id and of every cached
// descendant that no longer exists. Descendants that still exist were moved
// elsewhere and keep their caches.
func (p *pass[ID, O, S]) evict(id ID) {
	state, hadState := p.engine.nodes[id]
	_, hadRect := p.engine.rects[id]
	if !hadState && !hadRect {
		return
	}
	delete(p.engine.nodes, id)
	delete(p.engine.rects, id)
	p.stats.Evicted++

	if hadState {
		for _, child := range state.children {
			if !p.topo.Exists(child) {
				p.evict(child)
			}
		}
	}
}

// state returns the node state of id, loading it from the topology when the
// node is reached for the first time.
func (p *pass[ID, O, S]) state(id ID) *nodeState[ID, S] {
	if state, ok := p.engine.nodes[id]; ok {
		return state
	}
	return p.load(id)
}

// walk reports whether child must be visited rather than reused from cache.
func (p *pass[ID, O, S]) walk(child ID) bool {
	if p.affected.has(child) {
		return true
	}
	_, cached := p.engine.rects[child]
	return !cached
}
