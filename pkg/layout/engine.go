package layout

import (
	"iter"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/observability"
)

// Topology answers structural questions about the tree being laid out. It
// must present a consistent snapshot for the duration of one Recompute.
type Topology[ID comparable] interface {
	// Exists reports whether id is currently part of the tree.
	Exists(id ID) bool
	// ChildrenOf returns the ordered children of id. The engine copies the
	// slice and never retains it.
	ChildrenOf(id ID) []ID
	// ParentOf returns the parent of id, or false for the root. The engine
	// only asks about identities that exist.
	ParentOf(id ID) (ID, bool)
}

// Policy computes sizes and child positions.
type Policy[ID comparable, O geom.Offset[O], S geom.Size[S]] interface {
	// Measure returns the outer size of id given the outer sizes of its
	// children in order. childSizes is empty for childless nodes.
	Measure(id ID, childSizes []S) S
	// PlaceChildren returns one absolute offset per child, in the same
	// order as childSizes.
	PlaceChildren(id ID, parentOffset O, childSizes []S) []O
}

// Change is one rectangle that differs from the value cached before the
// generation that produced it.
type Change[ID comparable, O geom.Offset[O], S geom.Size[S]] struct {
	ID   ID
	Rect geom.Rect[O, S]
}

// Stats summarizes the work done by one generation.
type Stats = observability.GenerationStats

// Result is the outcome of one Recompute.
type Result[ID comparable, O geom.Offset[O], S geom.Size[S]] struct {
	// Changed lists every rectangle written this generation, in production
	// order. A node appears at most once unless a policy places it twice.
	Changed []Change[ID, O, S]
	Stats   Stats
}

// nodeState is the per-node cache kept between generations.
type nodeState[ID comparable, S any] struct {
	outerSize S
	children  []ID
}

// Engine incrementally recomputes rectangles for a tree rooted at a fixed
// identity. The zero value is not usable; create engines with [New].
type Engine[ID comparable, O geom.Offset[O], S geom.Size[S]] struct {
	root       ID
	nodes      map[ID]*nodeState[ID, S]
	rects      map[ID]geom.Rect[O, S]
	pending    orderedSet[ID]
	generation uint64

	logger *log.Logger
	hooks  observability.LayoutHooks
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger *log.Logger
	hooks  observability.LayoutHooks
}

// WithLogger enables debug logging of every generation.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHooks overrides the hooks registered with observability.SetLayoutHooks
// for this engine only.
func WithHooks(h observability.LayoutHooks) Option {
	return func(o *options) { o.hooks = h }
}

// New creates an engine for the tree rooted at root. The root identity is
// fixed for the engine's lifetime.
func New[ID comparable, O geom.Offset[O], S geom.Size[S]](root ID, opts ...Option) *Engine[ID, O, S] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[ID, O, S]{
		root:    root,
		nodes:   make(map[ID]*nodeState[ID, S]),
		rects:   make(map[ID]geom.Rect[O, S]),
		pending: newOrderedSet[ID](),
		logger:  o.logger,
		hooks:   o.hooks,
	}
}

// MarkPending records that id's own layout inputs or its child list changed.
// Marking the same id twice before a Recompute has no additional effect. The
// id may be removed from the topology before the next Recompute.
func (e *Engine[ID, O, S]) MarkPending(id ID) {
	e.pending.add(id)
}

// Rect returns the last rectangle computed for id. It reports false if id was
// never laid out or has been evicted.
func (e *Engine[ID, O, S]) Rect(id ID) (geom.Rect[O, S], bool) {
	r, ok := e.rects[id]
	return r, ok
}

// Root returns the root identity the engine was created with.
func (e *Engine[ID, O, S]) Root() ID { return e.root }

// Generation returns the number of completed Recompute calls.
func (e *Engine[ID, O, S]) Generation() uint64 { return e.generation }

// PendingCount returns the number of identities waiting for the next
// Recompute.
func (e *Engine[ID, O, S]) PendingCount() int { return e.pending.len() }

// Len returns the number of cached rectangles.
func (e *Engine[ID, O, S]) Len() int { return len(e.rects) }

// Rects iterates over every cached rectangle in unspecified order.
func (e *Engine[ID, O, S]) Rects() iter.Seq2[ID, geom.Rect[O, S]] {
	return maps.All(e.rects)
}

// Recompute runs one generation and returns the rectangles that changed.
//
// The root is laid out at rootOffset. Nested affected roots, which only
// occur when the topology is a forest under the root, keep their previous
// offset.
//
// Recompute panics with an *errors.Error when topo or policy violate their
// contracts; see [Recover].
func (e *Engine[ID, O, S]) Recompute(topo Topology[ID], policy Policy[ID, O, S], rootOffset O) Result[ID, O, S] {
	start := time.Now()
	e.generation++

	if !topo.Exists(e.root) {
		violation(errors.ErrCodeRootMissing, "root %v is not present in the topology", e.root)
	}
	if r, ok := e.rects[e.root]; !ok || r.Offset != rootOffset {
		e.pending.add(e.root)
	}

	p := &pass[ID, O, S]{
		engine:    e,
		topo:      topo,
		policy:    policy,
		refreshed: make(map[ID]struct{}),
		affected:  newOrderedSet[ID](),
	}
	p.stats.Generation = e.generation

	survivors := p.refreshPending()
	p.collectAffected(survivors)
	roots := p.affectedRoots()
	p.stats.Affected = p.affected.len()
	p.stats.Roots = len(roots)

	for _, id := range roots {
		offset := rootOffset
		if id != e.root {
			if r, ok := e.rects[id]; ok {
				offset = r.Offset
			}
		}
		p.measure(id)
		p.place(id, offset)
	}

	p.stats.Changed = len(p.changed)
	p.stats.Duration = time.Since(start)
	e.report(p.stats)

	return Result[ID, O, S]{Changed: p.changed, Stats: p.stats}
}

func (e *Engine[ID, O, S]) report(s Stats) {
	if e.logger != nil {
		e.logger.Debug("recompute",
			"generation", s.Generation,
			"pending", s.Pending,
			"evicted", s.Evicted,
			"affected", s.Affected,
			"measured", s.Measured,
			"shifted", s.Shifted,
			"changed", s.Changed,
			"duration", s.Duration)
	}
	hooks := e.hooks
	if hooks == nil {
		hooks = observability.Layout()
	}
	hooks.OnRecompute(s)
}
