package layout_test

import (
	"slices"
	"testing"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/layout"
	"github.com/matzehuels/reflow/pkg/stack"
	"github.com/matzehuels/reflow/pkg/tree"
)

type (
	engine2 = layout.Engine[string, geom.Offset2, geom.Size2]
	policy2 = stack.Policy[string, geom.Offset2, geom.Size2]
	change2 = layout.Change[string, geom.Offset2, geom.Size2]
	rect2   = geom.Rect[geom.Offset2, geom.Size2]
)

// fixture couples a tree, a stacking policy and an engine rooted at "0".
// Every helper marks exactly the nodes a real caller would mark.
type fixture struct {
	t      *testing.T
	tree   *tree.Tree[string]
	policy *policy2
	engine *engine2
	origin geom.Offset2
}

func newFixture(t *testing.T, rootAxis geom.Axis, opts ...layout.Option) *fixture {
	t.Helper()
	f := &fixture{
		t:      t,
		tree:   tree.New("0"),
		policy: stack.New[string, geom.Offset2, geom.Size2](),
		engine: layout.New[string, geom.Offset2, geom.Size2]("0", opts...),
	}
	f.policy.SetAxis("0", rootAxis)
	return f
}

func (f *fixture) leaf(parent, id string, w, h uint32) {
	f.t.Helper()
	f.append(parent, id)
	f.policy.SetLeaf(id, geom.Size2{w, h})
}

func (f *fixture) container(parent, id string, axis geom.Axis) {
	f.t.Helper()
	f.append(parent, id)
	f.policy.SetAxis(id, axis)
}

func (f *fixture) append(parent, id string) {
	f.t.Helper()
	touched, err := f.tree.Append(parent, id)
	if err != nil {
		f.t.Fatalf("Append(%s, %s): %v", parent, id, err)
	}
	f.mark(touched...)
}

func (f *fixture) resize(id string, w, h uint32) {
	if f.policy.SetLeaf(id, geom.Size2{w, h}) {
		f.mark(id)
	}
}

func (f *fixture) mark(ids ...string) {
	for _, id := range ids {
		f.engine.MarkPending(id)
	}
}

func (f *fixture) recompute() []change2 {
	return f.engine.Recompute(f.tree, f.policy, f.origin).Changed
}

func (f *fixture) rect(id string) rect2 {
	f.t.Helper()
	r, ok := f.engine.Rect(id)
	if !ok {
		f.t.Fatalf("Rect(%s) missing", id)
	}
	return r
}

func changedIDs(changes []change2) []string {
	ids := make([]string, len(changes))
	for i, c := range changes {
		ids[i] = c.ID
	}
	slices.Sort(ids)
	return ids
}

// mustPanicWith runs fn and fails unless it panics with an error carrying
// code.
func mustPanicWith(t *testing.T, code errors.Code, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, code) {
			t.Fatalf("panic = %v, want code %s", r, code)
		}
	}()
	fn()
}

// fakeTopology is a map-backed topology that refuses parent lookups for
// nodes that do not exist.
type fakeTopology struct {
	children map[string][]string
	parents  map[string]string
}

func (f *fakeTopology) Exists(id string) bool {
	_, ok := f.children[id]
	return ok
}

func (f *fakeTopology) ChildrenOf(id string) []string { return f.children[id] }

func (f *fakeTopology) ParentOf(id string) (string, bool) {
	if !f.Exists(id) {
		panic("ParentOf called for vanished node " + id)
	}
	p, ok := f.parents[id]
	return p, ok
}

// countingPolicy records every Measure call.
type countingPolicy struct {
	layout.Policy[string, geom.Offset2, geom.Size2]
	measured []string
}

func (c *countingPolicy) Measure(id string, sizes []geom.Size2) geom.Size2 {
	c.measured = append(c.measured, id)
	return c.Policy.Measure(id, sizes)
}

// shortPolicy returns one offset too few.
type shortPolicy struct{ inner *policy2 }

func (s shortPolicy) Measure(id string, sizes []geom.Size2) geom.Size2 {
	return s.inner.Measure(id, sizes)
}

func (s shortPolicy) PlaceChildren(id string, origin geom.Offset2, sizes []geom.Size2) []geom.Offset2 {
	return s.inner.PlaceChildren(id, origin, sizes)[1:]
}
