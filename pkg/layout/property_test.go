package layout_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/layout"
	"github.com/matzehuels/reflow/pkg/tree"
)

// TestMatchesFullRecompute applies random edit sequences and checks after
// every generation that the incremental result equals a from-scratch layout.
func TestMatchesFullRecompute(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 0x5eed))
			f := newFixture(t, geom.Vertical)
			mirror := map[string]rect2{}
			next := 0

			for step := range 60 {
				for range 1 + rng.IntN(3) {
					randomEdit(t, f, rng, &next)
				}
				if rng.IntN(10) == 0 {
					f.origin = geom.Offset2{rng.Int32N(50) - 25, rng.Int32N(50) - 25}
				}

				for _, c := range f.recompute() {
					mirror[c.ID] = c.Rect
				}
				assertMatchesFull(t, f, mirror, step)
			}
		})
	}
}

func randomEdit(t *testing.T, f *fixture, rng *rand.Rand, next *int) {
	t.Helper()
	nodes := attached(f.tree)
	pick := func() string { return nodes[rng.IntN(len(nodes))] }

	switch op := rng.IntN(7); {
	case op <= 1 || len(nodes) < 3:
		parent := pick()
		id := fmt.Sprintf("n%d", *next)
		*next++
		if rng.IntN(2) == 0 {
			f.leaf(parent, id, uint32(1+rng.IntN(20)), uint32(1+rng.IntN(20)))
		} else {
			f.container(parent, id, geom.Axis(rng.IntN(2)))
		}
	case op == 2:
		id := pick()
		if id == "0" {
			return
		}
		touched, err := f.tree.Remove(id)
		if err != nil {
			t.Fatalf("Remove(%s): %v", id, err)
		}
		f.mark(touched...)
	case op == 3:
		id, parent := pick(), pick()
		index := rng.IntN(len(f.tree.ChildrenOf(parent)) + 1)
		touched, err := f.tree.Move(id, parent, index)
		switch {
		case errors.Is(err, tree.ErrCycle), errors.Is(err, tree.ErrRootImmutable), errors.Is(err, tree.ErrIndexOutOfRange):
			return
		case err != nil:
			t.Fatalf("Move(%s, %s): %v", id, parent, err)
		}
		f.mark(touched...)
	case op == 4:
		id := pick()
		if f.policy.SetSpacing(id, uint32(rng.IntN(5))) {
			f.mark(id)
		}
	case op == 5:
		id := pick()
		pad := geom.Thickness[geom.Size2]{
			Leading:  geom.Size2{uint32(rng.IntN(4)), uint32(rng.IntN(4))},
			Trailing: geom.Size2{uint32(rng.IntN(4)), uint32(rng.IntN(4))},
		}
		if f.policy.SetPadding(id, pad) {
			f.mark(id)
		}
	default:
		f.resize(pick(), uint32(1+rng.IntN(20)), uint32(1+rng.IntN(20)))
	}
}

func attached(tr *tree.Tree[string]) []string {
	var ids []string
	tr.Walk(func(id string, _ int) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

func assertMatchesFull(t *testing.T, f *fixture, mirror map[string]rect2, step int) {
	t.Helper()
	full := layout.New[string, geom.Offset2, geom.Size2]("0")
	full.Recompute(f.tree, f.policy, f.origin)

	if full.Len() != f.engine.Len() {
		t.Fatalf("step %d: incremental caches %d rects, full layout has %d", step, f.engine.Len(), full.Len())
	}
	for id, want := range full.Rects() {
		got, ok := f.engine.Rect(id)
		if !ok || got != want {
			t.Fatalf("step %d: Rect(%s) = %v (%v), want %v", step, id, got, ok, want)
		}
		if mirror[id] != want {
			t.Fatalf("step %d: emitted changes for %s end at %v, want %v", step, id, mirror[id], want)
		}
	}
}
