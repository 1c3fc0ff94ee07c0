package io

import (
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/session"
)

// Snapshot is the exported state of a layout session.
type Snapshot struct {
	Root       string       `json:"root"`
	Generation uint64       `json:"generation"`
	Origin     geom.Offset2 `json:"origin"`
	Rects      []Rect       `json:"rects"`
	Changed    []Generation `json:"changed,omitempty"`
}

// Rect is one identified rectangle. Parent is empty for the root and for
// rects listed under Changed.
type Rect struct {
	ID     string       `json:"id"`
	Parent string       `json:"parent,omitempty"`
	Offset geom.Offset2 `json:"offset"`
	Size   geom.Size2   `json:"size"`
}

// Generation lists the rectangles one generation reported as changed.
type Generation struct {
	Generation uint64 `json:"generation"`
	Rects      []Rect `json:"rects"`
}

// NewSnapshot captures sess and the results of the generations it ran.
func NewSnapshot(sess *session.Session, results []session.Result) *Snapshot {
	entries := sess.Snapshot()
	s := &Snapshot{
		Root:       sess.Root(),
		Generation: sess.Engine().Generation(),
		Origin:     sess.Origin(),
		Rects:      make([]Rect, len(entries)),
	}
	for i, e := range entries {
		s.Rects[i] = fromRect(e.ID, e.Rect)
		if parent, ok := sess.Tree().ParentOf(e.ID); ok {
			s.Rects[i].Parent = parent
		}
	}
	for _, res := range results {
		g := Generation{Generation: res.Stats.Generation, Rects: make([]Rect, len(res.Changed))}
		for i, c := range res.Changed {
			g.Rects[i] = fromRect(c.ID, c.Rect)
		}
		s.Changed = append(s.Changed, g)
	}
	return s
}

func fromRect(id string, r session.Rect) Rect {
	return Rect{ID: id, Offset: r.Offset, Size: r.Size}
}

// Rect returns the rectangle of id.
func (s *Snapshot) Rect(id string) (Rect, bool) {
	for _, r := range s.Rects {
		if r.ID == id {
			return r, true
		}
	}
	return Rect{}, false
}

// Depth returns the number of ancestors of id recorded in the snapshot.
func (s *Snapshot) Depth(id string) int {
	return newDepthIndex(s).depth(id)
}

// Depths returns the depth of every rect, walking each parent chain once.
func (s *Snapshot) Depths() map[string]int {
	idx := newDepthIndex(s)
	for _, r := range s.Rects {
		idx.depth(r.ID)
	}
	return idx.memo
}

type depthIndex struct {
	parents map[string]string
	memo    map[string]int
}

func newDepthIndex(s *Snapshot) *depthIndex {
	idx := &depthIndex{
		parents: make(map[string]string, len(s.Rects)),
		memo:    make(map[string]int, len(s.Rects)),
	}
	for _, r := range s.Rects {
		idx.parents[r.ID] = r.Parent
	}
	return idx
}

// depth walks up from id until it reaches a known depth or the top of the
// chain, then fills in every node it passed. A malformed parent cycle is
// cut after len(parents) steps.
func (idx *depthIndex) depth(id string) int {
	var chain []string
	base := -1
	for cur := id; cur != "" && len(chain) <= len(idx.parents); cur = idx.parents[cur] {
		if d, ok := idx.memo[cur]; ok {
			base = d
			break
		}
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		base++
		idx.memo[chain[i]] = base
	}
	return idx.memo[id]
}

// Bounds returns the smallest rectangle enclosing every rect, or a zero
// rectangle for an empty snapshot.
func (s *Snapshot) Bounds() session.Rect {
	if len(s.Rects) == 0 {
		return session.Rect{}
	}
	lo, hi := s.Rects[0].Offset, geom.Advance(s.Rects[0].Offset, s.Rects[0].Size)
	for _, r := range s.Rects[1:] {
		end := geom.Advance(r.Offset, r.Size)
		for a := geom.Horizontal; a <= geom.Vertical; a++ {
			lo = lo.With(a, min(lo.At(a), r.Offset.At(a)))
			hi = hi.With(a, max(hi.At(a), end.At(a)))
		}
	}
	size := hi.Sub(lo)
	return geom.NewRect(lo, geom.Size2{uint32(size[0]), uint32(size[1])})
}
