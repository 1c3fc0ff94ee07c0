package stack

import (
	"fmt"

	"github.com/matzehuels/reflow/pkg/geom"
)

// Kind distinguishes leaves from containers.
type Kind int

const (
	KindContainer Kind = iota
	KindLeaf
)

func (k Kind) String() string {
	if k == KindLeaf {
		return "leaf"
	}
	return "container"
}

// Spec describes how one node is measured and how it places its children.
type Spec[S geom.Size[S]] struct {
	Kind Kind

	// Size is the intrinsic size of a leaf.
	Size S

	// Container parameters.
	Axis    geom.Axis
	Padding geom.Thickness[S]
	Spacing uint32
}

// Leaf returns the spec of a leaf with a fixed size.
func Leaf[S geom.Size[S]](size S) Spec[S] {
	return Spec[S]{Kind: KindLeaf, Size: size}
}

// Container returns the spec of a container stacking along axis.
func Container[S geom.Size[S]](axis geom.Axis, padding geom.Thickness[S], spacing uint32) Spec[S] {
	return Spec[S]{Kind: KindContainer, Axis: axis, Padding: padding, Spacing: spacing}
}

// axis returns the stacking axis, falling back to Horizontal when the axis
// does not exist at the given rank.
func (s Spec[S]) axis(rank int) geom.Axis {
	if int(s.Axis) >= rank {
		return geom.Horizontal
	}
	return s.Axis
}

func (s Spec[S]) String() string {
	if s.Kind == KindLeaf {
		return fmt.Sprintf("leaf %v", s.Size)
	}
	return fmt.Sprintf("%s container padding=%v/%v spacing=%d", s.Axis, s.Padding.Leading, s.Padding.Trailing, s.Spacing)
}

// Policy maps identities to specs and implements layout.Policy. The zero
// value is not usable; create policies with [New].
type Policy[ID comparable, O geom.Offset[O], S geom.Size[S]] struct {
	specs map[ID]Spec[S]
}

// New returns an empty policy.
func New[ID comparable, O geom.Offset[O], S geom.Size[S]]() *Policy[ID, O, S] {
	return &Policy[ID, O, S]{specs: make(map[ID]Spec[S])}
}

// Spec returns the spec of id and whether one was set explicitly.
func (p *Policy[ID, O, S]) Spec(id ID) (Spec[S], bool) {
	s, ok := p.specs[id]
	if !ok {
		return Spec[S]{Kind: KindContainer, Axis: geom.Horizontal}, false
	}
	return s, true
}

// Len returns the number of explicit specs.
func (p *Policy[ID, O, S]) Len() int { return len(p.specs) }

// Set stores spec for id and reports whether it differs from the previous
// one.
func (p *Policy[ID, O, S]) Set(id ID, spec Spec[S]) bool {
	if prev, ok := p.specs[id]; ok && prev == spec {
		return false
	}
	p.specs[id] = spec
	return true
}

// SetLeaf makes id a leaf of the given size.
func (p *Policy[ID, O, S]) SetLeaf(id ID, size S) bool {
	return p.Set(id, Leaf(size))
}

// SetContainer makes id a container.
func (p *Policy[ID, O, S]) SetContainer(id ID, axis geom.Axis, padding geom.Thickness[S], spacing uint32) bool {
	return p.Set(id, Container(axis, padding, spacing))
}

// SetAxis changes the stacking axis of id. A leaf becomes a container with
// no padding and no spacing.
func (p *Policy[ID, O, S]) SetAxis(id ID, axis geom.Axis) bool {
	s := p.container(id)
	s.Axis = axis
	return p.Set(id, s)
}

// SetPadding changes the padding of id, turning a leaf into a container.
func (p *Policy[ID, O, S]) SetPadding(id ID, padding geom.Thickness[S]) bool {
	s := p.container(id)
	s.Padding = padding
	return p.Set(id, s)
}

// SetSpacing changes the gap between children of id, turning a leaf into a
// container.
func (p *Policy[ID, O, S]) SetSpacing(id ID, spacing uint32) bool {
	s := p.container(id)
	s.Spacing = spacing
	return p.Set(id, s)
}

// Remove forgets the spec of id.
func (p *Policy[ID, O, S]) Remove(id ID) bool {
	if _, ok := p.specs[id]; !ok {
		return false
	}
	delete(p.specs, id)
	return true
}

func (p *Policy[ID, O, S]) container(id ID) Spec[S] {
	s, _ := p.Spec(id)
	if s.Kind == KindLeaf {
		return Container[S](geom.Horizontal, geom.Thickness[S]{}, 0)
	}
	return s
}

// Measure returns the outer size of id. A leaf reports its intrinsic size.
// A container sums its children and the spacing between them along its
// axis, takes the maximum across the other axes, and adds its padding.
func (p *Policy[ID, O, S]) Measure(id ID, childSizes []S) S {
	s, _ := p.Spec(id)
	if s.Kind == KindLeaf {
		return s.Size
	}

	var out S
	axis := s.axis(out.Rank())
	for i, c := range childSizes {
		for a := geom.Axis(0); int(a) < c.Rank(); a++ {
			switch {
			case a == axis:
				v := out.At(a) + c.At(a)
				if i > 0 {
					v += s.Spacing
				}
				out = out.With(a, v)
			case c.At(a) > out.At(a):
				out = out.With(a, c.At(a))
			}
		}
	}
	return out.Add(s.Padding.Total())
}

// PlaceChildren positions children one after another along the container's
// axis, starting inside the leading padding. Children of a leaf all share
// the leaf's offset.
func (p *Policy[ID, O, S]) PlaceChildren(id ID, parentOffset O, childSizes []S) []O {
	offsets := make([]O, len(childSizes))
	s, _ := p.Spec(id)
	if s.Kind == KindLeaf {
		for i := range offsets {
			offsets[i] = parentOffset
		}
		return offsets
	}

	axis := s.axis(parentOffset.Rank())
	cursor := geom.Advance(parentOffset, s.Padding.Leading)
	for i, c := range childSizes {
		offsets[i] = cursor
		step := int32(c.At(axis) + s.Spacing)
		cursor = cursor.With(axis, cursor.At(axis)+step)
	}
	return offsets
}
