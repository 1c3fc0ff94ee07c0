package geom

import (
	"fmt"
	"strings"
)

// Axis selects one dimension of a vector.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
	Depth
)

var axisNames = map[string]Axis{
	"horizontal": Horizontal,
	"row":        Horizontal,
	"x":          Horizontal,
	"vertical":   Vertical,
	"column":     Vertical,
	"y":          Vertical,
	"depth":      Depth,
	"z":          Depth,
}

// ParseAxis converts a name such as "horizontal", "row" or "y" into an Axis.
// Matching is case-insensitive.
func ParseAxis(s string) (Axis, error) {
	if a, ok := axisNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Depth:
		return "depth"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Offset is the constraint satisfied by absolute position vectors.
type Offset[O any] interface {
	comparable
	Rank() int
	At(a Axis) int32
	With(a Axis, v int32) O
	Add(O) O
	Sub(O) O
}

// Size is the constraint satisfied by extent vectors.
type Size[S any] interface {
	comparable
	Rank() int
	At(a Axis) uint32
	With(a Axis, v uint32) S
	Add(S) S
}

// Offset2 is a planar absolute position.
type Offset2 [2]int32

func (o Offset2) Rank() int                    { return 2 }
func (o Offset2) At(a Axis) int32              { return o[a] }
func (o Offset2) With(a Axis, v int32) Offset2 { o[a] = v; return o }
func (o Offset2) Add(d Offset2) Offset2        { return Offset2{o[0] + d[0], o[1] + d[1]} }
func (o Offset2) Sub(d Offset2) Offset2        { return Offset2{o[0] - d[0], o[1] - d[1]} }
func (o Offset2) String() string               { return fmt.Sprintf("(%d,%d)", o[0], o[1]) }

// Size2 is a planar extent.
type Size2 [2]uint32

func (s Size2) Rank() int                   { return 2 }
func (s Size2) At(a Axis) uint32            { return s[a] }
func (s Size2) With(a Axis, v uint32) Size2 { s[a] = v; return s }
func (s Size2) Add(d Size2) Size2           { return Size2{s[0] + d[0], s[1] + d[1]} }
func (s Size2) String() string              { return fmt.Sprintf("%dx%d", s[0], s[1]) }

// Offset3 is an absolute position with a depth component.
type Offset3 [3]int32

func (o Offset3) Rank() int                    { return 3 }
func (o Offset3) At(a Axis) int32              { return o[a] }
func (o Offset3) With(a Axis, v int32) Offset3 { o[a] = v; return o }
func (o Offset3) Add(d Offset3) Offset3 {
	return Offset3{o[0] + d[0], o[1] + d[1], o[2] + d[2]}
}
func (o Offset3) Sub(d Offset3) Offset3 {
	return Offset3{o[0] - d[0], o[1] - d[1], o[2] - d[2]}
}
func (o Offset3) String() string { return fmt.Sprintf("(%d,%d,%d)", o[0], o[1], o[2]) }

// Size3 is an extent with a depth component.
type Size3 [3]uint32

func (s Size3) Rank() int                   { return 3 }
func (s Size3) At(a Axis) uint32            { return s[a] }
func (s Size3) With(a Axis, v uint32) Size3 { s[a] = v; return s }
func (s Size3) Add(d Size3) Size3           { return Size3{s[0] + d[0], s[1] + d[1], s[2] + d[2]} }
func (s Size3) String() string              { return fmt.Sprintf("%dx%dx%d", s[0], s[1], s[2]) }

// Rect is an absolute offset paired with a size. Two rects are equal iff both
// components are equal.
type Rect[O Offset[O], S Size[S]] struct {
	Offset O
	Size   S
}

// NewRect builds a Rect from its components.
func NewRect[O Offset[O], S Size[S]](offset O, size S) Rect[O, S] {
	return Rect[O, S]{Offset: offset, Size: size}
}

// Translate returns r moved by delta.
func (r Rect[O, S]) Translate(delta O) Rect[O, S] {
	return Rect[O, S]{Offset: r.Offset.Add(delta), Size: r.Size}
}

func (r Rect[O, S]) String() string {
	return fmt.Sprintf("%v@%v", r.Size, r.Offset)
}

// Thickness holds padding on the leading and trailing side of every axis.
type Thickness[S Size[S]] struct {
	Leading  S
	Trailing S
}

// Total returns the combined leading and trailing extent.
func (t Thickness[S]) Total() S {
	return t.Leading.Add(t.Trailing)
}

// Advance returns o moved by s along every axis o has.
func Advance[O Offset[O], S Size[S]](o O, s S) O {
	for a := Axis(0); int(a) < o.Rank(); a++ {
		o = o.With(a, o.At(a)+int32(s.At(a)))
	}
	return o
}
