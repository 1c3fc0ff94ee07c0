package script

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/session"
	"github.com/matzehuels/reflow/pkg/stack"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Dims", Pattern: `\d+x\d+`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Script is a parsed edit script.
type Script struct {
	Statements []*Statement `parser:"Newline* ( @@ Newline* )*"`
}

// Statement is one line of a script. Exactly one field is set.
type Statement struct {
	Pos lexer.Position `parser:""`

	Resize    *Resize  `parser:"  @@"`
	Insert    *Insert  `parser:"| @@"`
	Remove    *Remove  `parser:"| @@"`
	Move      *Move    `parser:"| @@"`
	Axis      *Axis    `parser:"| @@"`
	Spacing   *Spacing `parser:"| @@"`
	Padding   *Padding `parser:"| @@"`
	Offset    *Offset  `parser:"| @@"`
	Recompute bool     `parser:"| @'recompute'"`
}

// Kind returns the statement keyword.
func (s *Statement) Kind() string {
	switch {
	case s.Resize != nil:
		return "resize"
	case s.Insert != nil:
		return "insert"
	case s.Remove != nil:
		return "remove"
	case s.Move != nil:
		return "move"
	case s.Axis != nil:
		return "axis"
	case s.Spacing != nil:
		return "spacing"
	case s.Padding != nil:
		return "padding"
	case s.Offset != nil:
		return "offset"
	case s.Recompute:
		return "recompute"
	default:
		return "unknown"
	}
}

// Dims is a WxH literal.
type Dims geom.Size2

// Capture implements participle.Capture.
func (d *Dims) Capture(values []string) error {
	w, h, ok := strings.Cut(values[0], "x")
	if !ok {
		return fmt.Errorf("invalid size %q", values[0])
	}
	wv, err := strconv.ParseUint(w, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid width in %q: %w", values[0], err)
	}
	hv, err := strconv.ParseUint(h, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid height in %q: %w", values[0], err)
	}
	*d = Dims{uint32(wv), uint32(hv)}
	return nil
}

// Resize sets the size of a leaf.
type Resize struct {
	ID   string `parser:"'resize' @Ident"`
	Size Dims   `parser:"@Dims"`
}

// Insert creates a leaf or a container.
type Insert struct {
	ID     string  `parser:"'insert' @Ident"`
	Parent string  `parser:"'into' @Ident"`
	Index  *int    `parser:"( 'at' @Int )?"`
	Size   *Dims   `parser:"( 'size' @Dims"`
	Axis   *string `parser:"| 'axis' @Ident )"`
}

// Remove deletes a node and its subtree.
type Remove struct {
	ID string `parser:"'remove' @Ident"`
}

// Move reattaches a node.
type Move struct {
	ID     string `parser:"'move' @Ident"`
	Parent string `parser:"'to' @Ident"`
	Index  *int   `parser:"( 'at' @Int )?"`
}

// Axis changes a container's stacking axis.
type Axis struct {
	ID   string `parser:"'axis' @Ident"`
	Axis string `parser:"@Ident"`
}

// Spacing changes the gap between a container's children.
type Spacing struct {
	ID    string `parser:"'spacing' @Ident"`
	Value int    `parser:"@Int"`
}

// Padding changes a container's padding.
type Padding struct {
	ID    string `parser:"'padding' @Ident"`
	Sides []int  `parser:"@Int @Int @Int @Int"`
}

// Offset moves the root.
type Offset struct {
	X int `parser:"'offset' @Int"`
	Y int `parser:"@Int"`
}

// Parse parses a script from r.
func Parse(r io.Reader) (*Script, error) {
	return wrapParse(scriptParser.Parse("", r))
}

// ParseString parses a script from a string.
func ParseString(input string) (*Script, error) {
	return wrapParse(scriptParser.ParseString("", input))
}

// ParseFile parses the script at path.
func ParseFile(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script %s", path)
	}
	return wrapParse(scriptParser.ParseBytes(path, data))
}

func wrapParse(s *Script, err error) (*Script, error) {
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	return s, nil
}

// Len returns the number of statements.
func (s *Script) Len() int { return len(s.Statements) }

// Generations returns the number of generations Apply will run.
func (s *Script) Generations() int {
	n := 0
	for _, st := range s.Statements {
		if st.Recompute {
			n++
		}
	}
	if len(s.Statements) == 0 || !s.Statements[len(s.Statements)-1].Recompute {
		n++
	}
	return n
}

// Apply runs the script against sess and returns one result per
// generation. It stops at the first failing statement.
func (s *Script) Apply(sess *session.Session) ([]session.Result, error) {
	var results []session.Result
	recompute := func() error {
		res, err := sess.Recompute()
		if err != nil {
			return err
		}
		results = append(results, res)
		return nil
	}

	for _, st := range s.Statements {
		var err error
		if st.Recompute {
			err = recompute()
		} else {
			err = st.apply(sess)
		}
		if err != nil {
			return results, errors.Wrap(errors.ErrCodeInvalidScript, err, "line %d: %s", st.Pos.Line, st.Kind())
		}
	}

	if n := len(s.Statements); n == 0 || !s.Statements[n-1].Recompute {
		if err := recompute(); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (st *Statement) apply(sess *session.Session) error {
	switch {
	case st.Resize != nil:
		return sess.Resize(st.Resize.ID, geom.Size2(st.Resize.Size))
	case st.Insert != nil:
		return applyInsert(sess, st.Insert)
	case st.Remove != nil:
		return sess.Remove(st.Remove.ID)
	case st.Move != nil:
		i, err := index(st.Move.Index)
		if err != nil {
			return err
		}
		return sess.Move(st.Move.ID, st.Move.Parent, i)
	case st.Axis != nil:
		axis, err := geom.ParseAxis(st.Axis.Axis)
		if err != nil {
			return err
		}
		return sess.SetAxis(st.Axis.ID, axis)
	case st.Spacing != nil:
		v, err := toUint32("spacing", st.Spacing.Value)
		if err != nil {
			return err
		}
		return sess.SetSpacing(st.Spacing.ID, v)
	case st.Padding != nil:
		pad, err := thickness(st.Padding.Sides)
		if err != nil {
			return err
		}
		return sess.SetPadding(st.Padding.ID, pad)
	case st.Offset != nil:
		x, err := toInt32("offset x", st.Offset.X)
		if err != nil {
			return err
		}
		y, err := toInt32("offset y", st.Offset.Y)
		if err != nil {
			return err
		}
		sess.SetOrigin(geom.Offset2{x, y})
		return nil
	}
	return fmt.Errorf("empty statement")
}

func applyInsert(sess *session.Session, in *Insert) error {
	var spec session.Spec
	switch {
	case in.Size != nil:
		spec = stack.Leaf(geom.Size2(*in.Size))
	case in.Axis != nil:
		axis, err := geom.ParseAxis(*in.Axis)
		if err != nil {
			return err
		}
		spec = stack.Container[geom.Size2](axis, geom.Thickness[geom.Size2]{}, 0)
	}
	i, err := index(in.Index)
	if err != nil {
		return err
	}
	return sess.Insert(in.Parent, in.ID, i, spec)
}

// index resolves an optional "at N" clause. Without one the node is
// appended.
func index(i *int) (int, error) {
	if i == nil {
		return -1, nil
	}
	if *i < 0 {
		return 0, fmt.Errorf("index must not be negative, got %d", *i)
	}
	return *i, nil
}

func toUint32(what string, v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%s %d out of range [0, %d]", what, v, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}

func toInt32(what string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s %d out of range [%d, %d]", what, v, math.MinInt32, math.MaxInt32)
	}
	return int32(v), nil
}

// thickness converts left, top, right, bottom into a planar thickness.
func thickness(sides []int) (geom.Thickness[geom.Size2], error) {
	var v [4]uint32
	for i, side := range sides {
		n, err := toUint32("padding", side)
		if err != nil {
			return geom.Thickness[geom.Size2]{}, err
		}
		v[i] = n
	}
	return geom.Thickness[geom.Size2]{
		Leading:  geom.Size2{v[0], v[1]},
		Trailing: geom.Size2{v[2], v[3]},
	}, nil
}
