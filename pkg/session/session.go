// Package session binds a tree, a stacking policy and an incremental layout
// engine into one editable layout.
//
// Every edit goes through the tree or the policy and marks exactly the
// identities they report as changed, so [Session.Recompute] always matches
// a from-scratch layout of the current state:
//
//	sess := session.New("window")
//	_ = sess.Insert("window", "toolbar", -1, stack.Leaf(geom.Size2{80, 3}))
//	res, err := sess.Recompute()
//
// A session is not safe for concurrent use.
package session

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/layout"
	"github.com/matzehuels/reflow/pkg/scene"
	"github.com/matzehuels/reflow/pkg/stack"
	"github.com/matzehuels/reflow/pkg/tree"
)

// Planar instantiations used throughout the application.
type (
	Rect   = geom.Rect[geom.Offset2, geom.Size2]
	Spec   = stack.Spec[geom.Size2]
	Change = layout.Change[string, geom.Offset2, geom.Size2]
	Result = layout.Result[string, geom.Offset2, geom.Size2]
	Tree   = tree.Tree[string]
	Policy = stack.Policy[string, geom.Offset2, geom.Size2]
	Engine = layout.Engine[string, geom.Offset2, geom.Size2]
)

var _ layout.Topology[string] = (*Tree)(nil)
var _ layout.Policy[string, geom.Offset2, geom.Size2] = (*Policy)(nil)

// Entry is one cached rectangle.
type Entry struct {
	ID   string
	Rect Rect
}

// Session is an editable layout.
type Session struct {
	tree   *Tree
	policy *Policy
	engine *Engine
	origin geom.Offset2

	logger     *log.Logger
	engineOpts []layout.Option
}

// Option configures a Session.
type Option func(*Session)

// WithLogger logs edits and generations at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
		s.engineOpts = append(s.engineOpts, layout.WithLogger(l))
	}
}

// WithEngineOptions passes options through to the layout engine.
func WithEngineOptions(opts ...layout.Option) Option {
	return func(s *Session) { s.engineOpts = append(s.engineOpts, opts...) }
}

// New returns a session whose tree contains only root.
func New(root string, opts ...Option) *Session {
	return newSession(tree.New(root), stack.New[string, geom.Offset2, geom.Size2](), geom.Offset2{}, opts)
}

// FromScene returns a session laid out from a validated scene. Nothing has
// been computed yet; the first Recompute lays out the whole tree.
func FromScene(sc *scene.Scene, opts ...Option) (*Session, error) {
	t, p, err := sc.Build()
	if err != nil {
		return nil, err
	}
	return newSession(t, p, sc.Origin(), opts), nil
}

func newSession(t *Tree, p *Policy, origin geom.Offset2, opts []Option) *Session {
	s := &Session{tree: t, policy: p, origin: origin}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = layout.New[string, geom.Offset2, geom.Size2](t.Root(), s.engineOpts...)
	return s
}

// Root returns the root identity.
func (s *Session) Root() string { return s.tree.Root() }

// Tree returns the session's tree. Mutating it directly bypasses pending
// tracking; use [Session.Mark] afterwards.
func (s *Session) Tree() *Tree { return s.tree }

// Policy returns the session's policy.
func (s *Session) Policy() *Policy { return s.policy }

// Engine returns the session's engine.
func (s *Session) Engine() *Engine { return s.engine }

// Origin returns the offset the root is laid out at.
func (s *Session) Origin() geom.Offset2 { return s.origin }

// SetOrigin moves the root. The engine notices the change on the next
// Recompute.
func (s *Session) SetOrigin(o geom.Offset2) { s.origin = o }

// Mark marks ids pending.
func (s *Session) Mark(ids ...string) {
	for _, id := range ids {
		s.engine.MarkPending(id)
	}
}

// Resize makes id a leaf of the given size.
func (s *Session) Resize(id string, size geom.Size2) error {
	if err := s.require(id); err != nil {
		return err
	}
	if s.policy.SetLeaf(id, size) {
		s.debug("resize", "id", id, "size", size)
		s.Mark(id)
	}
	return nil
}

// Insert creates id under parent with the given spec. A negative index
// appends.
func (s *Session) Insert(parent, id string, index int, spec Spec) error {
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	if spec.Kind == stack.KindContainer && spec.Axis == geom.Depth {
		return errors.New(errors.ErrCodeInvalidInput, "axis %s is not available in a planar layout", spec.Axis)
	}
	if index < 0 {
		index = len(s.tree.ChildrenOf(parent))
	}
	touched, err := s.tree.InsertAt(parent, id, index)
	if err != nil {
		return treeError(err, "insert %s into %s", id, parent)
	}
	s.policy.Set(id, spec)
	s.debug("insert", "id", id, "parent", parent, "index", index)
	s.Mark(touched...)
	return nil
}

// Remove deletes id and its subtree, forgetting their specs.
func (s *Session) Remove(id string) error {
	if err := s.require(id); err != nil {
		return err
	}
	subtree := s.subtree(id)
	touched, err := s.tree.Remove(id)
	if err != nil {
		return treeError(err, "remove %s", id)
	}
	for _, n := range subtree {
		s.policy.Remove(n)
	}
	s.debug("remove", "id", id, "nodes", len(subtree))
	s.Mark(touched...)
	return nil
}

// Move reattaches id under parent at index. A negative index appends.
func (s *Session) Move(id, parent string, index int) error {
	if index < 0 {
		index = len(s.tree.ChildrenOf(parent))
		if p, ok := s.tree.ParentOf(id); ok && p == parent {
			index--
		}
	}
	touched, err := s.tree.Move(id, parent, index)
	if err != nil {
		return treeError(err, "move %s to %s", id, parent)
	}
	s.debug("move", "id", id, "parent", parent, "index", index)
	s.Mark(touched...)
	return nil
}

// SetAxis changes the stacking axis of id.
func (s *Session) SetAxis(id string, axis geom.Axis) error {
	if axis == geom.Depth {
		return errors.New(errors.ErrCodeInvalidInput, "axis %s is not available in a planar layout", axis)
	}
	return s.update(id, func() bool { return s.policy.SetAxis(id, axis) })
}

// SetSpacing changes the gap between the children of id.
func (s *Session) SetSpacing(id string, spacing uint32) error {
	return s.update(id, func() bool { return s.policy.SetSpacing(id, spacing) })
}

// SetPadding changes the padding of id.
func (s *Session) SetPadding(id string, padding geom.Thickness[geom.Size2]) error {
	return s.update(id, func() bool { return s.policy.SetPadding(id, padding) })
}

func (s *Session) update(id string, set func() bool) error {
	if err := s.require(id); err != nil {
		return err
	}
	if set() {
		s.Mark(id)
	}
	return nil
}

// Reload replaces the tree and policy with those built from next, which
// must be the successor of old, and marks the identities [scene.Diff]
// reports. A scene with a different root starts a fresh engine, so the next
// Recompute lays out everything. Reload returns the marked identities.
func (s *Session) Reload(old, next *scene.Scene) ([]string, error) {
	t, p, err := next.Build()
	if err != nil {
		return nil, err
	}
	s.origin = next.Origin()
	if t.Root() != s.tree.Root() {
		s.debug("reload", "root", t.Root(), "fresh", true)
		s.tree, s.policy = t, p
		s.engine = layout.New[string, geom.Offset2, geom.Size2](t.Root(), s.engineOpts...)
		return nil, nil
	}
	ids := scene.Diff(old, next)
	s.tree, s.policy = t, p
	s.debug("reload", "pending", len(ids))
	s.Mark(ids...)
	return ids, nil
}

// Recompute runs one generation. Contract violations raised by the engine
// are returned as errors; the session must not be used after one.
func (s *Session) Recompute() (res Result, err error) {
	defer layout.Recover(&err)
	return s.engine.Recompute(s.tree, s.policy, s.origin), nil
}

// Snapshot returns every cached rectangle sorted by identity.
func (s *Session) Snapshot() []Entry {
	return collect(s.engine)
}

// Full lays out the current state from scratch with a fresh engine and
// returns the result sorted by identity. The session's engine is untouched.
func (s *Session) Full() (entries []Entry, err error) {
	defer layout.Recover(&err)
	eng := layout.New[string, geom.Offset2, geom.Size2](s.tree.Root())
	eng.Recompute(s.tree, s.policy, s.origin)
	return collect(eng), nil
}

func collect(eng *Engine) []Entry {
	entries := make([]Entry, 0, eng.Len())
	for id, r := range eng.Rects() {
		entries = append(entries, Entry{ID: id, Rect: r})
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.ID, b.ID) })
	return entries
}

func (s *Session) require(id string) error {
	if !s.tree.Exists(id) {
		return errors.New(errors.ErrCodeUnknownNode, "unknown node %q", id)
	}
	return nil
}

func (s *Session) subtree(id string) []string {
	out := []string{id}
	for i := 0; i < len(out); i++ {
		out = append(out, s.tree.ChildrenOf(out[i])...)
	}
	return out
}

func (s *Session) debug(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

// treeError maps tree sentinel errors onto error codes.
func treeError(err error, format string, args ...any) error {
	code := errors.ErrCodeInvalidInput
	if stderrors.Is(err, tree.ErrUnknownNode) {
		code = errors.ErrCodeUnknownNode
	}
	return errors.Wrap(code, err, format, args...)
}
