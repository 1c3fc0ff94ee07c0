package tree

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when an operation names a node that is not
	// in the tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateNode is returned when creating a node whose identity is
	// already in use.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrCycle is returned by [Tree.Move] and [Tree.SetChildren] when a node
	// would become its own ancestor.
	ErrCycle = errors.New("operation would create a cycle")

	// ErrRootImmutable is returned when removing, detaching or moving the
	// root.
	ErrRootImmutable = errors.New("root cannot be removed or moved")

	// ErrIndexOutOfRange is returned by [Tree.InsertAt] and [Tree.Move] for
	// an index beyond the end of the child list.
	ErrIndexOutOfRange = errors.New("child index out of range")
)

type node[ID comparable] struct {
	parent    ID
	hasParent bool
	children  []ID
}

// Tree is an ordered tree with a fixed root. The zero value is not usable;
// create trees with [New].
type Tree[ID comparable] struct {
	root  ID
	nodes map[ID]*node[ID]
}

// New returns a tree containing only root.
func New[ID comparable](root ID) *Tree[ID] {
	return &Tree[ID]{
		root:  root,
		nodes: map[ID]*node[ID]{root: {}},
	}
}

// Root returns the root identity.
func (t *Tree[ID]) Root() ID { return t.root }

// Len returns the number of nodes, attached or detached.
func (t *Tree[ID]) Len() int { return len(t.nodes) }

// Exists reports whether id is in the tree.
func (t *Tree[ID]) Exists(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// ChildrenOf returns the ordered children of id, or nil for an unknown node.
// The returned slice must not be modified.
func (t *Tree[ID]) ChildrenOf(id ID) []ID {
	if n, ok := t.nodes[id]; ok {
		return n.children
	}
	return nil
}

// ParentOf returns the parent of id. It reports false for the root, for
// detached nodes and for unknown identities.
func (t *Tree[ID]) ParentOf(id ID) (ID, bool) {
	if n, ok := t.nodes[id]; ok && n.hasParent {
		return n.parent, true
	}
	var zero ID
	return zero, false
}

// Insert creates a detached node.
func (t *Tree[ID]) Insert(id ID) error {
	if t.Exists(id) {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, id)
	}
	t.nodes[id] = &node[ID]{}
	return nil
}

// Append creates child as the last child of parent.
func (t *Tree[ID]) Append(parent, child ID) ([]ID, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, parent)
	}
	return t.InsertAt(parent, child, len(p.children))
}

// InsertAt creates child at position index among parent's children.
func (t *Tree[ID]) InsertAt(parent, child ID, index int) ([]ID, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, parent)
	}
	if t.Exists(child) {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateNode, child)
	}
	if index < 0 || index > len(p.children) {
		return nil, fmt.Errorf("%w: %d (parent %v has %d children)", ErrIndexOutOfRange, index, parent, len(p.children))
	}
	t.nodes[child] = &node[ID]{parent: parent, hasParent: true}
	p.children = slices.Insert(p.children, index, child)
	return []ID{parent}, nil
}

// Move reattaches an existing node at position index among newParent's
// children, taking its subtree along. When the node already sits under
// newParent, index is interpreted after the node has been taken out.
func (t *Tree[ID]) Move(child, newParent ID, index int) ([]ID, error) {
	if child == t.root {
		return nil, ErrRootImmutable
	}
	c, ok := t.nodes[child]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, child)
	}
	p, ok := t.nodes[newParent]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, newParent)
	}
	if t.isAncestor(child, newParent) {
		return nil, fmt.Errorf("%w: %v under %v", ErrCycle, child, newParent)
	}

	limit := len(p.children)
	if c.hasParent && c.parent == newParent {
		limit--
	}
	if index < 0 || index > limit {
		return nil, fmt.Errorf("%w: %d (parent %v accepts at most %d)", ErrIndexOutOfRange, index, newParent, limit)
	}

	var touched []ID
	if c.hasParent {
		touched = append(touched, c.parent)
		t.unlink(child)
	}
	c.parent, c.hasParent = newParent, true
	p.children = slices.Insert(p.children, index, child)
	if !slices.Contains(touched, newParent) {
		touched = append(touched, newParent)
	}
	return touched, nil
}

// SetChildren replaces the child list of parent. Listed nodes that do not
// exist are created; listed nodes attached elsewhere are moved; previous
// children that are not listed become detached.
func (t *Tree[ID]) SetChildren(parent ID, children []ID) ([]ID, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, parent)
	}

	seen := make(map[ID]struct{}, len(children))
	for _, c := range children {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %v listed twice under %v", ErrDuplicateNode, c, parent)
		}
		seen[c] = struct{}{}
		if c == t.root {
			return nil, ErrRootImmutable
		}
		if t.Exists(c) && t.isAncestor(c, parent) {
			return nil, fmt.Errorf("%w: %v under %v", ErrCycle, c, parent)
		}
	}

	touched := []ID{parent}
	for _, old := range p.children {
		if _, kept := seen[old]; !kept {
			t.nodes[old].hasParent = false
		}
	}
	for _, c := range children {
		n, ok := t.nodes[c]
		if !ok {
			t.nodes[c] = &node[ID]{parent: parent, hasParent: true}
			continue
		}
		if n.hasParent && n.parent != parent {
			if !slices.Contains(touched, n.parent) {
				touched = append(touched, n.parent)
			}
			t.unlink(c)
		}
		n.parent, n.hasParent = parent, true
	}
	p.children = slices.Clone(children)
	return touched, nil
}

// Detach unlinks id from its parent without deleting it.
func (t *Tree[ID]) Detach(id ID) ([]ID, error) {
	if id == t.root {
		return nil, ErrRootImmutable
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, id)
	}
	if !n.hasParent {
		return nil, nil
	}
	parent := n.parent
	t.unlink(id)
	n.hasParent = false
	return []ID{parent}, nil
}

// Remove deletes id and its whole subtree.
func (t *Tree[ID]) Remove(id ID) ([]ID, error) {
	if id == t.root {
		return nil, ErrRootImmutable
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, id)
	}
	var touched []ID
	if n.hasParent {
		touched = []ID{n.parent}
		t.unlink(id)
	}
	t.drop(id)
	return touched, nil
}

// Walk visits the attached nodes in pre-order starting at the root. It stops
// early when fn returns false.
func (t *Tree[ID]) Walk(fn func(id ID, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree[ID]) walk(id ID, depth int, fn func(ID, int) bool) bool {
	if !fn(id, depth) {
		return false
	}
	for _, c := range t.nodes[id].children {
		if !t.walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// unlink removes id from its parent's child list. The node's own parent
// fields are left to the caller.
func (t *Tree[ID]) unlink(id ID) {
	n := t.nodes[id]
	p := t.nodes[n.parent]
	if i := slices.Index(p.children, id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
}

func (t *Tree[ID]) drop(id ID) {
	n := t.nodes[id]
	delete(t.nodes, id)
	for _, c := range n.children {
		t.drop(c)
	}
}

// isAncestor reports whether a is b or one of b's ancestors.
func (t *Tree[ID]) isAncestor(a, b ID) bool {
	for {
		if a == b {
			return true
		}
		n := t.nodes[b]
		if n == nil || !n.hasParent {
			return false
		}
		b = n.parent
	}
}
