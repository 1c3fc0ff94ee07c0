package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/stack"
	"github.com/matzehuels/reflow/pkg/tree"
)

// Format identifies a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format from %q", path)
}

// Scene is the decoded form of a scene file.
type Scene struct {
	Root   string   `toml:"root" yaml:"root" json:"root" validate:"required"`
	Offset [2]int32 `toml:"offset" yaml:"offset" json:"offset"`
	Nodes  []Node   `toml:"nodes" yaml:"nodes" json:"nodes" validate:"required,min=1,dive"`
}

// Node describes one node of a scene.
type Node struct {
	ID       string   `toml:"id" yaml:"id" json:"id" validate:"required"`
	Size     []uint32 `toml:"size,omitempty" yaml:"size,omitempty" json:"size,omitempty" validate:"omitempty,len=2"`
	Axis     string   `toml:"axis,omitempty" yaml:"axis,omitempty" json:"axis,omitempty" validate:"omitempty,axis2"`
	Padding  []uint32 `toml:"padding,omitempty" yaml:"padding,omitempty" json:"padding,omitempty" validate:"omitempty,len=4"`
	Spacing  uint32   `toml:"spacing,omitempty" yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Children []string `toml:"children,omitempty" yaml:"children,omitempty" json:"children,omitempty" validate:"dive,required"`
}

// IsLeaf reports whether the node has an intrinsic size.
func (n Node) IsLeaf() bool { return len(n.Size) > 0 }

// Spec converts the node into a stacking spec. The node must be valid.
func (n Node) Spec() stack.Spec[geom.Size2] {
	if n.IsLeaf() {
		return stack.Leaf(geom.Size2{n.Size[0], n.Size[1]})
	}
	axis := geom.Horizontal
	if n.Axis != "" {
		axis, _ = geom.ParseAxis(n.Axis)
	}
	var pad geom.Thickness[geom.Size2]
	if len(n.Padding) == 4 {
		pad.Leading = geom.Size2{n.Padding[0], n.Padding[1]}
		pad.Trailing = geom.Size2{n.Padding[2], n.Padding[3]}
	}
	return stack.Container(axis, pad, n.Spacing)
}

// sceneValidate checks struct tags on decoded scenes.
var sceneValidate *validator.Validate

func init() {
	sceneValidate = validator.New()
	if err := sceneValidate.RegisterValidation("axis2", validateAxis2); err != nil {
		panic(err)
	}
}

// validateAxis2 accepts axis names that exist in a planar layout.
func validateAxis2(fl validator.FieldLevel) bool {
	a, err := geom.ParseAxis(fl.Field().String())
	return err == nil && a != geom.Depth
}

// Load reads and validates the scene at path.
func Load(path string) (*Scene, error) {
	if err := errors.ValidateScenePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", path)
	}
	return Parse(data, format)
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints and the tree structure: unique ids, a
// declared root, known children, a single parent per node and every node
// reachable from the root.
func (s *Scene) Validate() error {
	if err := sceneValidate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeInvalidScene, "%s: invalid value %v (%s)", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "validate scene")
	}

	byID := make(map[string]*Node, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if _, dup := byID[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidScene, "node %q declared twice", n.ID)
		}
		if n.IsLeaf() && len(n.Children) > 0 {
			return errors.New(errors.ErrCodeInvalidScene, "leaf %q cannot have children", n.ID)
		}
		byID[n.ID] = n
	}
	if _, ok := byID[s.Root]; !ok {
		return errors.New(errors.ErrCodeInvalidScene, "root %q is not declared", s.Root)
	}

	parent := make(map[string]string, len(s.Nodes))
	for _, n := range s.Nodes {
		for _, c := range n.Children {
			if _, ok := byID[c]; !ok {
				return errors.New(errors.ErrCodeUnknownNode, "node %q lists unknown child %q", n.ID, c)
			}
			if c == s.Root {
				return errors.New(errors.ErrCodeInvalidScene, "root %q cannot be a child of %q", c, n.ID)
			}
			if p, ok := parent[c]; ok {
				return errors.New(errors.ErrCodeInvalidScene, "node %q has two parents: %q and %q", c, p, n.ID)
			}
			parent[c] = n.ID
		}
	}

	reached := make(map[string]bool, len(s.Nodes))
	todo := []string{s.Root}
	for len(todo) > 0 {
		id := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		reached[id] = true
		todo = append(todo, byID[id].Children...)
	}
	for _, n := range s.Nodes {
		if !reached[n.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "node %q is not reachable from root %q", n.ID, s.Root)
		}
	}
	return nil
}

// Origin returns the root offset.
func (s *Scene) Origin() geom.Offset2 { return geom.Offset2(s.Offset) }

// Node returns the node with the given id.
func (s *Scene) Node(id string) (Node, bool) {
	i := slices.IndexFunc(s.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return Node{}, false
	}
	return s.Nodes[i], true
}

// Build creates the tree and stacking policy described by a validated scene.
func (s *Scene) Build() (*tree.Tree[string], *stack.Policy[string, geom.Offset2, geom.Size2], error) {
	t := tree.New(s.Root)
	p := stack.New[string, geom.Offset2, geom.Size2]()

	byID := s.index()
	queue := []string{s.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := byID[id]
		p.Set(id, n.Spec())
		if _, err := t.SetChildren(id, n.Children); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "build %q", id)
		}
		queue = append(queue, n.Children...)
	}
	return t, p, nil
}

func (s *Scene) index() map[string]Node {
	m := make(map[string]Node, len(s.Nodes))
	for _, n := range s.Nodes {
		m[n.ID] = n
	}
	return m
}

// Diff returns, sorted, the identities an engine laid out from old must
// mark pending to catch up with next: nodes whose spec or child list
// changed, and nodes that were removed. Added nodes are reached through
// their parent's changed child list. A changed root cannot be expressed as
// pending nodes; callers must start a new engine in that case.
func Diff(old, next *Scene) []string {
	before, after := old.index(), next.index()

	var ids []string
	for id, n := range after {
		prev, ok := before[id]
		if !ok {
			continue
		}
		if prev.Spec() != n.Spec() || !slices.Equal(prev.Children, n.Children) {
			ids = append(ids, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
