package io

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/reflow/pkg/errors"
	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/session"
	"github.com/matzehuels/reflow/pkg/stack"
)

func runSession(t *testing.T) (*session.Session, []session.Result) {
	t.Helper()
	sess := session.New("root")
	_ = sess.Insert("root", "a", -1, stack.Leaf(geom.Size2{4, 2}))
	_ = sess.Insert("root", "b", -1, stack.Leaf(geom.Size2{3, 5}))
	first, err := sess.Recompute()
	if err != nil {
		t.Fatal(err)
	}
	_ = sess.Resize("a", geom.Size2{6, 2})
	second, err := sess.Recompute()
	if err != nil {
		t.Fatal(err)
	}
	return sess, []session.Result{first, second}
}

func TestNewSnapshot(t *testing.T) {
	sess, results := runSession(t)
	s := NewSnapshot(sess, results)

	if s.Root != "root" || s.Generation != 2 {
		t.Errorf("Root = %q, Generation = %d", s.Root, s.Generation)
	}
	if len(s.Rects) != 3 || s.Rects[0].ID != "a" {
		t.Errorf("Rects = %v", s.Rects)
	}
	if len(s.Changed) != 2 || s.Changed[1].Generation != 2 || len(s.Changed[1].Rects) != 3 {
		t.Errorf("Changed = %+v", s.Changed)
	}
	b, ok := s.Rect("b")
	if !ok || b.Offset != (geom.Offset2{6, 0}) {
		t.Errorf("Rect(b) = %+v, %v", b, ok)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	sess, results := runSession(t)
	s := NewSnapshot(sess, results)

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	var a, b bytes.Buffer
	_ = WriteJSON(s, &a)
	_ = WriteJSON(got, &b)
	if a.String() != b.String() {
		t.Errorf("round trip changed the snapshot:\n%s\n---\n%s", a.String(), b.String())
	}
	if !strings.Contains(a.String(), `"offset": [`) {
		t.Errorf("offsets should encode as arrays:\n%s", a.String())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"root": `},
		{"no root", `{"rects": []}`},
		{"empty id", `{"root": "r", "rects": [{"id": ""}]}`},
		{"duplicate id", `{"root": "r", "rects": [{"id": "a"}, {"id": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadJSON() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBounds(t *testing.T) {
	s := &Snapshot{Rects: []Rect{
		{ID: "a", Offset: geom.Offset2{-2, 1}, Size: geom.Size2{3, 3}},
		{ID: "b", Offset: geom.Offset2{4, -1}, Size: geom.Size2{2, 2}},
	}}
	want := geom.NewRect(geom.Offset2{-2, -1}, geom.Size2{8, 5})
	if got := s.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := (&Snapshot{}).Bounds(); got != (session.Rect{}) {
		t.Errorf("empty Bounds() = %v", got)
	}
}

func TestSnapshotParents(t *testing.T) {
	sess, results := runSession(t)
	s := NewSnapshot(sess, results)

	root, _ := s.Rect("root")
	a, _ := s.Rect("a")
	if root.Parent != "" || a.Parent != "root" {
		t.Errorf("parents = %q, %q", root.Parent, a.Parent)
	}
	if d := s.Depth("a"); d != 1 {
		t.Errorf("Depth(a) = %d, want 1", d)
	}
	if d := s.Depth("root"); d != 0 {
		t.Errorf("Depth(root) = %d, want 0", d)
	}
	for _, r := range s.Changed[0].Rects {
		if r.Parent != "" {
			t.Errorf("changed rect %s carries a parent", r.ID)
		}
	}
}

func TestSnapshotDepths(t *testing.T) {
	// A chain listed leaf first, so every depth is filled in from below.
	const n = 200
	s := &Snapshot{}
	for i := n - 1; i >= 0; i-- {
		r := Rect{ID: fmt.Sprintf("n%d", i)}
		if i > 0 {
			r.Parent = fmt.Sprintf("n%d", i-1)
		}
		s.Rects = append(s.Rects, r)
	}

	depths := s.Depths()
	for i := range n {
		id := fmt.Sprintf("n%d", i)
		if depths[id] != i {
			t.Fatalf("Depths()[%s] = %d, want %d", id, depths[id], i)
		}
		if d := s.Depth(id); d != i {
			t.Fatalf("Depth(%s) = %d, want %d", id, d, i)
		}
	}

	cyclic := &Snapshot{Rects: []Rect{{ID: "a", Parent: "b"}, {ID: "b", Parent: "a"}}}
	if d := cyclic.Depths(); len(d) != 2 {
		t.Errorf("cyclic Depths() = %v", d)
	}
}
