// Package pkg provides the libraries behind reflow, an incremental layout
// engine for trees of nested boxes.
//
// # Overview
//
// A node's size depends on its children and its position depends on its
// parent. After an edit, reflow recomputes only the part of the tree whose
// geometry could have changed and reports exactly the rectangles that
// differ. The pkg directory is organized into four areas:
//
//  1. Engine: [geom], [layout], [tree] and [stack]
//  2. Editing: [scene], [script] and [session]
//  3. Output: [io] and [render]
//  4. Orchestration: [pipeline], [cache] and [observability]
//
// # Architecture
//
// The typical data flow through reflow:
//
//	Scene file (TOML, YAML, JSON) + edit script
//	         ↓
//	    [scene] package (parse, validate, build the tree and policy)
//	         ↓
//	    [session] package (apply edits, mark nodes pending)
//	         ↓
//	    [layout] package (one generation per recompute)
//	         ↓
//	    [io] snapshot → [render] SVG/DOT/PNG/PDF
//
// # Quick Start
//
//	sc, _ := scene.Load("window.toml")
//	sess, _ := session.FromScene(sc)
//	res, _ := sess.Recompute()
//	for _, c := range res.Changed {
//	    fmt.Println(c.ID, c.Rect)
//	}
//
// The engine in [layout] is generic over identity, offset and size types and
// does not depend on any other package here except [geom], [errors] and
// [observability].
//
// [geom]: github.com/matzehuels/reflow/pkg/geom
// [layout]: github.com/matzehuels/reflow/pkg/layout
// [tree]: github.com/matzehuels/reflow/pkg/tree
// [stack]: github.com/matzehuels/reflow/pkg/stack
// [scene]: github.com/matzehuels/reflow/pkg/scene
// [script]: github.com/matzehuels/reflow/pkg/script
// [session]: github.com/matzehuels/reflow/pkg/session
// [io]: github.com/matzehuels/reflow/pkg/io
// [render]: github.com/matzehuels/reflow/pkg/render
// [pipeline]: github.com/matzehuels/reflow/pkg/pipeline
// [cache]: github.com/matzehuels/reflow/pkg/cache
// [observability]: github.com/matzehuels/reflow/pkg/observability
// [errors]: github.com/matzehuels/reflow/pkg/errors
package pkg
