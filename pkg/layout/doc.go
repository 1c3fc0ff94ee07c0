// Package layout implements an incremental layout engine for trees whose
// node sizes depend on their children and whose positions depend on their
// parents.
//
// # Overview
//
// The engine keeps a cache of the last rectangle it computed for every node.
// Callers record which nodes were edited with [Engine.MarkPending] and later
// run a generation with [Engine.Recompute]. A generation only visits the
// region whose geometry could have changed, yet always produces exactly the
// rectangles a from-scratch layout would produce.
//
// The engine owns neither the tree nor the geometry rules. Both are borrowed
// for the duration of one call:
//
//   - [Topology] answers structural questions (existence, ordered children,
//     parent)
//   - [Policy] measures a node from its children's sizes and positions the
//     children once the node's own offset is known
//
// # Generations
//
// A generation runs in five steps:
//
//  1. Structural refresh: pending nodes that vanished are evicted together
//     with their cached subtree. Surviving ones reload their child lists
//     from the topology.
//  2. Affected closure: every surviving pending node plus its ancestors.
//  3. Affected roots: the topmost nodes of that closure.
//  4. Measure: post-order from each affected root. Clean children that
//     already have a rectangle are not visited; their cached size is reused.
//  5. Place: pre-order from each affected root. Clean subtrees whose offset
//     moved are shifted by the delta instead of being re-placed.
//
// Only rectangles that differ from their cached value are reported in
// [Result.Changed], in the order they were produced.
//
// # Usage
//
//	eng := layout.New[string, geom.Offset2, geom.Size2]("root")
//	eng.MarkPending("root")
//	res := eng.Recompute(tree, policy, geom.Offset2{})
//	for _, c := range res.Changed {
//	    fmt.Println(c.ID, c.Rect)
//	}
//
// The root is marked pending automatically when it has never been laid out
// or when the supplied root offset differs from its cached offset.
//
// # Contract Violations
//
// Recompute never returns an error. A missing root, a topology that reports
// a child which does not exist, or a policy that returns the wrong number of
// child offsets are programming errors: the engine panics with an
// [*errors.Error] carrying ROOT_MISSING, DANGLING_CHILD or
// PLACEMENT_MISMATCH. Use [Recover] at a process boundary to turn such a
// panic back into an error.
//
// A pending node that disappeared before the next generation is not an
// error; it is simply evicted.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Topology and Policy must not be
// mutated from inside the callbacks of a running generation.
package layout
