// Package scene loads declarative descriptions of a layout tree.
//
// A scene names a root, the absolute offset the root is laid out at, and a
// flat list of nodes. A node with a size is a leaf; any other node is a
// container that stacks its children:
//
//	root = "window"
//	offset = [0, 0]
//
//	[[nodes]]
//	id = "window"
//	axis = "vertical"
//	padding = [2, 1, 2, 1]  # left, top, right, bottom
//	spacing = 1
//	children = ["toolbar", "body"]
//
//	[[nodes]]
//	id = "toolbar"
//	size = [80, 3]
//
// Scenes may be written in TOML, YAML or JSON; [Load] picks the decoder from
// the file extension. [Scene.Build] turns a validated scene into a tree and
// a stacking policy, and [Diff] lists the nodes to mark pending when a scene
// file is edited while an engine is running.
package scene
