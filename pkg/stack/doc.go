// Package stack implements a layout policy that stacks children along one
// axis, the way toolbars, sidebars and panel groups are arranged.
//
// Every node is described by a [Spec]:
//
//   - a leaf has an intrinsic size and ignores its children
//   - a container stacks its children along [Spec.Axis], separated by
//     [Spec.Spacing] and surrounded by [Spec.Padding]
//
// Nodes without a spec behave like a horizontal container with no padding
// and no spacing.
//
// The setters on [Policy] report whether the spec actually changed. A caller
// driving an incremental engine marks the node pending only when it did.
package stack
