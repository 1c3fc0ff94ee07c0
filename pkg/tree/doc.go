// Package tree provides an ordered, mutable tree of identities that serves as
// the topology of a layout engine.
//
// # Overview
//
// A [Tree] has a fixed root. Every other node is either attached under
// exactly one parent or detached. Child order is significant: it is the
// order in which a layout policy receives child sizes.
//
// # Mutation and Pending Nodes
//
// Every mutating method returns the identities whose child lists changed.
// Those are exactly the nodes a layout engine must mark pending:
//
//	touched, err := t.Move("button", "toolbar", 0)
//	if err != nil {
//	    return err
//	}
//	for _, id := range touched {
//	    eng.MarkPending(id)
//	}
//
// Nodes created by [Tree.Append] or [Tree.InsertAt] need not be marked
// themselves; refreshing their parent reaches them.
//
// # Errors
//
// Operations return [ErrUnknownNode], [ErrDuplicateNode], [ErrCycle],
// [ErrRootImmutable] or [ErrIndexOutOfRange], wrapped with the offending
// identity. Use errors.Is to test for them.
package tree
