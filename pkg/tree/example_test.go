package tree_test

import (
	"fmt"

	"github.com/matzehuels/reflow/pkg/tree"
)

func ExampleTree_Move() {
	t := tree.New("window")
	_, _ = t.Append("window", "sidebar")
	_, _ = t.Append("window", "content")
	_, _ = t.Append("sidebar", "logo")

	// Both the old and the new parent changed their child lists.
	touched, _ := t.Move("logo", "content", 0)
	fmt.Println("Touched:", touched)
	fmt.Println("Sidebar:", t.ChildrenOf("sidebar"))
	fmt.Println("Content:", t.ChildrenOf("content"))
	// Output:
	// Touched: [sidebar content]
	// Sidebar: []
	// Content: [logo]
}
