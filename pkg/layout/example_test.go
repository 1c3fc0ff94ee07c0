package layout_test

import (
	"fmt"

	"github.com/matzehuels/reflow/pkg/geom"
	"github.com/matzehuels/reflow/pkg/layout"
	"github.com/matzehuels/reflow/pkg/stack"
	"github.com/matzehuels/reflow/pkg/tree"
)

func ExampleEngine_Recompute() {
	// A toolbar with two buttons side by side.
	t := tree.New("toolbar")
	_, _ = t.Append("toolbar", "open")
	_, _ = t.Append("toolbar", "save")

	p := stack.New[string, geom.Offset2, geom.Size2]()
	p.SetSpacing("toolbar", 2)
	p.SetLeaf("open", geom.Size2{10, 4})
	p.SetLeaf("save", geom.Size2{8, 4})

	eng := layout.New[string, geom.Offset2, geom.Size2]("toolbar")
	for _, c := range eng.Recompute(t, p, geom.Offset2{}).Changed {
		fmt.Println(c.ID, c.Rect)
	}

	// Widening the first button moves the second one; nothing else is
	// reported.
	p.SetLeaf("open", geom.Size2{12, 4})
	eng.MarkPending("open")
	fmt.Println("--")
	for _, c := range eng.Recompute(t, p, geom.Offset2{}).Changed {
		fmt.Println(c.ID, c.Rect)
	}
	// Output:
	// toolbar 20x4@(0,0)
	// open 10x4@(0,0)
	// save 8x4@(12,0)
	// --
	// toolbar 22x4@(0,0)
	// open 12x4@(0,0)
	// save 8x4@(14,0)
}
