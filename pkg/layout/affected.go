package layout

// collectAffected adds every surviving pending id and its ancestors to the
// affected set. Climbing stops at the first ancestor already present.
func (p *pass[ID, O, S]) collectAffected(pending []ID) {
	for _, id := range pending {
		for p.affected.add(id) {
			parent, ok := p.topo.ParentOf(id)
			if !ok {
				break
			}
			id = parent
		}
	}
}

// affectedRoots returns the affected nodes whose parent is absent or not
// affected, in the order they joined the set.
func (p *pass[ID, O, S]) affectedRoots() []ID {
	var roots []ID
	for _, id := range p.affected.order {
		parent, ok := p.topo.ParentOf(id)
		if !ok || !p.affected.has(parent) {
			roots = append(roots, id)
		}
	}
	return roots
}
