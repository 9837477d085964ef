package rtree

import "github.com/kass/spatio/internal/geom"

// handleOverflow is called after an entry was appended to the last node on
// path, pushing it past maxEntries. path's last element is the overflowing
// node; earlier elements are its ancestors, root first.
func (t *RTree) handleOverflow(path []*Node) {
	if len(path) == 1 {
		t.handleRootOverflow(path[0])
		return
	}
	t.splitAndPropagate(path)
}

// handleRootOverflow splits the root's entries into two groups, wraps each
// in a new node of the same kind/level as the old root, and builds a new
// index root one level up referencing both.
func (t *RTree) handleRootOverflow(root *Node) {
	groupA, groupB := quadraticSplit(root.Entries, t.minEntries)

	nodeA := &Node{Kind: root.Kind, Level: root.Level, Entries: groupA}
	nodeA.updateMBR()
	nodeB := &Node{Kind: root.Kind, Level: root.Level, Entries: groupB}
	nodeB.updateMBR()

	newRoot := newIndexNode(root.Level + 1)
	newRoot.addEntry(&Entry{Child: nodeA})
	newRoot.addEntry(&Entry{Child: nodeB})
	t.root = newRoot
}

// splitAndPropagate splits a non-root overflowing node, keeps group 1 in
// place, attaches group 2 as a new sibling entry on the parent, and
// recurses upward if that overflows the parent in turn.
func (t *RTree) splitAndPropagate(path []*Node) {
	node := path[len(path)-1]
	parent := path[len(path)-2]

	groupA, groupB := quadraticSplit(node.Entries, t.minEntries)

	node.Entries = groupA
	node.updateMBR()

	sibling := &Node{Kind: node.Kind, Level: node.Level, Entries: groupB}
	sibling.updateMBR()

	// node is already referenced by an existing entry on parent; that
	// entry's Rect() reads through to node.MBR automatically, so only the
	// new sibling needs a new entry.
	parent.addEntry(&Entry{Child: sibling})

	ancestors := path[:len(path)-1]
	if parent.isFull(t.maxEntries) {
		t.handleOverflow(ancestors)
	} else {
		t.adjustMBRsUpward(ancestors)
	}
}

// quadraticSplit implements Guttman's quadratic-cost split: PickSeeds picks
// the two maximally wasteful entries as initial groups, then PickNext
// repeatedly assigns the remaining entry with the strongest group
// preference, forcing the rest into whichever group needs to hit minEntries
// once the other reaches total-minEntries.
func quadraticSplit(entries []*Entry, minEntries int) ([]*Entry, []*Entry) {
	seedI, seedJ := pickSeeds(entries)

	remaining := make([]*Entry, 0, len(entries)-2)
	for i, e := range entries {
		if i != seedI && i != seedJ {
			remaining = append(remaining, e)
		}
	}

	groupA := []*Entry{entries[seedI]}
	groupB := []*Entry{entries[seedJ]}
	mbrA := entries[seedI].Rect()
	mbrB := entries[seedJ].Rect()
	total := len(entries)

	for len(remaining) > 0 {
		if len(groupA) == total-minEntries {
			groupB = append(groupB, remaining...)
			remaining = nil
			break
		}
		if len(groupB) == total-minEntries {
			groupA = append(groupA, remaining...)
			remaining = nil
			break
		}

		idx := pickNext(remaining, mbrA, mbrB)
		entry := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)

		enlA := mbrA.Enlargement(entry.Rect())
		enlB := mbrB.Enlargement(entry.Rect())

		assignToA := enlA < enlB
		if enlA == enlB {
			areaA, areaB := mbrA.Area(), mbrB.Area()
			switch {
			case areaA != areaB:
				assignToA = areaA < areaB
			case len(groupA) != len(groupB):
				assignToA = len(groupA) < len(groupB)
			default:
				assignToA = true
			}
		}

		if assignToA {
			groupA = append(groupA, entry)
			mbrA = mbrA.Union(entry.Rect())
		} else {
			groupB = append(groupB, entry)
			mbrB = mbrB.Union(entry.Rect())
		}
	}

	return groupA, groupB
}

// pickSeeds chooses the pair of entries maximizing the dead space of
// pairing them together: area(union(i,j)) - area(i) - area(j).
func pickSeeds(entries []*Entry) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			ri, rj := entries[i].Rect(), entries[j].Rect()
			waste := ri.Union(rj).Area() - ri.Area() - rj.Area()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

// pickNext returns the index within remaining of the entry with the
// largest absolute difference between the enlargement each group would
// need to absorb it — the entry with the strongest preference either way.
func pickNext(remaining []*Entry, mbrA, mbrB geom.Rectangle) int {
	bestIdx := 0
	bestDiff := -1.0
	for i, e := range remaining {
		enlA := mbrA.Enlargement(e.Rect())
		enlB := mbrB.Enlargement(e.Rect())
		diff := enlA - enlB
		if diff < 0 {
			diff = -diff
		}
		if diff > bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}
	return bestIdx
}
