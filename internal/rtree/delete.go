package rtree

import "github.com/kass/spatio/internal/geom"

// Delete removes id, if present. It is idempotent: deleting an absent id
// is a no-op that reports false. Returns true iff an entry was removed.
func (t *RTree) Delete(id string) bool {
	g, ok := t.geometryByID[id]
	if !ok {
		return false
	}
	mbr, err := geom.BoundingRect(g)
	if err != nil {
		delete(t.geometryByID, id)
		delete(t.geojsonByID, id)
		return true
	}

	t.delete(mbr, id)
	delete(t.geometryByID, id)
	delete(t.geojsonByID, id)
	return true
}

// delete runs the orphan-reinsert deletion algorithm: find the leaf,
// remove the matching entry, handle underflow by salvaging and reinserting
// the leaf's remaining entries, then shorten the tree.
func (t *RTree) delete(mbr geom.Rectangle, id string) {
	if t.root == nil {
		return
	}

	path, idx := t.findLeaf(mbr, id)
	if path == nil {
		return
	}

	leaf := path[len(path)-1]
	leaf.removeEntryAt(idx)

	if len(path) > 1 && leaf.needsMoreEntries(t.minEntries) {
		t.handleLeafUnderflow(path)
	} else {
		t.adjustMBRsUpward(path)
	}

	t.shortenTree()
}

// findLeaf descends from the root considering only children whose MBR
// contains the target rectangle, and returns the path to the leaf holding
// a matching (mbr, id) entry plus that entry's index, or (nil, 0) if no
// such entry exists.
func (t *RTree) findLeaf(mbr geom.Rectangle, id string) ([]*Node, int) {
	return findLeafRecursive([]*Node{t.root}, mbr, id)
}

func findLeafRecursive(path []*Node, mbr geom.Rectangle, id string) ([]*Node, int) {
	node := path[len(path)-1]
	if node.isLeaf() {
		for i, e := range node.Entries {
			if e.ID == id && e.MBR == mbr {
				return path, i
			}
		}
		return nil, 0
	}
	for _, e := range node.Entries {
		if !e.Rect().Contains(mbr) {
			continue
		}
		if found, i := findLeafRecursive(append(path, e.Child), mbr, id); found != nil {
			return found, i
		}
	}
	return nil, 0
}

// handleLeafUnderflow removes the underfull leaf from its parent, collects
// its remaining entries as orphans, repairs the tree shape (recursing into
// empty-index-node removal if needed), then reinserts every orphan through
// the normal insert path.
func (t *RTree) handleLeafUnderflow(path []*Node) {
	leaf := path[len(path)-1]
	parent := path[len(path)-2]

	orphans := leaf.Entries

	leafIdx := -1
	for i, e := range parent.Entries {
		if e.Child == leaf {
			leafIdx = i
			break
		}
	}
	if leafIdx >= 0 {
		parent.removeEntryAt(leafIdx)
	}

	ancestors := path[:len(path)-1]
	if parent.isIndex() && len(parent.Entries) == 0 {
		t.removeEmptyNodes(ancestors)
	} else {
		t.adjustMBRsUpward(ancestors)
	}

	for _, orphan := range orphans {
		t.insert(orphan)
	}
}

// removeEmptyNodes recursively removes empty index nodes bottom-up along
// path. If the root itself becomes empty, the tree is cleared.
func (t *RTree) removeEmptyNodes(path []*Node) {
	node := path[len(path)-1]
	if len(path) == 1 {
		if len(node.Entries) == 0 {
			t.root = nil
		}
		return
	}

	parent := path[len(path)-2]
	if len(node.Entries) > 0 {
		t.adjustMBRsUpward(path)
		return
	}

	idx := -1
	for i, e := range parent.Entries {
		if e.Child == node {
			idx = i
			break
		}
	}
	if idx >= 0 {
		parent.removeEntryAt(idx)
	}

	ancestors := path[:len(path)-1]
	if parent.isIndex() && len(parent.Entries) == 0 {
		t.removeEmptyNodes(ancestors)
	} else {
		t.adjustMBRsUpward(ancestors)
	}
}

// shortenTree promotes the sole child of a single-entry index root,
// repeatedly, and clears the tree if the root ends up with zero entries.
func (t *RTree) shortenTree() {
	for t.root != nil && t.root.isIndex() && len(t.root.Entries) == 1 {
		t.root = t.root.Entries[0].Child
	}
	if t.root != nil && len(t.root.Entries) == 0 {
		t.root = nil
	}
}
