package rtree

import "github.com/kass/spatio/internal/geom"

// Set inserts or overwrites id with the given geometry and raw GeoJSON. An
// existing id is deleted first so the three views — tree, geometry map,
// geojson map — never observe a mix of old and new state.
func (t *RTree) Set(id string, g geom.Geometry, raw string) {
	if t.Has(id) {
		t.Delete(id)
	}
	mbr, err := geom.BoundingRect(g)
	if err != nil {
		return
	}
	t.insert(&Entry{MBR: mbr, ID: id})
	t.geometryByID[id] = g
	t.geojsonByID[id] = raw
}

// insert runs Guttman's algorithm: ChooseLeaf, append, then either overflow
// handling or an upward MBR fixup along the descent path.
func (t *RTree) insert(e *Entry) {
	if t.root == nil {
		t.root = newLeafNode()
		t.root.addEntry(e)
		return
	}

	path := t.chooseLeaf(e.MBR)
	leaf := path[len(path)-1]
	leaf.addEntry(e)

	if leaf.isFull(t.maxEntries) {
		t.handleOverflow(path)
	} else {
		t.adjustMBRsUpward(path)
	}
}

// chooseLeaf descends from the root, at each index level picking the child
// requiring least enlargement to contain mbr, breaking ties by smaller
// current area. Returns the full descent path, root first, leaf last.
func (t *RTree) chooseLeaf(mbr geom.Rectangle) []*Node {
	path := []*Node{t.root}
	node := t.root
	for node.isIndex() {
		best := node.Entries[0]
		bestEnlargement := best.Rect().Enlargement(mbr)
		for _, e := range node.Entries[1:] {
			enl := e.Rect().Enlargement(mbr)
			if enl < bestEnlargement ||
				(enl == bestEnlargement && e.Rect().Area() < best.Rect().Area()) {
				best = e
				bestEnlargement = enl
			}
		}
		node = best.Child
		path = append(path, node)
	}
	return path
}

// adjustMBRsUpward recomputes the MBR of every node on path, innermost
// first, so ancestors reflect descendants after a mutation that didn't
// trigger overflow or restructuring.
func (t *RTree) adjustMBRsUpward(path []*Node) {
	for i := len(path) - 1; i >= 0; i-- {
		path[i].updateMBR()
	}
}
