package rtree

import "github.com/kass/spatio/internal/geom"

// Intersects performs a two-stage range search: MBR overlap prunes the
// traversal, then the stored geometry is checked against queryGeom exactly.
// limit caps the result count (0 = unlimited); order is whatever the
// traversal produces.
func (t *RTree) Intersects(queryGeom geom.Geometry, limit int) ([]Item, error) {
	queryBox, err := geom.BoundingRect(queryGeom)
	if err != nil {
		return nil, err
	}
	if t.root == nil {
		return nil, nil
	}

	var results []Item
	t.searchNode(t.root, queryBox, queryGeom, limit, &results)
	return results, nil
}

func (t *RTree) searchNode(n *Node, queryBox geom.Rectangle, queryGeom geom.Geometry, limit int, results *[]Item) bool {
	for _, e := range n.Entries {
		if !e.Rect().Intersects(queryBox) {
			continue
		}
		if n.isLeaf() {
			g := t.geometryByID[e.ID]
			if geom.Intersects(g, queryGeom) {
				*results = append(*results, Item{ID: e.ID, Geometry: g, GeoJSON: t.geojsonByID[e.ID]})
				if limit > 0 && len(*results) >= limit {
					return true
				}
			}
			continue
		}
		if t.searchNode(e.Child, queryBox, queryGeom, limit, results) {
			return true
		}
	}
	return false
}
