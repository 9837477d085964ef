package rtree

import "github.com/kass/spatio/internal/geom"

// Item is a point-in-time snapshot of one stored entry: its id, parsed
// geometry, and the exact GeoJSON bytes the client sent.
type Item struct {
	ID       string
	Geometry geom.Geometry
	GeoJSON  string
}

// RTree is a Guttman R-tree with max/min fan-out M and m = M/2, plus the
// two secondary maps that let range search and GET avoid re-parsing and
// re-serializing stored geometries.
type RTree struct {
	root *Node
	maxEntries int
	minEntries int

	geometryByID map[string]geom.Geometry
	geojsonByID  map[string]string
}

// New constructs an empty R-tree with the given max fan-out. M must be >= 2;
// min fan-out is M/2.
func New(maxEntries int) *RTree {
	if maxEntries < 2 {
		maxEntries = 2
	}
	return &RTree{
		maxEntries:   maxEntries,
		minEntries:   maxEntries / 2,
		geometryByID: make(map[string]geom.Geometry),
		geojsonByID:  make(map[string]string),
	}
}

// Len returns the number of indexed items.
func (t *RTree) Len() int {
	return len(t.geometryByID)
}

// Get returns the stored item for id, if present.
func (t *RTree) Get(id string) (Item, bool) {
	g, ok := t.geometryByID[id]
	if !ok {
		return Item{}, false
	}
	return Item{ID: id, Geometry: g, GeoJSON: t.geojsonByID[id]}, true
}

// Has reports whether id is currently indexed.
func (t *RTree) Has(id string) bool {
	_, ok := t.geometryByID[id]
	return ok
}

// Ids returns every currently indexed id, in no particular order.
func (t *RTree) Ids() []string {
	ids := make([]string, 0, len(t.geometryByID))
	for id := range t.geometryByID {
		ids = append(ids, id)
	}
	return ids
}
