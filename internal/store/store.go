// Package store implements the two-level concurrent collection store:
// an outer guard over the collection-name map, and a per-collection inner
// guard over its R-tree and secondary maps, with lazy collection creation
// under double-checked locking.
package store

import (
	"sort"
	"sync"

	"github.com/kass/spatio/internal/geom"
	"github.com/kass/spatio/internal/rtree"
)

const defaultMaxEntries = 16

// guardedRTree pairs an R-tree with the lock that serializes access to it.
// Readers hold RLock; every mutation holds Lock for the duration of the
// tree update and its secondary-map bookkeeping, so observers under RLock
// never see the tree and maps disagree.
type guardedRTree struct {
	mu   sync.RWMutex
	tree *rtree.RTree
}

// Store is the outer collection-name → guarded-R-tree map. The outer guard
// is held only long enough to look up or insert a collection handle; it is
// never held across R-tree work.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*guardedRTree
	maxEntries  int
}

// New constructs an empty Store. maxEntries configures every collection's
// R-tree fan-out (M); if <= 0, defaultMaxEntries is used.
func New(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Store{
		collections: make(map[string]*guardedRTree),
		maxEntries:  maxEntries,
	}
}

// getOrCreateCollection implements double-checked locking: an outer read
// lock first, then (on miss) an outer write lock with a re-check, so
// concurrent writers racing to create the same collection converge on one
// instance.
func (s *Store) getOrCreateCollection(name string) *guardedRTree {
	s.mu.RLock()
	g, ok := s.collections[name]
	s.mu.RUnlock()
	if ok {
		return g
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.collections[name]; ok {
		return g
	}
	g = &guardedRTree{tree: rtree.New(s.maxEntries)}
	s.collections[name] = g
	return g
}

func (s *Store) lookupCollection(name string) (*guardedRTree, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.collections[name]
	return g, ok
}

// Set stores id under geojson in collection, parsing it first. A geometry
// with no coordinates is rejected with geom.ErrEmptyGeometry, leaving any
// existing item in place. Creates the collection on first use. The overwrite (tree mutation + secondary map
// updates) happens inside a single write-lock critical section.
func (s *Store) Set(collection, id, rawGeoJSON string) error {
	g, err := geom.ParseGeoJSON(rawGeoJSON)
	if err != nil {
		return err
	}
	if _, err := geom.BoundingRect(g); err != nil {
		return err
	}
	handle := s.getOrCreateCollection(collection)
	handle.mu.Lock()
	defer handle.mu.Unlock()
	handle.tree.Set(id, g, rawGeoJSON)
	return nil
}

// Item is a read-only snapshot of one stored entry.
type Item = rtree.Item

// Get returns a snapshot of the item stored under id in collection, if any.
func (s *Store) Get(collection, id string) (Item, bool) {
	handle, ok := s.lookupCollection(collection)
	if !ok {
		return Item{}, false
	}
	handle.mu.RLock()
	defer handle.mu.RUnlock()
	return handle.tree.Get(id)
}

// Delete removes id from collection. Returns true iff an entry was
// actually removed; it is idempotent — deleting twice is safe.
func (s *Store) Delete(collection, id string) bool {
	handle, ok := s.lookupCollection(collection)
	if !ok {
		return false
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	return handle.tree.Delete(id)
}

// Intersects returns every item in collection whose stored geometry
// exactly intersects queryGeom, up to limit (0 = unlimited). A missing
// collection returns (nil, nil), matching a nil-Array response.
func (s *Store) Intersects(collection string, queryGeom geom.Geometry, limit int) ([]Item, error) {
	handle, ok := s.lookupCollection(collection)
	if !ok {
		return nil, nil
	}
	handle.mu.RLock()
	defer handle.mu.RUnlock()
	return handle.tree.Intersects(queryGeom, limit)
}

// Nearby returns up to k items in collection nearest (lon, lat), ascending
// by distance. A missing collection returns nil.
func (s *Store) Nearby(collection string, lon, lat float64, k int) []rtree.Neighbor {
	handle, ok := s.lookupCollection(collection)
	if !ok {
		return nil
	}
	handle.mu.RLock()
	defer handle.mu.RUnlock()
	return handle.tree.Nearby(lon, lat, k)
}

// DropCollection removes collection entirely, returning the number of
// items it held (0 if it did not exist).
func (s *Store) DropCollection(collection string) int {
	s.mu.Lock()
	handle, ok := s.collections[collection]
	if ok {
		delete(s.collections, collection)
	}
	s.mu.Unlock()
	if !ok {
		return 0
	}
	handle.mu.RLock()
	defer handle.mu.RUnlock()
	return handle.tree.Len()
}

// CollectionNames returns every currently existing collection name, sorted
// for deterministic output (the R-tree traversal order is not, but the
// collection list is a small convenience surface worth making stable).
func (s *Store) CollectionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats reports aggregate counters across the whole store.
type Stats struct {
	Collections int
	TotalItems  int
}

// Stats computes collection and item counts. It takes the outer read lock
// to snapshot the collection set, then briefly reads each collection's
// size independently; the total is a best-effort snapshot, not a single
// atomic point-in-time view across collections (consistent with there
// being no ordering guarantee across collections).
func (s *Store) Stats() Stats {
	s.mu.RLock()
	handles := make([]*guardedRTree, 0, len(s.collections))
	for _, h := range s.collections {
		handles = append(handles, h)
	}
	s.mu.RUnlock()

	total := 0
	for _, h := range handles {
		h.mu.RLock()
		total += h.tree.Len()
		h.mu.RUnlock()
	}
	return Stats{Collections: len(handles), TotalItems: total}
}
