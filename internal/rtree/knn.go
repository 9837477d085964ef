package rtree

import (
	"container/heap"

	"github.com/kass/spatio/internal/geom"
)

// Neighbor is one KNN result: the item and its distance in meters from the
// query point.
type Neighbor struct {
	Item     Item
	Distance float64
}

// queueEntry is a tagged priority-queue element: either a data entry (a
// leaf-level candidate result) or an internal node (a subtree still to
// expand), ordered by its admissible lower-bound distance.
type queueEntry struct {
	minDistance float64
	node        *Node
	id          string
}

type priorityQueue []queueEntry

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].minDistance < q[j].minDistance }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(queueEntry)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Nearby runs a best-first KNN search from (lon, lat), returning up to k
// items ascending by distance. Admissibility of the rectangle lower bound
// guarantees correctness: the true distance under any subtree can never be
// smaller than point_to_rectangle_distance of its bounding box.
func (t *RTree) Nearby(lon, lat float64, k int) []Neighbor {
	if t.root == nil || k <= 0 {
		return nil
	}

	pq := &priorityQueue{{minDistance: geom.PointToRectangleDistance(lon, lat, t.root.MBR), node: t.root}}
	heap.Init(pq)

	var results []Neighbor

	for pq.Len() > 0 {
		top := (*pq)[0]
		if len(results) >= k && top.minDistance > results[len(results)-1].Distance {
			break
		}
		entry := heap.Pop(pq).(queueEntry)

		if entry.node == nil {
			g := t.geometryByID[entry.id]
			item := Item{ID: entry.id, Geometry: g, GeoJSON: t.geojsonByID[entry.id]}
			results = insertSorted(results, Neighbor{Item: item, Distance: entry.minDistance}, k)
			continue
		}

		for _, e := range entry.node.Entries {
			if entry.node.isLeaf() {
				dist := geom.PointToGeometryDistance(lon, lat, t.geometryByID[e.ID])
				heap.Push(pq, queueEntry{minDistance: dist, id: e.ID})
			} else {
				dist := geom.PointToRectangleDistance(lon, lat, e.Rect())
				heap.Push(pq, queueEntry{minDistance: dist, node: e.Child})
			}
		}
	}

	return results
}

// insertSorted inserts n into results (kept ascending by distance) and
// truncates to k.
func insertSorted(results []Neighbor, n Neighbor, k int) []Neighbor {
	i := 0
	for i < len(results) && results[i].Distance <= n.Distance {
		i++
	}
	results = append(results, Neighbor{})
	copy(results[i+1:], results[i:])
	results[i] = n
	if len(results) > k {
		results = results[:k]
	}
	return results
}
