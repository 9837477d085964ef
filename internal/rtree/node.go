// Package rtree implements a Guttman R-tree over axis-aligned rectangles,
// with quadratic split on overflow and orphan-reinsert on underflow.
package rtree

import "github.com/kass/spatio/internal/geom"

// NodeKind tags whether a Node holds Data entries (Leaf) or Child entries
// pointing at further Nodes (Index).
type NodeKind int

const (
	Leaf NodeKind = iota
	Index
)

// Entry is either a Data entry (id, only valid in a leaf) or a Child entry
// (node, only valid in an index node). Exactly one of ID/Child is set,
// matching which kind of node owns the entry. MBR is authoritative for
// Data entries; for Child entries the authoritative MBR lives on the child
// node itself, so Rect() always reads through to it rather than risking a
// stale cached copy.
type Entry struct {
	MBR   geom.Rectangle
	ID    string
	Child *Node
}

func (e *Entry) isData() bool { return e.Child == nil }

// Rect returns the entry's current bounding rectangle, reading through to
// the child node's live MBR for Child entries.
func (e *Entry) Rect() geom.Rectangle {
	if e.Child != nil {
		return e.Child.MBR
	}
	return e.MBR
}

// Node is a tagged R-tree node: a leaf holds only Data entries at level 0;
// an index node holds only Child entries at level >= 1. A node's MBR is
// always the union of its entries' MBRs, recomputed after every mutation.
type Node struct {
	MBR     geom.Rectangle
	Entries []*Entry
	Kind    NodeKind
	Level   int
}

func newLeafNode() *Node {
	return &Node{Kind: Leaf, Level: 0}
}

func newIndexNode(level int) *Node {
	return &Node{Kind: Index, Level: level}
}

func (n *Node) isLeaf() bool  { return n.Kind == Leaf }
func (n *Node) isIndex() bool { return n.Kind == Index }

// updateMBR recomputes n.MBR as the union of all entry MBRs, or the zero
// rectangle if n has no entries.
func (n *Node) updateMBR() {
	if len(n.Entries) == 0 {
		n.MBR = geom.Rectangle{}
		return
	}
	mbr := n.Entries[0].Rect()
	for _, e := range n.Entries[1:] {
		mbr = mbr.Union(e.Rect())
	}
	n.MBR = mbr
}

func (n *Node) addEntry(e *Entry) {
	n.Entries = append(n.Entries, e)
	n.updateMBR()
}

func (n *Node) isFull(maxEntries int) bool {
	return len(n.Entries) > maxEntries
}

func (n *Node) needsMoreEntries(minEntries int) bool {
	return len(n.Entries) < minEntries
}

// removeEntryAt removes the entry at index i, preserving neither a
// particular order nor the underlying slice's identity.
func (n *Node) removeEntryAt(i int) {
	n.Entries = append(n.Entries[:i], n.Entries[i+1:]...)
	n.updateMBR()
}
