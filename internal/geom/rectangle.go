// Package geom provides the 2-D bounding-rectangle and GeoJSON geometry
// primitives the R-tree is built on.
package geom

import "fmt"

// Rectangle is an axis-aligned minimum bounding rectangle: min/max corners
// with min[0] <= max[0] and min[1] <= max[1] on both axes.
type Rectangle struct {
	Min [2]float64
	Max [2]float64
}

// NewRectangle builds a Rectangle, normalizing reversed bounds so that
// callers never have to sort min/max themselves.
func NewRectangle(xmin, ymin, xmax, ymax float64) Rectangle {
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return Rectangle{Min: [2]float64{xmin, ymin}, Max: [2]float64{xmax, ymax}}
}

// PointRectangle returns a zero-area rectangle at (x, y).
func PointRectangle(x, y float64) Rectangle {
	return Rectangle{Min: [2]float64{x, y}, Max: [2]float64{x, y}}
}

// Area returns the rectangle's area (zero for a degenerate point rectangle).
func (r Rectangle) Area() float64 {
	return (r.Max[0] - r.Min[0]) * (r.Max[1] - r.Min[1])
}

// Union returns the smallest rectangle containing both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	return Rectangle{
		Min: [2]float64{min(r.Min[0], other.Min[0]), min(r.Min[1], other.Min[1])},
		Max: [2]float64{max(r.Max[0], other.Max[0]), max(r.Max[1], other.Max[1])},
	}
}

// Intersects reports whether r and other overlap on both axes (touching
// edges count as intersecting).
func (r Rectangle) Intersects(other Rectangle) bool {
	return r.Min[0] <= other.Max[0] && r.Max[0] >= other.Min[0] &&
		r.Min[1] <= other.Max[1] && r.Max[1] >= other.Min[1]
}

// Contains reports whether r fully contains other.
func (r Rectangle) Contains(other Rectangle) bool {
	return r.Min[0] <= other.Min[0] && r.Min[1] <= other.Min[1] &&
		r.Max[0] >= other.Max[0] && r.Max[1] >= other.Max[1]
}

// ContainsPoint reports whether (x, y) lies within r, inclusive of edges.
func (r Rectangle) ContainsPoint(x, y float64) bool {
	return r.Min[0] <= x && x <= r.Max[0] && r.Min[1] <= y && y <= r.Max[1]
}

// Enlargement is the additional area needed to grow r so it also contains
// other: union(r, other).Area() - r.Area(). Used by ChooseLeaf and PickNext.
func (r Rectangle) Enlargement(other Rectangle) float64 {
	return r.Union(other).Area() - r.Area()
}

// ClampPoint projects (x, y) onto the closest point of r — itself if (x, y)
// already lies inside.
func (r Rectangle) ClampPoint(x, y float64) (float64, float64) {
	return clamp(x, r.Min[0], r.Max[0]), clamp(y, r.Min[1], r.Max[1])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[(%g,%g)-(%g,%g)]", r.Min[0], r.Min[1], r.Max[0], r.Max[1])
}
