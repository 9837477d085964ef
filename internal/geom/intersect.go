package geom

import "math"

// Intersects reports whether a and b overlap using exact planar predicates,
// not just bounding-rectangle overlap.
func Intersects(a, b Geometry) bool {
	switch a.Kind {
	case KindPoint:
		return geometryContainsPoint(b, a.Point) || pointTouchesGeometry(a.Point, b)
	case KindLineString:
		return lineIntersectsGeometry(a.Line, b)
	case KindPolygon:
		return polygonIntersectsGeometry(a.Polygon, b)
	case KindMultiPoint:
		for _, p := range a.MultiPoint {
			if Intersects(Geometry{Kind: KindPoint, Point: p}, b) {
				return true
			}
		}
		return false
	case KindMultiLineString:
		for _, l := range a.MultiLineString {
			if lineIntersectsGeometry(l, b) {
				return true
			}
		}
		return false
	case KindMultiPolygon:
		for _, p := range a.MultiPolygon {
			if polygonIntersectsGeometry(p, b) {
				return true
			}
		}
		return false
	case KindGeometryCollection:
		for _, child := range a.Collection {
			if Intersects(child, b) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func pointTouchesGeometry(p Coord, g Geometry) bool {
	switch g.Kind {
	case KindPoint:
		return p == g.Point
	case KindLineString:
		return pointOnPolyline(p, g.Line)
	case KindMultiPoint:
		for _, q := range g.MultiPoint {
			if p == q {
				return true
			}
		}
		return false
	case KindMultiLineString:
		for _, l := range g.MultiLineString {
			if pointOnPolyline(p, l) {
				return true
			}
		}
		return false
	case KindGeometryCollection:
		for _, child := range g.Collection {
			if pointTouchesGeometry(p, child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func geometryContainsPoint(g Geometry, p Coord) bool {
	switch g.Kind {
	case KindPolygon:
		return polygonContainsPoint(g.Polygon, p)
	case KindMultiPolygon:
		for _, poly := range g.MultiPolygon {
			if polygonContainsPoint(poly, p) {
				return true
			}
		}
		return false
	case KindGeometryCollection:
		for _, child := range g.Collection {
			if geometryContainsPoint(child, p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func lineIntersectsGeometry(line []Coord, b Geometry) bool {
	switch b.Kind {
	case KindPoint:
		return pointOnPolyline(b.Point, line)
	case KindLineString:
		return polylineIntersectsPolyline(line, b.Line)
	case KindPolygon:
		return polylineIntersectsPolygon(line, b.Polygon)
	case KindMultiPoint:
		for _, p := range b.MultiPoint {
			if pointOnPolyline(p, line) {
				return true
			}
		}
		return false
	case KindMultiLineString:
		for _, l := range b.MultiLineString {
			if polylineIntersectsPolyline(line, l) {
				return true
			}
		}
		return false
	case KindMultiPolygon:
		for _, p := range b.MultiPolygon {
			if polylineIntersectsPolygon(line, p) {
				return true
			}
		}
		return false
	case KindGeometryCollection:
		for _, child := range b.Collection {
			if lineIntersectsGeometry(line, child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func polygonIntersectsGeometry(poly Polygon, b Geometry) bool {
	switch b.Kind {
	case KindPoint:
		return polygonContainsPoint(poly, b.Point)
	case KindLineString:
		return polylineIntersectsPolygon(b.Line, poly)
	case KindPolygon:
		return polygonIntersectsPolygon(poly, b.Polygon)
	case KindMultiPoint:
		for _, p := range b.MultiPoint {
			if polygonContainsPoint(poly, p) {
				return true
			}
		}
		return false
	case KindMultiLineString:
		for _, l := range b.MultiLineString {
			if polylineIntersectsPolygon(l, poly) {
				return true
			}
		}
		return false
	case KindMultiPolygon:
		for _, p := range b.MultiPolygon {
			if polygonIntersectsPolygon(poly, p) {
				return true
			}
		}
		return false
	case KindGeometryCollection:
		for _, child := range b.Collection {
			if polygonIntersectsGeometry(poly, child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func polylineIntersectsPolyline(a, b []Coord) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

func polylineIntersectsPolygon(line []Coord, poly Polygon) bool {
	if len(line) > 0 && polygonContainsPoint(poly, line[0]) {
		return true
	}
	if polylineIntersectsRing(line, poly.Exterior) {
		return true
	}
	for _, hole := range poly.Interiors {
		if polylineIntersectsRing(line, hole) {
			return true
		}
	}
	return false
}

func polylineIntersectsRing(line []Coord, ring Ring) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	for i := 0; i+1 < len(line); i++ {
		for j := 0; j < n; j++ {
			k := (j + 1) % n
			if segmentsIntersect(line[i], line[i+1], ring[j], ring[k]) {
				return true
			}
		}
	}
	return false
}

func polygonIntersectsPolygon(a, b Polygon) bool {
	if len(a.Exterior) > 0 && polygonContainsPoint(b, a.Exterior[0]) {
		return true
	}
	if len(b.Exterior) > 0 && polygonContainsPoint(a, b.Exterior[0]) {
		return true
	}
	return ringIntersectsRing(a.Exterior, b.Exterior)
}

func ringIntersectsRing(a, b Ring) bool {
	na, nb := len(a), len(b)
	if na < 2 || nb < 2 {
		return false
	}
	for i := 0; i < na; i++ {
		a2 := (i + 1) % na
		for j := 0; j < nb; j++ {
			b2 := (j + 1) % nb
			if segmentsIntersect(a[i], a[a2], b[j], b[b2]) {
				return true
			}
		}
	}
	return false
}

// pointOnPolyline reports whether p lies on any segment of the polyline.
func pointOnPolyline(p Coord, line []Coord) bool {
	for i := 0; i+1 < len(line); i++ {
		if pointOnSegment(p, line[i], line[i+1]) {
			return true
		}
	}
	return false
}

func pointOnSegment(p, a, b Coord) bool {
	if orientation(a, b, p) != 0 {
		return false
	}
	return p.Lon() >= math.Min(a.Lon(), b.Lon()) && p.Lon() <= math.Max(a.Lon(), b.Lon()) &&
		p.Lat() >= math.Min(a.Lat(), b.Lat()) && p.Lat() <= math.Max(a.Lat(), b.Lat())
}

// orientation returns the sign of the cross product (b-a) x (c-a):
// 0 collinear, >0 counterclockwise, <0 clockwise.
func orientation(a, b, c Coord) float64 {
	return (b.Lon()-a.Lon())*(c.Lat()-a.Lat()) - (b.Lat()-a.Lat())*(c.Lon()-a.Lon())
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// segmentsIntersect is the standard orientation-based segment intersection
// test, including the collinear-overlap special cases.
func segmentsIntersect(p1, q1, p2, q2 Coord) bool {
	o1 := sign(orientation(p1, q1, p2))
	o2 := sign(orientation(p1, q1, q2))
	o3 := sign(orientation(p2, q2, p1))
	o4 := sign(orientation(p2, q2, q1))

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && pointOnSegment(p2, p1, q1) {
		return true
	}
	if o2 == 0 && pointOnSegment(q2, p1, q1) {
		return true
	}
	if o3 == 0 && pointOnSegment(p1, p2, q2) {
		return true
	}
	if o4 == 0 && pointOnSegment(q1, p2, q2) {
		return true
	}
	return false
}

// polygonContainsPoint applies ray casting to the exterior ring and
// subtracts any interior ring (hole) that also contains the point.
func polygonContainsPoint(poly Polygon, p Coord) bool {
	if !ringContainsPoint(poly.Exterior, p) {
		return false
	}
	for _, hole := range poly.Interiors {
		if ringContainsPoint(hole, p) {
			return false
		}
	}
	return true
}

// ringContainsPoint is a ray-casting point-in-polygon test with boundary
// detection: a point exactly on an edge counts as contained.
func ringContainsPoint(ring Ring, p Coord) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[j], ring[i]
		if pointOnSegment(p, a, b) {
			return true
		}
		if (a.Lat() > p.Lat()) != (b.Lat() > p.Lat()) {
			xCross := a.Lon() + (p.Lat()-a.Lat())*(b.Lon()-a.Lon())/(b.Lat()-a.Lat())
			if p.Lon() < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
