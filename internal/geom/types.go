package geom

// Coord is a WGS84 coordinate pair in (lon, lat) degree order, matching
// GeoJSON's axis order.
type Coord [2]float64

// Lon and Lat are convenience accessors for readability at call sites.
func (c Coord) Lon() float64 { return c[0] }
func (c Coord) Lat() float64 { return c[1] }

// Ring is a closed sequence of vertices (first and last need not be
// duplicated by callers; ring-walking helpers wrap around automatically).
type Ring []Coord

// Polygon is an exterior ring plus zero or more interior rings (holes).
type Polygon struct {
	Exterior  Ring
	Interiors []Ring
}

// Kind tags which variant of the GeoJSON geometry union a Geometry holds.
type Kind int

const (
	KindPoint Kind = iota
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiPoint:
		return "MultiPoint"
	case KindMultiLineString:
		return "MultiLineString"
	case KindMultiPolygon:
		return "MultiPolygon"
	case KindGeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// Geometry is a tagged union over the GeoJSON geometry types. Only the
// field matching Kind is populated.
//
// The original invariant/delete algorithm distinguishes a "Line" (2-point
// segment) from a general "LineString". GeoJSON has no separate Line wire
// type, so a 2-point LineString plays that role here — see DESIGN.md.
type Geometry struct {
	Kind Kind

	Point           Coord
	Line            []Coord
	Polygon         Polygon
	MultiPoint      []Coord
	MultiLineString [][]Coord
	MultiPolygon    []Polygon
	Collection      []Geometry
}
