package geom

import (
	"encoding/json"
	"fmt"
)

type rawGeoJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometries  []rawGeoJSON    `json:"geometries"`
	Geometry    json.RawMessage `json:"geometry"`
}

// ParseGeoJSON accepts either a bare Geometry object or a Feature envelope
// and returns the tagged Geometry it describes. Any JSON object lacking a
// "type" field, or whose type is unrecognized, is an error.
func ParseGeoJSON(s string) (Geometry, error) {
	var raw rawGeoJSON
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Geometry{}, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	if raw.Type == "" {
		return Geometry{}, fmt.Errorf("invalid GeoJSON: missing 'type' field")
	}
	return decode(raw)
}

func decode(raw rawGeoJSON) (Geometry, error) {
	switch raw.Type {
	case "Feature":
		if len(raw.Geometry) == 0 || string(raw.Geometry) == "null" {
			return Geometry{}, fmt.Errorf("invalid GeoJSON: Feature has no geometry")
		}
		var inner rawGeoJSON
		if err := json.Unmarshal(raw.Geometry, &inner); err != nil {
			return Geometry{}, fmt.Errorf("invalid GeoJSON: %w", err)
		}
		if inner.Type == "" {
			return Geometry{}, fmt.Errorf("invalid GeoJSON: Feature geometry missing 'type' field")
		}
		return decode(inner)

	case "Point":
		c, err := decodeCoord(raw.Coordinates)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Kind: KindPoint, Point: c}, nil

	case "LineString":
		line, err := decodeCoordList(raw.Coordinates)
		if err != nil {
			return Geometry{}, err
		}
		if len(line) < 2 {
			return Geometry{}, fmt.Errorf("invalid GeoJSON: LineString needs at least 2 points")
		}
		return Geometry{Kind: KindLineString, Line: line}, nil

	case "Polygon":
		poly, err := decodePolygon(raw.Coordinates)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Kind: KindPolygon, Polygon: poly}, nil

	case "MultiPoint":
		pts, err := decodeCoordList(raw.Coordinates)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Kind: KindMultiPoint, MultiPoint: pts}, nil

	case "MultiLineString":
		var raws [][][2]float64
		if err := json.Unmarshal(raw.Coordinates, &raws); err != nil {
			return Geometry{}, fmt.Errorf("invalid GeoJSON: %w", err)
		}
		lines := make([][]Coord, 0, len(raws))
		for _, l := range raws {
			lines = append(lines, toCoords(l))
		}
		return Geometry{Kind: KindMultiLineString, MultiLineString: lines}, nil

	case "MultiPolygon":
		var raws [][][][2]float64
		if err := json.Unmarshal(raw.Coordinates, &raws); err != nil {
			return Geometry{}, fmt.Errorf("invalid GeoJSON: %w", err)
		}
		polys := make([]Polygon, 0, len(raws))
		for _, rings := range raws {
			if len(rings) == 0 {
				return Geometry{}, fmt.Errorf("invalid GeoJSON: MultiPolygon member has no rings")
			}
			p := Polygon{Exterior: toCoords(rings[0])}
			for _, hole := range rings[1:] {
				p.Interiors = append(p.Interiors, toCoords(hole))
			}
			polys = append(polys, p)
		}
		return Geometry{Kind: KindMultiPolygon, MultiPolygon: polys}, nil

	case "GeometryCollection":
		children := make([]Geometry, 0, len(raw.Geometries))
		for _, g := range raw.Geometries {
			child, err := decode(g)
			if err != nil {
				return Geometry{}, err
			}
			children = append(children, child)
		}
		return Geometry{Kind: KindGeometryCollection, Collection: children}, nil

	default:
		return Geometry{}, fmt.Errorf("invalid GeoJSON: unsupported type %q", raw.Type)
	}
}

func decodeCoord(raw json.RawMessage) (Coord, error) {
	var c [2]float64
	if err := json.Unmarshal(raw, &c); err != nil {
		return Coord{}, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	return Coord(c), nil
}

func decodeCoordList(raw json.RawMessage) ([]Coord, error) {
	var cs [][2]float64
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	return toCoords(cs), nil
}

func decodePolygon(raw json.RawMessage) (Polygon, error) {
	var rings [][][2]float64
	if err := json.Unmarshal(raw, &rings); err != nil {
		return Polygon{}, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	if len(rings) == 0 {
		return Polygon{}, fmt.Errorf("invalid GeoJSON: Polygon has no rings")
	}
	p := Polygon{Exterior: toCoords(rings[0])}
	for _, hole := range rings[1:] {
		p.Interiors = append(p.Interiors, toCoords(hole))
	}
	return p, nil
}

func toCoords(raw [][2]float64) []Coord {
	out := make([]Coord, len(raw))
	for i, c := range raw {
		out[i] = Coord(c)
	}
	return out
}
