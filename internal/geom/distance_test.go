package geom_test

import (
	"math"
	"testing"

	"github.com/kass/spatio/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0.0, geom.Haversine(116.0, 39.0, 116.0, 39.0), 1e-9)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Roughly one degree of longitude at the equator is ~111.2km.
	d := geom.Haversine(0, 0, 1, 0)
	assert.InDelta(t, 111195.0, d, 500)
}

// Mirrors Scenario E: distance to the query point itself is zero.
func TestPointToGeometryDistancePoint(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"Point","coordinates":[116.0,39.0]}`)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, geom.PointToGeometryDistance(116.0, 39.0, g), 1e-9)
}

func TestPointToGeometryDistanceOrdering(t *testing.T) {
	p1, _ := geom.ParseGeoJSON(`{"type":"Point","coordinates":[116.0,39.0]}`)
	p2, _ := geom.ParseGeoJSON(`{"type":"Point","coordinates":[116.1,39.0]}`)
	p3, _ := geom.ParseGeoJSON(`{"type":"Point","coordinates":[116.2,39.0]}`)

	d1 := geom.PointToGeometryDistance(116.0, 39.0, p1)
	d2 := geom.PointToGeometryDistance(116.0, 39.0, p2)
	d3 := geom.PointToGeometryDistance(116.0, 39.0, p3)

	assert.Less(t, d1, d2)
	assert.Less(t, d2, d3)
}

func TestPointToGeometryDistancePolygonZeroWhenInside(t *testing.T) {
	poly, err := geom.ParseGeoJSON(`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, geom.PointToGeometryDistance(5, 5, poly))
}

func TestPointToGeometryDistancePolygonPositiveWhenOutside(t *testing.T) {
	poly, err := geom.ParseGeoJSON(`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`)
	require.NoError(t, err)
	d := geom.PointToGeometryDistance(20, 5, poly)
	assert.Greater(t, d, 0.0)
}

func TestPointToGeometryDistanceLineStringProjectsOntoSegment(t *testing.T) {
	line, err := geom.ParseGeoJSON(`{"type":"LineString","coordinates":[[0,0],[10,0]]}`)
	require.NoError(t, err)
	onLine := geom.PointToGeometryDistance(5, 0, line)
	assert.InDelta(t, 0.0, onLine, 1e-6)
}

func TestPointToRectangleDistanceIsLowerBound(t *testing.T) {
	r := geom.NewRectangle(0, 0, 10, 10)
	poly, err := geom.ParseGeoJSON(`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`)
	require.NoError(t, err)

	lowerBound := geom.PointToRectangleDistance(20, 20, r)
	actual := geom.PointToGeometryDistance(20, 20, poly)
	assert.LessOrEqual(t, lowerBound, actual+1e-6)
}

func TestBoundingRectPoint(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"Point","coordinates":[3.0,4.0]}`)
	require.NoError(t, err)
	r, err := geom.BoundingRect(g)
	require.NoError(t, err)
	assert.Equal(t, geom.PointRectangle(3, 4), r)
}

func TestBoundingRectLineString(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"LineString","coordinates":[[0,0],[10,5]]}`)
	require.NoError(t, err)
	r, err := geom.BoundingRect(g)
	require.NoError(t, err)
	assert.Equal(t, geom.NewRectangle(0, 0, 10, 5), r)
}

func TestBoundingRectEmptyGeometryErrors(t *testing.T) {
	_, err := geom.BoundingRect(geom.Geometry{Kind: geom.KindGeometryCollection})
	assert.ErrorIs(t, err, geom.ErrEmptyGeometry)
}

func TestPointToGeometryDistanceMultiVariantTakesMinimum(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"MultiPoint","coordinates":[[0,0],[100,100]]}`)
	require.NoError(t, err)
	d := geom.PointToGeometryDistance(0.001, 0.001, g)
	assert.Less(t, d, geom.Haversine(0.001, 0.001, 100, 100))
	assert.False(t, math.IsInf(d, 1))
}
