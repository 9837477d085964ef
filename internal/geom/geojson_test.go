package geom_test

import (
	"testing"

	"github.com/kass/spatio/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeoJSONPoint(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"Point","coordinates":[0.0,0.0]}`)
	require.NoError(t, err)
	assert.Equal(t, geom.KindPoint, g.Kind)
	assert.Equal(t, geom.Coord{0, 0}, g.Point)
}

func TestParseGeoJSONFeatureEnvelope(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1.0,2.0]}}`)
	require.NoError(t, err)
	assert.Equal(t, geom.KindPoint, g.Kind)
	assert.Equal(t, geom.Coord{1, 2}, g.Point)
}

func TestParseGeoJSONFeatureWithoutGeometryErrors(t *testing.T) {
	_, err := geom.ParseGeoJSON(`{"type":"Feature","properties":{}}`)
	assert.Error(t, err)
}

func TestParseGeoJSONMissingTypeErrors(t *testing.T) {
	_, err := geom.ParseGeoJSON(`{"coordinates":[0.0,0.0]}`)
	assert.Error(t, err)
}

func TestParseGeoJSONInvalidJSONErrors(t *testing.T) {
	_, err := geom.ParseGeoJSON(`not json`)
	assert.Error(t, err)
}

func TestParseGeoJSONPolygonWithHole(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[2,2],[4,2],[4,4],[2,4],[2,2]]
	]}`)
	require.NoError(t, err)
	assert.Equal(t, geom.KindPolygon, g.Kind)
	assert.Len(t, g.Polygon.Exterior, 5)
	assert.Len(t, g.Polygon.Interiors, 1)
}

func TestParseGeoJSONGeometryCollection(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"GeometryCollection","geometries":[
		{"type":"Point","coordinates":[0,0]},
		{"type":"LineString","coordinates":[[0,0],[1,1]]}
	]}`)
	require.NoError(t, err)
	assert.Equal(t, geom.KindGeometryCollection, g.Kind)
	assert.Len(t, g.Collection, 2)
}

func TestParseGeoJSONMultiPolygon(t *testing.T) {
	g, err := geom.ParseGeoJSON(`{"type":"MultiPolygon","coordinates":[
		[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
		[[[5,5],[6,5],[6,6],[5,6],[5,5]]]
	]}`)
	require.NoError(t, err)
	assert.Equal(t, geom.KindMultiPolygon, g.Kind)
	assert.Len(t, g.MultiPolygon, 2)
}

func TestParseGeoJSONUnsupportedTypeErrors(t *testing.T) {
	_, err := geom.ParseGeoJSON(`{"type":"FeatureCollection","features":[]}`)
	assert.Error(t, err)
}
