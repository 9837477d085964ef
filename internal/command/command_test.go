package command_test

import (
	"testing"

	"github.com/kass/spatio/internal/command"
	"github.com/kass/spatio/internal/resp"
	"github.com/kass/spatio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulk(s string) resp.Value { return resp.NewBulkString(s) }

func newRegistry() *command.Registry {
	return command.NewRegistry(store.New(16))
}

func TestPingWithNoArgs(t *testing.T) {
	r := newRegistry()
	v, closeConn := r.Execute("PING", nil)
	assert.False(t, closeConn)
	assert.Equal(t, resp.NewSimpleString("PONG"), v)
}

func TestPingEchoesArgument(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("PING", []resp.Value{bulk("hi")})
	assert.Equal(t, resp.NewBulkString("hi"), v)
}

func TestHelloShape(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("HELLO", nil)
	require.Equal(t, resp.Array, v.Kind)
	assert.Equal(t, 10, len(v.Items))
}

func TestQuitClosesConnection(t *testing.T) {
	r := newRegistry()
	v, closeConn := r.Execute("QUIT", nil)
	assert.True(t, closeConn)
	assert.Equal(t, resp.NewSimpleString("OK"), v)
}

func TestUnknownCommandError(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("BOGUS", nil)
	assert.Equal(t, resp.Error, v.Kind)
	assert.Equal(t, "ERR unknown command 'BOGUS'", v.Str)
}

func TestCommandDispatchIsCaseInsensitive(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("ping", nil)
	assert.Equal(t, resp.NewSimpleString("PONG"), v)
}

// Scenario A: insert and exact intersection.
func TestScenarioAInsertAndIntersect(t *testing.T) {
	r := newRegistry()

	ok, _ := r.Execute("SET", []resp.Value{bulk("fleet"), bulk("v1"), bulk(`{"type":"Point","coordinates":[0.0,0.0]}`)})
	assert.Equal(t, resp.NewSimpleString("OK"), ok)
	r.Execute("SET", []resp.Value{bulk("fleet"), bulk("v2"), bulk(`{"type":"Point","coordinates":[5.0,5.0]}`)})
	r.Execute("SET", []resp.Value{bulk("fleet"), bulk("v3"), bulk(`{"type":"Point","coordinates":[15.0,15.0]}`)})

	v, _ := r.Execute("INTERSECTS", []resp.Value{
		bulk("fleet"),
		bulk(`{"type":"Polygon","coordinates":[[[-1,-1],[6,-1],[6,6],[-1,6],[-1,-1]]]}`),
	})
	require.Equal(t, resp.Array, v.Kind)
	assert.Len(t, v.Items, 2)
}

// Scenario B: precise filtering excludes bbox-only overlap.
func TestScenarioBPreciseFiltering(t *testing.T) {
	r := newRegistry()
	r.Execute("SET", []resp.Value{bulk("t"), bulk("inside"), bulk(`{"type":"Point","coordinates":[1.0,1.0]}`)})
	r.Execute("SET", []resp.Value{bulk("t"), bulk("outside"), bulk(`{"type":"Point","coordinates":[0.1,1.5]}`)})

	v, _ := r.Execute("INTERSECTS", []resp.Value{
		bulk("t"),
		bulk(`{"type":"Polygon","coordinates":[[[0,0],[2,0],[1,2],[0,0]]]}`),
	})
	require.Equal(t, resp.Array, v.Kind)
	require.Len(t, v.Items, 1)
}

// Scenario C: delete returns 1 then 0, GET then returns nil.
func TestScenarioCDeleteIdempotence(t *testing.T) {
	r := newRegistry()
	r.Execute("SET", []resp.Value{bulk("fleet"), bulk("truck1"), bulk(`{"type":"Point","coordinates":[-122.4194,37.7749]}`)})

	v, _ := r.Execute("DELETE", []resp.Value{bulk("fleet"), bulk("truck1")})
	assert.Equal(t, resp.NewInteger(1), v)

	v, _ = r.Execute("DELETE", []resp.Value{bulk("fleet"), bulk("truck1")})
	assert.Equal(t, resp.NewInteger(0), v)

	v, _ = r.Execute("GET", []resp.Value{bulk("fleet"), bulk("truck1")})
	assert.Equal(t, resp.NewNullBulkString(), v)
}

// Scenario D: DROP counts, KEYS returns nil array when empty.
func TestScenarioDDropCounts(t *testing.T) {
	r := newRegistry()
	r.Execute("SET", []resp.Value{bulk("fleet"), bulk("a"), bulk(`{"type":"Point","coordinates":[0,0]}`)})
	r.Execute("SET", []resp.Value{bulk("fleet"), bulk("b"), bulk(`{"type":"Point","coordinates":[1,1]}`)})

	v, _ := r.Execute("DROP", []resp.Value{bulk("fleet")})
	assert.Equal(t, resp.NewInteger(2), v)

	v, _ = r.Execute("KEYS", nil)
	assert.Equal(t, resp.NewNullArray(), v)
}

// Scenario E: NEARBY ordering with strictly increasing distances.
func TestScenarioENearbyOrdering(t *testing.T) {
	r := newRegistry()
	r.Execute("SET", []resp.Value{bulk("t"), bulk("p1"), bulk(`{"type":"Point","coordinates":[116.0,39.0]}`)})
	r.Execute("SET", []resp.Value{bulk("t"), bulk("p2"), bulk(`{"type":"Point","coordinates":[116.1,39.0]}`)})
	r.Execute("SET", []resp.Value{bulk("t"), bulk("p3"), bulk(`{"type":"Point","coordinates":[116.2,39.0]}`)})

	v, _ := r.Execute("NEARBY", []resp.Value{
		bulk("t"), bulk("POINT"), bulk("116.0"), bulk("39.0"), bulk("COUNT"), bulk("3"),
	})
	require.Equal(t, resp.Array, v.Kind)
	require.Len(t, v.Items, 3)

	first := v.Items[0]
	require.Equal(t, resp.Array, first.Kind)
	assert.Equal(t, "0.00", first.Items[1].Str)
}

func TestNearbyInvalidLongitudeError(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("NEARBY", []resp.Value{
		bulk("t"), bulk("POINT"), bulk("200"), bulk("39.0"), bulk("COUNT"), bulk("3"),
	})
	assert.Equal(t, resp.Error, v.Kind)
	assert.Contains(t, v.Str, "invalid longitude")
}

func TestNearbyEmptyCollectionReturnsNullArray(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("NEARBY", []resp.Value{
		bulk("empty"), bulk("POINT"), bulk("0"), bulk("0"), bulk("COUNT"), bulk("1"),
	})
	assert.Equal(t, resp.NewNullArray(), v)
}

func TestSetInvalidGeoJSONError(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("SET", []resp.Value{bulk("t"), bulk("a"), bulk("not json")})
	assert.Equal(t, resp.Error, v.Kind)
	assert.Contains(t, v.Str, "invalid GeoJSON")
}

func TestIntersectsWrongArityError(t *testing.T) {
	r := newRegistry()
	v, _ := r.Execute("INTERSECTS", []resp.Value{bulk("t")})
	assert.Equal(t, resp.Error, v.Kind)
}
