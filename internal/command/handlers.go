package command

import (
	"fmt"

	"github.com/kass/spatio/internal/geom"
	"github.com/kass/spatio/internal/resp"
	"github.com/kass/spatio/internal/snapshot"
	"github.com/kass/spatio/internal/store"
)

const (
	protocolVersion = 3
	connectionID    = 1
	serverName      = "spatio"
	serverVersion   = "0.1.0"
)

func handlePing(_ *store.Store, a *args) resp.Value {
	switch a.count() {
	case 0:
		return resp.NewSimpleString("PONG")
	case 1:
		msg, err := a.string(0)
		if err != nil {
			return dispatchError(err)
		}
		return resp.NewBulkString(msg)
	default:
		return dispatchError(argErrorf("wrong number of arguments for 'PING'"))
	}
}

func handleHello(_ *store.Store, a *args) resp.Value {
	if err := a.checkCount(0, 0); err != nil {
		return dispatchError(err)
	}
	return resp.NewArray([]resp.Value{
		resp.NewBulkString("server"), resp.NewBulkString(serverName),
		resp.NewBulkString("version"), resp.NewBulkString(serverVersion),
		resp.NewBulkString("proto"), resp.NewInteger(protocolVersion),
		resp.NewBulkString("id"), resp.NewInteger(connectionID),
		resp.NewBulkString("mode"), resp.NewBulkString("standalone"),
	})
}

func handleQuit(_ *store.Store, a *args) resp.Value {
	if err := a.checkCount(0, 0); err != nil {
		return dispatchError(err)
	}
	return resp.NewSimpleString("OK")
}

func handleSet(s *store.Store, a *args) resp.Value {
	parsed, err := parseSetArgs(a)
	if err != nil {
		return dispatchError(err)
	}
	if err := s.Set(parsed.collection, parsed.id, parsed.geojson); err != nil {
		return resp.NewError(fmt.Sprintf("ERR invalid GeoJSON: %s", err.Error()))
	}
	return resp.NewSimpleString("OK")
}

func handleGet(s *store.Store, a *args) resp.Value {
	parsed, err := parseGetArgs(a)
	if err != nil {
		return dispatchError(err)
	}
	item, ok := s.Get(parsed.collection, parsed.id)
	if !ok {
		return resp.NewNullBulkString()
	}
	return resp.NewBulkString(item.GeoJSON)
}

func handleDelete(s *store.Store, a *args) resp.Value {
	parsed, err := parseGetArgs(a)
	if err != nil {
		return dispatchError(err)
	}
	if s.Delete(parsed.collection, parsed.id) {
		return resp.NewInteger(1)
	}
	return resp.NewInteger(0)
}

func handleDrop(s *store.Store, a *args) resp.Value {
	if err := a.checkCount(1, 1); err != nil {
		return dispatchError(err)
	}
	coll, err := a.string(0)
	if err != nil {
		return dispatchError(err)
	}
	return resp.NewInteger(int64(s.DropCollection(coll)))
}

func handleKeys(s *store.Store, a *args) resp.Value {
	if err := a.checkCount(0, 0); err != nil {
		return dispatchError(err)
	}
	names := s.CollectionNames()
	if len(names) == 0 {
		return resp.NewNullArray()
	}
	items := make([]resp.Value, len(names))
	for i, n := range names {
		items[i] = resp.NewBulkString(n)
	}
	return resp.NewArray(items)
}

func handleIntersects(s *store.Store, a *args) resp.Value {
	parsed, err := parseIntersectsArgs(a)
	if err != nil {
		return dispatchError(err)
	}
	queryGeom, err := geom.ParseGeoJSON(parsed.geojson)
	if err != nil {
		return resp.NewError(fmt.Sprintf("ERR invalid GeoJSON: %s", err.Error()))
	}
	// WITHIN true is accepted for wire compatibility but not yet given a
	// distinct "contained by" semantics; both modes run the same
	// intersection query. See DESIGN.md.
	_ = parsed.within

	results, err := s.Intersects(parsed.collection, queryGeom, parsed.limit)
	if err != nil {
		return resp.NewError(fmt.Sprintf("ERR intersects query failed: %s", err.Error()))
	}
	if len(results) == 0 {
		return resp.NewNullArray()
	}
	items := make([]resp.Value, len(results))
	for i, it := range results {
		items[i] = resp.NewBulkString(it.GeoJSON)
	}
	return resp.NewArray(items)
}

func handleNearby(s *store.Store, a *args) resp.Value {
	parsed, err := parseNearbyArgs(a)
	if err != nil {
		return dispatchError(err)
	}
	neighbors := s.Nearby(parsed.collection, parsed.lon, parsed.lat, parsed.count)
	if len(neighbors) == 0 {
		return resp.NewNullArray()
	}
	items := make([]resp.Value, len(neighbors))
	for i, n := range neighbors {
		items[i] = resp.NewArray([]resp.Value{
			resp.NewBulkString(n.Item.GeoJSON),
			resp.NewBulkString(fmt.Sprintf("%.2f", n.Distance)),
		})
	}
	return resp.NewArray(items)
}

func handleSnapshot(s *store.Store, a *args) resp.Value {
	if err := a.checkCount(1, 1); err != nil {
		return dispatchError(err)
	}
	dsn, err := a.string(0)
	if err != nil {
		return dispatchError(err)
	}
	count, err := snapshot.Export(s, dsn)
	if err != nil {
		return resp.NewError(fmt.Sprintf("ERR snapshot failed: %s", err.Error()))
	}
	return resp.NewInteger(int64(count))
}
