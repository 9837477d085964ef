// Package command implements RESP command dispatch: a case-insensitive
// name-to-handler registry and the shared argument-parsing contract spatial
// commands validate their input against.
package command

import (
	"fmt"
	"strconv"

	"github.com/kass/spatio/internal/resp"
)

// argError is returned by every argument-parsing helper; the registry
// turns it into an `-ERR <detail>\r\n` frame.
type argError struct {
	detail string
}

func (e *argError) Error() string { return e.detail }

func argErrorf(format string, a ...interface{}) error {
	return &argError{detail: fmt.Sprintf(format, a...)}
}

// args wraps a command's RESP array payload (excluding the command name
// itself) with typed accessors.
type args struct {
	name  string
	items []resp.Value
}

func newArgs(name string, items []resp.Value) *args {
	return &args{name: name, items: items}
}

func (a *args) count() int { return len(a.items) }

func (a *args) checkCount(min, max int) error {
	n := len(a.items)
	if n < min || (max >= 0 && n > max) {
		return argErrorf("wrong number of arguments for '%s'", a.name)
	}
	return nil
}

func (a *args) string(i int) (string, error) {
	if i < 0 || i >= len(a.items) {
		return "", argErrorf("wrong number of arguments for '%s'", a.name)
	}
	v := a.items[i]
	if v.Kind != resp.BulkString || v.Null {
		return "", argErrorf("argument %d to '%s' must be a bulk string", i, a.name)
	}
	return v.Str, nil
}

func (a *args) integer(i int) (int64, error) {
	s, err := a.string(i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, argErrorf("argument %d to '%s' must be an integer", i, a.name)
	}
	return n, nil
}

func (a *args) float(i int) (float64, error) {
	s, err := a.string(i)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, argErrorf("argument %d to '%s' must be a number", i, a.name)
	}
	return f, nil
}

// setArgs is the parsed form of `SET coll id geojson`.
type setArgs struct {
	collection string
	id         string
	geojson    string
}

func parseSetArgs(a *args) (setArgs, error) {
	if err := a.checkCount(3, 3); err != nil {
		return setArgs{}, err
	}
	coll, err := a.string(0)
	if err != nil {
		return setArgs{}, err
	}
	id, err := a.string(1)
	if err != nil {
		return setArgs{}, err
	}
	geojson, err := a.string(2)
	if err != nil {
		return setArgs{}, err
	}
	return setArgs{collection: coll, id: id, geojson: geojson}, nil
}

// getArgs is the parsed form of `GET coll id` / `DELETE coll id`.
type getArgs struct {
	collection string
	id         string
}

func parseGetArgs(a *args) (getArgs, error) {
	if err := a.checkCount(2, 2); err != nil {
		return getArgs{}, err
	}
	coll, err := a.string(0)
	if err != nil {
		return getArgs{}, err
	}
	id, err := a.string(1)
	if err != nil {
		return getArgs{}, err
	}
	return getArgs{collection: coll, id: id}, nil
}

// intersectsArgs is the parsed form of
// `INTERSECTS coll geojson [WITHIN true|false] [LIMIT N]`.
type intersectsArgs struct {
	collection string
	geojson    string
	within     bool
	limit      int
}

func parseIntersectsArgs(a *args) (intersectsArgs, error) {
	if err := a.checkCount(2, 6); err != nil {
		return intersectsArgs{}, err
	}
	coll, err := a.string(0)
	if err != nil {
		return intersectsArgs{}, err
	}
	geojson, err := a.string(1)
	if err != nil {
		return intersectsArgs{}, err
	}

	result := intersectsArgs{collection: coll, geojson: geojson, within: false, limit: 0}

	i := 2
	for i < a.count() {
		keyword, err := a.string(i)
		if err != nil {
			return intersectsArgs{}, err
		}
		switch upper(keyword) {
		case "WITHIN":
			v, err := a.string(i + 1)
			if err != nil {
				return intersectsArgs{}, argErrorf("WITHIN requires a true/false value")
			}
			result.within = upper(v) == "TRUE"
			i += 2
		case "LIMIT":
			n, err := a.integer(i + 1)
			if err != nil {
				return intersectsArgs{}, argErrorf("LIMIT requires an integer")
			}
			result.limit = int(n)
			i += 2
		default:
			return intersectsArgs{}, argErrorf("unexpected argument %q to INTERSECTS", keyword)
		}
	}
	return result, nil
}

// nearbyArgs is the parsed form of `NEARBY coll POINT lon lat COUNT k`.
type nearbyArgs struct {
	collection string
	lon, lat   float64
	count      int
}

func parseNearbyArgs(a *args) (nearbyArgs, error) {
	if err := a.checkCount(6, 6); err != nil {
		return nearbyArgs{}, err
	}
	coll, err := a.string(0)
	if err != nil {
		return nearbyArgs{}, err
	}
	kw, err := a.string(1)
	if err != nil || upper(kw) != "POINT" {
		return nearbyArgs{}, argErrorf("expected POINT after collection name")
	}
	lon, err := a.float(2)
	if err != nil {
		return nearbyArgs{}, err
	}
	lat, err := a.float(3)
	if err != nil {
		return nearbyArgs{}, err
	}
	countKw, err := a.string(4)
	if err != nil || upper(countKw) != "COUNT" {
		return nearbyArgs{}, argErrorf("expected COUNT before neighbor count")
	}
	k, err := a.integer(5)
	if err != nil {
		return nearbyArgs{}, err
	}

	if lon < -180 || lon > 180 {
		return nearbyArgs{}, argErrorf("invalid longitude %v: must be between -180 and 180", lon)
	}
	if lat < -90 || lat > 90 {
		return nearbyArgs{}, argErrorf("invalid latitude %v: must be between -90 and 90", lat)
	}
	if k < 1 {
		return nearbyArgs{}, argErrorf("COUNT must be >= 1")
	}

	return nearbyArgs{collection: coll, lon: lon, lat: lat, count: int(k)}, nil
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
