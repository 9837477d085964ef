package resp_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/kass/spatio/internal/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, s string) resp.Value {
	t.Helper()
	v, err := resp.Parse(bufio.NewReader(strings.NewReader(s)))
	require.NoError(t, err)
	return v
}

func TestParseSimpleString(t *testing.T) {
	v := parseString(t, "+OK\r\n")
	assert.Equal(t, resp.SimpleString, v.Kind)
	assert.Equal(t, "OK", v.Str)
}

func TestParseError(t *testing.T) {
	v := parseString(t, "-ERR bad\r\n")
	assert.Equal(t, resp.Error, v.Kind)
	assert.Equal(t, "ERR bad", v.Str)
}

func TestParseInteger(t *testing.T) {
	v := parseString(t, ":42\r\n")
	assert.Equal(t, resp.Integer, v.Kind)
	assert.Equal(t, int64(42), v.Int)
}

func TestParseBulkString(t *testing.T) {
	v := parseString(t, "$5\r\nhello\r\n")
	assert.Equal(t, resp.BulkString, v.Kind)
	assert.Equal(t, "hello", v.Str)
	assert.False(t, v.Null)
}

func TestParseNullBulkString(t *testing.T) {
	v := parseString(t, "$-1\r\n")
	assert.Equal(t, resp.BulkString, v.Kind)
	assert.True(t, v.Null)
}

func TestParseEmptyBulkString(t *testing.T) {
	v := parseString(t, "$0\r\n\r\n")
	assert.Equal(t, resp.BulkString, v.Kind)
	assert.Equal(t, "", v.Str)
	assert.False(t, v.Null)
}

func TestParseArrayOfBulkStrings(t *testing.T) {
	v := parseString(t, "*2\r\n$3\r\nSET\r\n$1\r\nx\r\n")
	require.Equal(t, resp.Array, v.Kind)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "SET", v.Items[0].Str)
	assert.Equal(t, "x", v.Items[1].Str)
}

func TestParseNullArray(t *testing.T) {
	v := parseString(t, "*-1\r\n")
	assert.Equal(t, resp.Array, v.Kind)
	assert.True(t, v.Null)
}

func TestParseUnknownPrefixErrors(t *testing.T) {
	_, err := resp.Parse(bufio.NewReader(strings.NewReader("?nope\r\n")))
	assert.Error(t, err)
}

func TestParseMalformedLengthErrors(t *testing.T) {
	_, err := resp.Parse(bufio.NewReader(strings.NewReader("$abc\r\n")))
	assert.Error(t, err)
}

func TestParseShortReadErrors(t *testing.T) {
	_, err := resp.Parse(bufio.NewReader(strings.NewReader("$10\r\nshort\r\n")))
	assert.Error(t, err)
}

// Serialization round trip: serialize then parse yields an equal value.
func TestSerializeParseRoundTrip(t *testing.T) {
	values := []resp.Value{
		resp.NewSimpleString("PONG"),
		resp.NewError("ERR nope"),
		resp.NewInteger(-7),
		resp.NewBulkString("hello world"),
		resp.NewNullBulkString(),
		resp.NewNullArray(),
		resp.NewArray([]resp.Value{
			resp.NewBulkString("a"),
			resp.NewArray([]resp.Value{resp.NewBulkString("b"), resp.NewInteger(3)}),
		}),
	}
	for _, v := range values {
		encoded := resp.Serialize(v)
		decoded := parseString(t, encoded)
		assert.Equal(t, v, decoded)
	}
}
