package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize encodes v as its RESP wire bytes.
func Serialize(v Value) string {
	switch v.Kind {
	case SimpleString:
		return "+" + v.Str + "\r\n"
	case Error:
		return "-" + v.Str + "\r\n"
	case Integer:
		return ":" + strconv.FormatInt(v.Int, 10) + "\r\n"
	case BulkString:
		if v.Null {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v.Str), v.Str)
	case Array:
		if v.Null {
			return "*-1\r\n"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "*%d\r\n", len(v.Items))
		for _, item := range v.Items {
			b.WriteString(Serialize(item))
		}
		return b.String()
	default:
		return "-ERR internal: unknown RESP value kind\r\n"
	}
}
