package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one record of a report feed: field name to loosely typed value.
type Row map[string]any

// String returns the stringified value of key, "" when the key is absent.
func (r Row) String(key string) string {
	return Stringify(r[key])
}

// Float returns the numeric value of key, 0 when it does not parse.
func (r Row) Float(key string) float64 {
	f, ok := AsNumber(r[key])
	if !ok {
		return 0
	}
	return f
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Stringify renders a value the way tables display and search it.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// AsNumber is the numeric-parse test: it reports whether v holds or spells a
// finite number. nil, empty strings and booleans are not numbers.
func AsNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int8:
		f = float64(val)
	case int16:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint8:
		f = float64(val)
	case uint16:
		f = float64(val)
	case uint32:
		f = float64(val)
	case uint64:
		f = float64(val)
	case json.Number:
		return parseNumber(val.String())
	case string:
		return parseNumber(val)
	case []byte:
		return parseNumber(string(val))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
