package model

import (
	"strconv"
	"strings"
)

// Record is a single telemetry row keyed by column key. Values are strings,
// numbers, or absent. A domain's records share one set of keys.
type Record map[string]interface{}

// Has reports whether key holds a non-empty value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// Value returns the raw value stored under key, or nil.
func (r Record) Value(key string) interface{} {
	return r[key]
}

// String returns the string form of the value under key. Numbers are
// rendered without trailing zeros; absent values return "".
func (r Record) String(key string) string {
	return ToString(r[key])
}

// Number returns the numeric value under key. Numeric strings are parsed;
// anything else reports false.
func (r Record) Number(key string) (float64, bool) {
	return ToFloat(r[key])
}

// Float returns the numeric value under key, or 0.
func (r Record) Float(key string) float64 {
	n, _ := ToFloat(r[key])
	return n
}

// Contains reports whether the string form of key contains sub, ignoring case.
func (r Record) Contains(key, sub string) bool {
	return strings.Contains(strings.ToLower(r.String(key)), strings.ToLower(sub))
}

// Is reports whether the string form of key equals s, ignoring case.
func (r Record) Is(key, s string) bool {
	return strings.EqualFold(r.String(key), s)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ToString converts a record value to its display string.
func ToString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []byte:
		return string(val)
	default:
		return ""
	}
}

// ToFloat converts a record value to float64.
func ToFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether v is stored as a Go number.
func IsNumeric(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32:
		return true
	}
	return false
}
