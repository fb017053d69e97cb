// Package corpus reads newline-delimited JSON corpus dumps.
//
// The dumps are scraped data: fields drift between string and number
// encodings, go missing, or carry junk. Record accessors are deliberately
// tolerant and fall back to zero values instead of erroring, so a single
// sloppy field never discards an otherwise usable line.
package corpus

import (
	"strconv"
	"strings"
)

// Record is one decoded corpus line.
type Record map[string]any

// Str returns the string value at key, trimmed. Numbers are formatted,
// anything else yields "".
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the integer value at key. String-encoded numbers are parsed;
// malformed or missing values yield 0.
func (r Record) Int(key string) int {
	return int(r.Int64(key))
}

// Int64 returns the 64-bit integer value at key, 0 when absent or malformed.
func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Float returns the float value at key, 0 when absent or malformed.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool returns the boolean value at key. Accepts JSON booleans and the
// string forms "true"/"false".
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false
		}
		return b
	default:
		return false
	}
}

// List returns the array of objects at key. Non-object elements are skipped.
func (r Record) List(key string) []Record {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Strings returns the array of strings at key. Non-string elements are skipped.
func (r Record) Strings(key string) []string {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
