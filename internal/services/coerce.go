package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CoerceStrings normalizes a value meant to be an ordered list of strings.
// JSON bodies send native arrays while form submissions send flat strings for the
// same field, so the rules are tried in order:
//   - a sequence keeps its non-empty entries, stringified;
//   - a string is parsed as a JSON array, then split on , ; or |, and
//     otherwise kept whole;
//   - nil yields an empty list;
//   - any other scalar yields a one-element list.
func CoerceStrings(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if isFalsy(item) {
				continue
			}
			out = append(out, Stringify(item))
		}
		return out
	case string:
		return coerceString(val)
	default:
		return []string{Stringify(val)}
	}
}

func coerceString(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}
	if parsed, ok := parseJSONArray(s); ok {
		out := make([]string, 0, len(parsed))
		for _, item := range parsed {
			out = append(out, Stringify(item))
		}
		return out
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 1 {
		return out
	}
	return []string{s}
}

// parseJSONArray reports whether s is exactly one JSON array. Scalars, null,
// objects and trailing input are rejected.
func parseJSONArray(s string) ([]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// Stringify renders a decoded JSON value as text. Numbers keep their literal form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprint(val)
	}
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	}
	return false
}
