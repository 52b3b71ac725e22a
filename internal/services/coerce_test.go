package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceStrings(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"comma separated", "a,b,c", []string{"a", "b", "c"}},
		{"semicolon and pipe", " a ; b | c ", []string{"a", "b", "c"}},
		{"empty string", "", []string{}},
		{"blank string", "   ", []string{}},
		{"json array string", `["x","y"]`, []string{"x", "y"}},
		{"json array of numbers", `[1, 2.5, true]`, []string{"1", "2.5", "true"}},
		{"json scalar string falls back to split", `"x"`, []string{`"x"`}},
		{"json null is kept whole", "null", []string{"null"}},
		{"padded json null is kept whole", " null ", []string{"null"}},
		{"trailing input after array", "[1]]", []string{"[1]]"}},
		{"array followed by text splits", "[1, 2] x", []string{"[1", "2] x"}},
		{"json object is kept whole", `{"a":1}`, []string{`{"a":1}`}},
		{"empty json array", "[]", []string{}},
		{"single value kept whole", " keynote ", []string{"keynote"}},
		{"delimiters only", ",,;", []string{",,;"}},
		{"string slice drops empties", []string{"a", "", "b"}, []string{"a", "b"}},
		{"any slice", []any{"a", "b"}, []string{"a", "b"}},
		{"any slice drops falsy", []any{"a", "", nil, false, json.Number("0"), json.Number("7"), true}, []string{"a", "7", "true"}},
		{"nested array is joined", []any{[]any{"a", "b"}, "c"}, []string{"a,b", "c"}},
		{"object element", []any{map[string]any{"k": "v"}}, []string{"[object Object]"}},
		{"number scalar", json.Number("42"), []string{"42"}},
		{"bool scalar", true, []string{"true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceStrings(tt.in))
		})
	}
}

func TestCoerceStrings_Idempotent(t *testing.T) {
	inputs := []any{"a,b,c", `["x","y"]`, []any{"a", "b"}, "one", ""}
	for _, in := range inputs {
		once := CoerceStrings(in)
		assert.Equal(t, once, CoerceStrings(once), "input %v", in)
	}
}
