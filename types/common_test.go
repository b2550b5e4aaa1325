package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueType_String(t *testing.T) {
	tests := []struct {
		vt       ValueType
		expected string
	}{
		{String, "string"},
		{Number, "number"},
		{Boolean, "boolean"},
		{Array, "array"},
		{Unknown, "unknown"},
		{ValueType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.vt.String())
		})
	}
}

func TestValueType_Arity(t *testing.T) {
	assert.False(t, Boolean.TakesValue())
	assert.True(t, String.TakesValue())
	assert.True(t, Array.TakesValue())
	assert.True(t, Unknown.TakesValue())

	assert.True(t, Array.Repeatable())
	assert.False(t, String.Repeatable())
	assert.False(t, Boolean.Repeatable())
}

func TestParseValueType(t *testing.T) {
	tests := []struct {
		in   string
		want ValueType
		ok   bool
	}{
		{"string", String, true},
		{"", String, true},
		{"int", Number, true},
		{"bool", Boolean, true},
		{"list", Array, true},
		{"unknown", Unknown, true},
		{"date", Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseValueType(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
