package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name  string
		input any
		def   float64
		want  float64
	}{
		{"nil", nil, 7, 7},
		{"float64", 1.5, 0, 1.5},
		{"float32", float32(2.5), 0, 2.5},
		{"int", 3, 0, 3},
		{"int64", int64(4), 0, 4},
		{"numeric string", "12.5", 0, 12.5},
		{"padded string", "  9 ", 0, 9},
		{"empty string", "", 5, 5},
		{"garbage string", "oops", 5, 5},
		{"bool true", true, 0, 1},
		{"bool false", false, 3, 0},
		{"unsupported type", []string{"x"}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Float(tt.input, tt.def))
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input any
		def   string
		want  string
	}{
		{"nil", nil, "d", "d"},
		{"string", "x", "d", "x"},
		{"float64 whole", 10.0, "", "10"},
		{"float64 fraction", 1.25, "", "1.25"},
		{"int", 3, "", "3"},
		{"bool", true, "", "true"},
		{"unsupported type", map[string]any{}, "d", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, String(tt.input, tt.def))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Visits", "visits"},
		{"  Source  ", "source"},
		{`"Revenue"`, "revenue"},
		{"Conversion Rate", "conversion_rate"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeHeader(tt.input))
	}
}
