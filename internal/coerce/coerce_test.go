package coerce

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type breed string

type count int

type sold uint

func TestString(t *testing.T) {
	name := "Snuggles"
	tests := []struct {
		name    string
		value   any
		mode    Mode
		want    any
		wantErr bool
	}{
		{name: "plain string", value: "Beagle", mode: Strict, want: "Beagle"},
		{name: "bytes", value: []byte("Beagle"), mode: Strict, want: "Beagle"},
		{name: "named string type", value: breed("Beagle"), mode: Strict, want: "Beagle"},
		{name: "pointer to string", value: &name, mode: Strict, want: "Snuggles"},
		{name: "nil", value: nil, mode: Strict, want: nil},
		{name: "int rejected when strict", value: 42, mode: Strict, wantErr: true},
		{name: "bool rejected when strict", value: true, mode: Strict, wantErr: true},
		{name: "int stringified when lenient", value: 42, mode: Lenient, want: "42"},
		{name: "float stringified when lenient", value: 2.5, mode: Lenient, want: "2.5"},
		{name: "bool stringified when lenient", value: true, mode: Lenient, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.value, tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInteger(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		mode    Mode
		want    any
		wantErr bool
	}{
		{name: "int", value: 19000000, mode: Strict, want: int64(19000000)},
		{name: "int32", value: int32(7), mode: Strict, want: int64(7)},
		{name: "uint8", value: uint8(7), mode: Strict, want: int64(7)},
		{name: "named int type", value: count(3), mode: Strict, want: int64(3)},
		{name: "numeric string", value: " 332000 ", mode: Strict, want: int64(332000)},
		{name: "whole float", value: 12.0, mode: Strict, want: int64(12)},
		{name: "json number", value: json.Number("19000000"), mode: Strict, want: int64(19000000)},
		{name: "fractional float rejected", value: 1.5, mode: Strict, wantErr: true},
		{name: "non numeric string rejected", value: "many", mode: Strict, wantErr: true},
		{name: "bool rejected", value: true, mode: Strict, wantErr: true},
		{name: "uint64 overflow rejected", value: uint64(math.MaxUint64), mode: Strict, wantErr: true},
		{name: "nan rejected", value: math.NaN(), mode: Strict, wantErr: true},
		{name: "named uint type", value: sold(1500000), mode: Strict, want: int64(1500000)},
		{name: "uint", value: uint(42), mode: Strict, want: int64(42)},
		{name: "uint64 high bit rejected", value: uint64(1 << 63), mode: Strict, wantErr: true},
		{name: "two to the 63 rejected", value: math.Pow(2, 63), mode: Strict, wantErr: true},
		{name: "minus two to the 63", value: -math.Pow(2, 63), mode: Strict, want: int64(math.MinInt64)},
		{name: "1e30 rejected", value: 1e30, mode: Strict, wantErr: true},
		{name: "fraction truncated when lenient", value: 1.9, mode: Lenient, want: int64(1)},
		{name: "fractional string truncated when lenient", value: "3.7", mode: Lenient, want: int64(3)},
		{name: "bool when lenient", value: true, mode: Lenient, want: int64(1)},
		{name: "garbage fails even when lenient", value: "many", mode: Lenient, wantErr: true},
		{name: "whole float string when lenient", value: "12.0", mode: Lenient, want: int64(12)},
		{name: "named uint when lenient", value: sold(7), mode: Lenient, want: int64(7)},
		{name: "two to the 63 rejected when lenient", value: math.Pow(2, 63), mode: Lenient, wantErr: true},
		{name: "minus two to the 63 when lenient", value: -math.Pow(2, 63), mode: Lenient, want: int64(math.MinInt64)},
		{name: "1e30 rejected when lenient", value: 1e30, mode: Lenient, wantErr: true},
		{name: "1e30 string rejected when lenient", value: "1e30", mode: Lenient, wantErr: true},
		{name: "inf rejected when lenient", value: math.Inf(1), mode: Lenient, wantErr: true},
		{name: "uint64 overflow rejected when lenient", value: uint64(math.MaxUint64), mode: Lenient, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Integer(tt.value, tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		mode    Mode
		want    any
		wantErr bool
	}{
		{name: "float64", value: 4.5, mode: Strict, want: 4.5},
		{name: "float32", value: float32(0.5), mode: Strict, want: 0.5},
		{name: "int", value: 3, mode: Strict, want: 3.0},
		{name: "numeric string", value: "2.25", mode: Strict, want: 2.25},
		{name: "json number", value: json.Number("1e3"), mode: Strict, want: 1000.0},
		{name: "bool rejected", value: false, mode: Strict, wantErr: true},
		{name: "word rejected", value: "pi", mode: Strict, wantErr: true},
		{name: "bool when lenient", value: true, mode: Lenient, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Float(tt.value, tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolean(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		mode    Mode
		want    any
		wantErr bool
	}{
		{name: "true", value: true, mode: Strict, want: true},
		{name: "false", value: false, mode: Strict, want: false},
		{name: "non zero int", value: 5, mode: Strict, want: true},
		{name: "zero int", value: 0, mode: Strict, want: false},
		{name: "yes", value: "Yes", mode: Strict, want: true},
		{name: "off", value: "off", mode: Strict, want: false},
		{name: "empty string", value: "", mode: Strict, want: false},
		{name: "unknown word rejected", value: "maybe", mode: Strict, wantErr: true},
		{name: "unknown word truthy when lenient", value: "maybe", mode: Lenient, want: true},
		{name: "struct rejected when strict", value: struct{ A int }{1}, mode: Strict, wantErr: true},
		{name: "struct truthiness when lenient", value: struct{ A int }{1}, mode: Lenient, want: true},
		{name: "zero struct when lenient", value: struct{ A int }{}, mode: Lenient, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Boolean(tt.value, tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
