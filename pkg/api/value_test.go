package api_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flagstaff/pkg/api"
)

func TestZeroValue(t *testing.T) {
	var v api.Value
	assert.Equal(t, api.KindString, v.Kind())
	assert.Equal(t, "", v.AsString())
	assert.Equal(t, 0.0, v.AsNumber())
	assert.False(t, v.AsBool())
	assert.False(t, v.IsNumeric())
}

func TestAddCoercion(t *testing.T) {
	res := api.Str("3").Add(api.Num(4))
	assert.Equal(t, api.KindNumber, res.Kind())
	assert.Equal(t, 7.0, res.AsNumber())
	assert.Equal(t, "7", res.AsString())

	res = api.Str("abc").Add(api.Str("def"))
	assert.Equal(t, api.KindString, res.Kind())
	assert.Equal(t, "abcdef", res.AsString())

	res = api.Str("abc").Add(api.Num(1))
	assert.Equal(t, "abc1", res.AsString())

	res = api.Str("0x10").Add(api.Num(1))
	assert.Equal(t, api.KindNumber, res.Kind())
	assert.Equal(t, 17.0, res.AsNumber())

	res = api.Bool(true).Add(api.Num(1))
	assert.Equal(t, 2.0, res.AsNumber())
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		name string
		in   api.Value
		want float64
	}{
		{"number", api.Num(2.5), 2.5},
		{"numeric string", api.Str("12"), 12},
		{"padded string", api.Str("  1.5 "), 1.5},
		{"text", api.Str("hello"), 0},
		{"empty", api.Str(""), 0},
		{"true", api.Bool(true), 1},
		{"false", api.Bool(false), 0},
		{"nan", api.Num(math.NaN()), 0},
		{"nan string", api.Str("NaN"), 0},
		{"go infinity spelling", api.Str("inf"), 0},
		{"exponent", api.Str("1e3"), 1000},
		{"hex", api.Str("0x10"), 16},
		{"upper hex", api.Str(" 0XfF "), 255},
		{"octal", api.Str("0o17"), 15},
		{"binary", api.Str("0b101"), 5},
		{"signed hex", api.Str("-0x10"), 0},
		{"hex float", api.Str("0x1p3"), 0},
		{"bad hex digit", api.Str("0xg"), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.AsNumber())
		})
	}

	assert.True(t, math.IsInf(api.Str("Infinity").AsNumber(), 1))
	assert.True(t, math.IsInf(api.Str("-Infinity").AsNumber(), -1))
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "10", api.Num(10).AsString())
	assert.Equal(t, "-3", api.Num(-3).AsString())
	assert.Equal(t, "0", api.Num(math.Copysign(0, -1)).AsString())
	assert.Equal(t, "0.1", api.Num(0.1).AsString())
	assert.Equal(t, "Infinity", api.Num(math.Inf(1)).AsString())
	assert.Equal(t, "-Infinity", api.Num(math.Inf(-1)).AsString())
	assert.Equal(t, "NaN", api.Num(math.NaN()).AsString())
	assert.Equal(t, "true", api.Bool(true).AsString())
	assert.Equal(t, "hi", api.Str("hi").String())
}

func TestAsBool(t *testing.T) {
	assert.False(t, api.Str("").AsBool())
	assert.False(t, api.Str("0").AsBool())
	assert.False(t, api.Str("FALSE").AsBool())
	assert.True(t, api.Str("no").AsBool())
	assert.True(t, api.Num(-1).AsBool())
	assert.False(t, api.Num(0).AsBool())
	assert.False(t, api.Num(math.NaN()).AsBool())
	assert.True(t, api.Bool(true).AsBool())
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, api.Num(1).IsNumeric())
	assert.True(t, api.Str(" 42 ").IsNumeric())
	assert.True(t, api.Bool(false).IsNumeric())
	assert.False(t, api.Str("   ").IsNumeric())
	assert.False(t, api.Str("4a").IsNumeric())
	assert.False(t, api.Str("1_000").IsNumeric())
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, api.Compare(api.Str("9"), api.Num(10)))
	assert.Equal(t, 1, api.Compare(api.Str("b"), api.Str("A")))
	assert.Equal(t, 0, api.Compare(api.Str("Hello"), api.Str("hello")))
	assert.Equal(t, 0, api.Compare(api.Bool(true), api.Str("true")))
	assert.Equal(t, 0, api.Compare(api.Bool(true), api.Num(1)))
	assert.True(t, api.Str("1.0").Equal(api.Num(1)))
	assert.False(t, api.Str("").Equal(api.Num(0)))
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, 6.0, api.Str("8").Subtract(api.Num(2)).AsNumber())
	assert.Equal(t, 12.0, api.Num(3).Multiply(api.Str("4")).AsNumber())
	assert.Equal(t, 2.5, api.Num(5).Divide(api.Num(2)).AsNumber())
	assert.True(t, math.IsInf(api.Num(1).Divide(api.Num(0)).AsNumber(), 1))
	assert.Equal(t, 0.0, api.Str("x").Multiply(api.Num(3)).AsNumber())
}

func TestModFloored(t *testing.T) {
	assert.Equal(t, 1.0, api.Num(7).Mod(api.Num(3)).AsNumber())
	assert.Equal(t, 2.0, api.Num(-7).Mod(api.Num(3)).AsNumber())
	assert.Equal(t, -2.0, api.Num(7).Mod(api.Num(-3)).AsNumber())
	assert.Equal(t, 0.0, api.Num(6).Mod(api.Num(3)).AsNumber())
}

func TestAsInt(t *testing.T) {
	assert.Equal(t, 3, api.Num(3.9).AsInt())
	assert.Equal(t, -3, api.Num(-3.9).AsInt())
	assert.Equal(t, 0, api.Str("Infinity").AsInt())
}

func TestInterface(t *testing.T) {
	assert.Equal(t, 1.5, api.Num(1.5).Interface())
	assert.Equal(t, "Infinity", api.Num(math.Inf(1)).Interface())
	assert.Equal(t, true, api.Bool(true).Interface())
	assert.Equal(t, "x", api.Str("x").Interface())
}
