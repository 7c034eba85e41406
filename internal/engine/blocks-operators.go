package engine

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kode4food/flagstaff/pkg/api"
)

func operatorBlocks() Registry {
	return Registry{
		api.OpAdd:      reporter(arithmetic(api.Value.Add)),
		api.OpSubtract: reporter(arithmetic(api.Value.Subtract)),
		api.OpMultiply: reporter(arithmetic(api.Value.Multiply)),
		api.OpDivide:   reporter(arithmetic(api.Value.Divide)),
		api.OpMod:      reporter(arithmetic(api.Value.Mod)),
		api.OpRandom:   reporter(random),
		api.OpGT:       reporter(compare(func(c int) bool { return c > 0 })),
		api.OpLT:       reporter(compare(func(c int) bool { return c < 0 })),
		api.OpEquals:   reporter(compare(func(c int) bool { return c == 0 })),
		api.OpAnd:      reporter(and),
		api.OpOr:       reporter(or),
		api.OpNot:      reporter(not),
		api.OpJoin:     reporter(join),
		api.OpLetterOf: reporter(letterOf),
		api.OpLength:   reporter(length),
		api.OpContains: reporter(contains),
		api.OpRound:    reporter(round),
		api.OpMathOp:   reporter(mathOp),
	}
}

func arithmetic(op func(api.Value, api.Value) api.Value) ReporterFunc {
	return func(c *Context) api.Value {
		return op(c.Input("NUM1"), c.Input("NUM2"))
	}
}

func compare(test func(int) bool) ReporterFunc {
	return func(c *Context) api.Value {
		res := api.Compare(c.Input("OPERAND1"), c.Input("OPERAND2"))
		return api.Bool(test(res))
	}
}

func random(c *Context) api.Value {
	fromV, toV := c.Input("FROM"), c.Input("TO")
	from, to := fromV.AsNumber(), toV.AsNumber()
	if from > to {
		from, to = to, from
	}
	if !finite(from) || !finite(to) {
		return api.Num(from)
	}
	r := c.Engine().rand
	if isWhole(fromV) && isWhole(toV) {
		lo, hi := int64(from), int64(to)
		if span := hi - lo + 1; span > 0 {
			return api.Num(float64(lo + r.Int64N(span)))
		}
	}
	return api.Num(from + r.Float64()*(to-from))
}

func and(c *Context) api.Value {
	return api.Bool(c.Bool("OPERAND1") && c.Bool("OPERAND2"))
}

func or(c *Context) api.Value {
	return api.Bool(c.Bool("OPERAND1") || c.Bool("OPERAND2"))
}

func not(c *Context) api.Value {
	return api.Bool(!c.Bool("OPERAND"))
}

func join(c *Context) api.Value {
	return api.Str(c.String("STRING1") + c.String("STRING2"))
}

func letterOf(c *Context) api.Value {
	idx := c.Input("LETTER").AsInt() - 1
	runes := []rune(c.String("STRING"))
	if idx < 0 || idx >= len(runes) {
		return api.Str("")
	}
	return api.Str(string(runes[idx]))
}

func length(c *Context) api.Value {
	return api.Int(utf8.RuneCountInString(c.String("STRING")))
}

func contains(c *Context) api.Value {
	return api.Bool(strings.Contains(
		strings.ToLower(c.String("STRING1")),
		strings.ToLower(c.String("STRING2")),
	))
}

func round(c *Context) api.Value {
	return api.Num(math.Floor(c.Number("NUM") + 0.5))
}

func mathOp(c *Context) api.Value {
	n := c.Number("NUM")
	switch strings.ToLower(c.Field("OPERATOR")) {
	case "abs":
		return api.Num(math.Abs(n))
	case "floor":
		return api.Num(math.Floor(n))
	case "ceiling":
		return api.Num(math.Ceil(n))
	case "sqrt":
		return api.Num(math.Sqrt(n))
	case "sin":
		return api.Num(roundTrig(math.Sin(radians(n))))
	case "cos":
		return api.Num(roundTrig(math.Cos(radians(n))))
	case "tan":
		return api.Num(tan(n))
	case "asin":
		return api.Num(degrees(math.Asin(n)))
	case "acos":
		return api.Num(degrees(math.Acos(n)))
	case "atan":
		return api.Num(degrees(math.Atan(n)))
	case "ln":
		return api.Num(math.Log(n))
	case "log":
		return api.Num(math.Log10(n))
	case "e ^":
		return api.Num(math.Exp(n))
	case "10 ^":
		return api.Num(math.Pow(10, n))
	default:
		return api.Int(0)
	}
}

func tan(deg float64) float64 {
	switch math.Mod(math.Mod(deg, 360)+360, 360) {
	case 90:
		return math.Inf(1)
	case 270:
		return math.Inf(-1)
	}
	return roundTrig(math.Tan(radians(deg)))
}

// roundTrig drops the floating point noise that keeps sin 180 from being
// exactly zero
func roundTrig(f float64) float64 {
	return math.Round(f*1e10) / 1e10
}

func isWhole(v api.Value) bool {
	switch v.Kind() {
	case api.KindNumber, api.KindBool:
		f := v.AsNumber()
		return f == math.Trunc(f)
	default:
		return !strings.Contains(v.AsString(), ".") &&
			v.AsNumber() == math.Trunc(v.AsNumber())
	}
}
