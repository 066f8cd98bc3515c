package expr

import (
	"math"
	"sort"
)

// builtin describes a numeric function callable from expressions.
type builtin struct {
	minArgs int
	maxArgs int
	fn      func(args []float64) float64
}

func unary(fn func(float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return fn(args[0]) }
}

func binary(fn func(a, b float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return fn(args[0], args[1]) }
}

var builtins = map[string]builtin{
	// Trigonometry.
	"sin":   {minArgs: 1, maxArgs: 1, fn: unary(math.Sin)},
	"cos":   {minArgs: 1, maxArgs: 1, fn: unary(math.Cos)},
	"tan":   {minArgs: 1, maxArgs: 1, fn: unary(math.Tan)},
	"asin":  {minArgs: 1, maxArgs: 1, fn: unary(math.Asin)},
	"acos":  {minArgs: 1, maxArgs: 1, fn: unary(math.Acos)},
	"atan":  {minArgs: 1, maxArgs: 1, fn: unary(math.Atan)},
	"atan2": {minArgs: 2, maxArgs: 2, fn: binary(math.Atan2)},
	"sinh":  {minArgs: 1, maxArgs: 1, fn: unary(math.Sinh)},
	"cosh":  {minArgs: 1, maxArgs: 1, fn: unary(math.Cosh)},
	"tanh":  {minArgs: 1, maxArgs: 1, fn: unary(math.Tanh)},

	// Exponentials and logs. log is natural.
	"exp":   {minArgs: 1, maxArgs: 1, fn: unary(math.Exp)},
	"ln":    {minArgs: 1, maxArgs: 1, fn: unary(math.Log)},
	"log":   {minArgs: 1, maxArgs: 1, fn: unary(math.Log)},
	"log10": {minArgs: 1, maxArgs: 1, fn: unary(math.Log10)},
	"log2":  {minArgs: 1, maxArgs: 1, fn: unary(math.Log2)},

	// Powers and roots.
	"pow":  {minArgs: 2, maxArgs: 2, fn: binary(math.Pow)},
	"sqrt": {minArgs: 1, maxArgs: 1, fn: unary(math.Sqrt)},
	"cbrt": {minArgs: 1, maxArgs: 1, fn: unary(math.Cbrt)},

	// Rounding and sign.
	"abs":   {minArgs: 1, maxArgs: 1, fn: unary(math.Abs)},
	"floor": {minArgs: 1, maxArgs: 1, fn: unary(math.Floor)},
	"ceil":  {minArgs: 1, maxArgs: 1, fn: unary(math.Ceil)},
	"round": {minArgs: 1, maxArgs: 1, fn: unary(math.Round)},
	"sign":  {minArgs: 1, maxArgs: 1, fn: unary(sign)},
	"min":   {minArgs: 2, maxArgs: 8, fn: minOf},
	"max":   {minArgs: 2, maxArgs: 8, fn: maxOf},
}

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func minOf(args []float64) float64 {
	m := args[0]
	for _, v := range args[1:] {
		if v < m || math.IsNaN(v) {
			m = v
		}
	}
	return m
}

func maxOf(args []float64) float64 {
	m := args[0]
	for _, v := range args[1:] {
		if v > m || math.IsNaN(v) {
			m = v
		}
	}
	return m
}

// IsFunction reports whether name is a builtin function.
func IsFunction(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Functions returns the builtin function names in sorted order.
func Functions() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
