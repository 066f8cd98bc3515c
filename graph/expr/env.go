package expr

import (
	"errors"
	"math"
)

var (
	ErrEmpty = errors.New("expression is empty")
	ErrParse = errors.New("parse error")
	// ErrUnknownVar is returned when an expression refers to anything but x or a constant.
	ErrUnknownVar  = errors.New("unknown variable")
	ErrUnknownFunc = errors.New("unknown function")
	ErrArity       = errors.New("wrong number of arguments")
)

// Var is the name of the free variable.
const Var = "x"

var constants = map[string]float64{
	"e":   math.E,
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
	"phi": (1 + math.Sqrt(5)) / 2,
}

// IsConstant reports whether name is a predefined constant.
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}
