package expr

// This file contains the expression tree, its evaluator and the public entry points.

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type node interface {
	eval(x float64) float64
}

type nodeNumber struct {
	v    float64
	name string // set for named constants
}

func (n nodeNumber) eval(float64) float64 { return n.v }

type nodeIdent struct{ name string }

func (n nodeIdent) eval(x float64) float64 { return x }

type nodeUnary struct {
	op byte
	x  node
}

func (n nodeUnary) eval(x float64) float64 {
	v := n.x.eval(x)
	if n.op == '-' {
		return -v
	}
	return v
}

type nodeBinary struct {
	op    byte
	left  node
	right node
}

func (n nodeBinary) eval(x float64) float64 {
	a := n.left.eval(x)
	b := n.right.eval(x)
	switch n.op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	case '^':
		return math.Pow(a, b)
	default:
		return math.NaN()
	}
}

type nodeCall struct {
	name string
	fn   func([]float64) float64
	args []node
}

func (n nodeCall) eval(x float64) float64 {
	var buf [4]float64
	vals := buf[:0]
	for _, a := range n.args {
		vals = append(vals, a.eval(x))
	}
	return n.fn(vals)
}

// Expr is a compiled expression. It is immutable and safe for concurrent use.
type Expr struct {
	src  string
	root node
}

// Compile parses src into an evaluable expression.
//
// Unknown symbols and wrong argument counts are reported here rather than at evaluation.
func Compile(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmpty
	}
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root}, nil
}

// MustCompile is like Compile but panics on error. It is meant for tests and fixed tables.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic(fmt.Sprintf("expr: Compile(%q): %v", src, err))
	}
	return e
}

// Eval evaluates the expression with x bound to the given value.
// Any non-finite result is reported as NaN.
func (e *Expr) Eval(x float64) float64 {
	if e == nil || e.root == nil {
		return math.NaN()
	}
	y := e.root.eval(x)
	if math.IsInf(y, 0) {
		return math.NaN()
	}
	return y
}

// Source returns the text the expression was compiled from.
func (e *Expr) Source() string {
	if e == nil {
		return ""
	}
	return e.src
}

// String returns the fully parenthesised form of the parsed tree.
func (e *Expr) String() string {
	if e == nil || e.root == nil {
		return ""
	}
	return nodeString(e.root)
}

// Evaluate compiles expression and evaluates it at x, returning NaN on any failure.
func Evaluate(expression string, x float64) float64 {
	e, err := Compile(expression)
	if err != nil {
		return math.NaN()
	}
	return e.Eval(x)
}

// Validation is the result of a pre-flight check on a new equation.
type Validation struct {
	IsValid bool
	Error   string
}

// Validate checks that expression is non-empty and compiles.
// It shares its preprocessing with Compile, so anything valid here evaluates the same way.
func Validate(expression string) Validation {
	if _, err := Compile(expression); err != nil {
		return Validation{Error: validationMessage(err)}
	}
	return Validation{IsValid: true}
}

func validationMessage(err error) string {
	if errors.Is(err, ErrEmpty) {
		return "expression is empty"
	}
	return err.Error()
}

func nodeString(n node) string {
	switch nn := n.(type) {
	case nodeNumber:
		if nn.name != "" {
			return nn.name
		}
		return strconv.FormatFloat(nn.v, 'g', -1, 64)
	case nodeIdent:
		return nn.name
	case nodeUnary:
		return "(" + string(nn.op) + nodeString(nn.x) + ")"
	case nodeBinary:
		return "(" + nodeString(nn.left) + " " + string(nn.op) + " " + nodeString(nn.right) + ")"
	case nodeCall:
		parts := make([]string, len(nn.args))
		for i, a := range nn.args {
			parts[i] = nodeString(a)
		}
		return nn.name + "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<?>"
	}
}
