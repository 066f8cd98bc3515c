// Package expr parses and evaluates scalar expressions in one free variable x.
//
// Expressions are compiled once into an immutable tree and evaluated by a tree walk, so a
// compiled *Expr may be shared between goroutines. Evaluation never fails loudly: parse
// errors, unknown symbols, domain errors and non-finite results all yield NaN.
package expr
