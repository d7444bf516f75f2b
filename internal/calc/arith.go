// Package calc implements the calculator operation set served over MCP.
//
// Every function is pure and per-call; nothing is cached or shared between
// invocations, so callers never need synchronization.
package calc

import "errors"

// ErrDivisionByZero reports a divide call with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero is not allowed")

// Add returns the sum of a and b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a minus b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns the product of a and b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns the quotient of a and b using true floating-point
// division. Integer inputs produce fractional quotients.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}
