package calc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// quadratureNodes is the fixed Gauss-Legendre node count. Generous
	// for the smooth integrands the expression language can produce.
	quadratureNodes = 400

	// derivativeStep is the central-difference step size.
	derivativeStep = 1e-6

	// derivativeTolerance bounds the disagreement allowed between the
	// one-sided difference estimates relative to the central one.
	derivativeTolerance = 0.1
)

// Integrate numerically integrates an expression in the free variable x
// over [lower, upper] using fixed-order Gauss-Legendre quadrature.
func Integrate(expression string, lower, upper float64) (float64, error) {
	l, err := newExprState()
	if err != nil {
		return 0, err
	}
	eval := exprFunction(l, expression)
	// Evaluate once so malformed expressions fail with their own error
	// instead of surfacing as a garbage quadrature result.
	if _, err := eval(lower); err != nil {
		return 0, fmt.Errorf("integrate: %w", err)
	}

	// Reversed bounds negate the integral. The quadrature nodes require
	// an ordered interval.
	sign := 1.0
	if lower > upper {
		lower, upper = upper, lower
		sign = -1
	}

	var evalErr error
	f := func(x float64) float64 {
		value, err := eval(x)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return value
	}
	// The interpreter is shared across evaluations, so quadrature must
	// stay serial.
	result := sign * quad.Fixed(f, lower, upper, quadratureNodes, nil, 1)
	if evalErr != nil {
		return 0, fmt.Errorf("integrate: %w", evalErr)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("integrate %q over [%v, %v]: result is not finite", expression, lower, upper)
	}
	return result, nil
}

// Differentiate numerically differentiates an expression in the free
// variable x at the given point using central finite differences.
func Differentiate(expression string, point float64) (float64, error) {
	l, err := newExprState()
	if err != nil {
		return 0, err
	}
	eval := exprFunction(l, expression)
	if _, err := eval(point); err != nil {
		return 0, fmt.Errorf("differentiate: %w", err)
	}

	var evalErr error
	f := func(x float64) float64 {
		value, err := eval(x)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return value
	}
	result := fd.Derivative(f, point, &fd.Settings{Formula: fd.Central, Step: derivativeStep})
	// A central difference cancels across a symmetric kink, so also take
	// the one-sided estimates. When they disagree the left and right
	// derivatives differ and the limit does not exist.
	forward := fd.Derivative(f, point, &fd.Settings{Formula: fd.Forward, Step: derivativeStep})
	backward := fd.Derivative(f, point, &fd.Settings{Formula: fd.Backward, Step: derivativeStep})
	if evalErr != nil {
		return 0, fmt.Errorf("differentiate: %w", evalErr)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("differentiate %q at %v: possible non-differentiable point", expression, point)
	}
	if math.Abs(forward-backward) > derivativeTolerance*math.Max(1, math.Abs(result)) {
		return 0, fmt.Errorf("differentiate %q at %v: failed to converge at a possible non-differentiable point", expression, point)
	}
	return result, nil
}
