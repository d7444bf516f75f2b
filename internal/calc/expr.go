package calc

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"
)

// exprPrelude aliases the allowed math surface into the global scope so
// expressions can reference functions with or without the math prefix.
// Only the math library is opened on the interpreter; everything else is
// unreachable from an expression.
const exprPrelude = `
sin, cos, tan = math.sin, math.cos, math.tan
asin, acos, atan = math.asin, math.acos, math.atan
exp, log, sqrt, fabs = math.exp, math.log, math.sqrt, math.abs
floor, ceil = math.floor, math.ceil
pi = math.pi
e = math.exp(1)
pow = function(a, b) return a ^ b end
log10 = function(x) return math.log(x, 10) end
`

// newExprState builds a Lua interpreter restricted to the math surface.
func newExprState() (*lua.State, error) {
	l := lua.NewState()
	lua.Require(l, "math", lua.MathOpen, true)
	l.Pop(1)
	if err := lua.DoString(l, exprPrelude); err != nil {
		return nil, fmt.Errorf("initialize expression environment: %v", err)
	}
	return l, nil
}

// Evaluate evaluates an arithmetic expression with standard precedence,
// parentheses, and the allowed math functions and constants (sin, cos,
// tan, asin, acos, atan, exp, log, log10, sqrt, fabs, pow, floor, ceil,
// pi, e). Powers use the ^ operator.
//
// Expressions that reference anything outside the allowed surface, that
// do not produce a number, or that produce a non-finite number (for
// example a division by zero) are errors.
func Evaluate(expression string) (float64, error) {
	l, err := newExprState()
	if err != nil {
		return 0, err
	}
	return evalNumber(l, expression)
}

// evalNumber runs an expression on the given interpreter and enforces a
// finite numeric result.
func evalNumber(l *lua.State, expression string) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, fmt.Errorf("expression is empty")
	}
	if err := lua.DoString(l, "return "+expression); err != nil {
		l.SetTop(0)
		return 0, fmt.Errorf("invalid expression %q: %v", expression, err)
	}
	value, ok := l.ToNumber(-1)
	l.SetTop(0)
	if !ok {
		return 0, fmt.Errorf("expression %q did not evaluate to a number", expression)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("expression %q did not evaluate to a finite number", expression)
	}
	return value, nil
}

// exprFunction binds an expression as a function of the free variable x.
// The returned function shares the interpreter and must be called
// serially.
func exprFunction(l *lua.State, expression string) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		l.PushNumber(x)
		l.SetGlobal("x")
		return evalNumber(l, expression)
	}
}
