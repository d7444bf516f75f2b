package calc

import (
	"math"
	"strings"
	"testing"
)

// approxEqual reports whether two floats match within tolerance.
func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestEvaluateSimple(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 2 - 1", 4},
		{"2^3", 8},
		{"-3 + 1", -2},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expression)
		if err != nil {
			t.Fatalf("Evaluate(%q) returned error: %v", tt.expression, err)
		}
		if got != tt.want {
			t.Fatalf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.want)
		}
	}
}

func TestEvaluateMathFunctions(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
	}{
		{"math.sqrt(16)", 4},
		{"sqrt(9)", 3},
		{"sin(pi/2)", 1},
		{"cos(0)", 1},
		{"log(e)", 1},
		{"log10(100)", 2},
		{"pow(2, 3)", 8},
		{"fabs(-3.5)", 3.5},
		{"floor(2.7) + ceil(2.1)", 5},
		{"exp(0)", 1},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expression)
		if err != nil {
			t.Fatalf("Evaluate(%q) returned error: %v", tt.expression, err)
		}
		if !approxEqual(got, tt.want, 1e-9) {
			t.Fatalf("Evaluate(%q) = %v, want %v", tt.expression, got, tt.want)
		}
	}
}

func TestEvaluateInvalid(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantSubstr string
	}{
		{name: "incomplete", expression: "2 +", wantSubstr: "invalid expression"},
		{name: "unknown function", expression: "unknown_func(5)", wantSubstr: "invalid expression"},
		{name: "function value", expression: "math.sin", wantSubstr: "did not evaluate to a number"},
		{name: "free variable", expression: "y + 1", wantSubstr: "invalid expression"},
		{name: "empty", expression: "   ", wantSubstr: "expression is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expression)
			if err == nil {
				t.Fatalf("Evaluate(%q) = %v, expected error", tt.expression, got)
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Fatalf("Evaluate(%q) error = %v, want substring %q", tt.expression, err, tt.wantSubstr)
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	for _, expression := range []string{"1 / 0", "1 / (2-2)"} {
		got, err := Evaluate(expression)
		if err == nil {
			t.Fatalf("Evaluate(%q) = %v, expected error", expression, got)
		}
		if !strings.Contains(err.Error(), "finite") {
			t.Fatalf("Evaluate(%q) error = %v, want non-finite report", expression, err)
		}
	}
}

func TestEvaluateBlocksNonMathGlobals(t *testing.T) {
	// Only the math surface is opened on the interpreter; the standard
	// library entry points must stay unreachable.
	for _, expression := range []string{`os.time()`, `io.read()`, `load("return 1")()`} {
		if got, err := Evaluate(expression); err == nil {
			t.Fatalf("Evaluate(%q) = %v, expected error", expression, got)
		}
	}
}
