package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpcalc/mcpcalc/internal/calc"
)

// IntegrateInput represents the MCP tool input for numerical integration.
type IntegrateInput struct {
	Expression string  `json:"expression" jsonschema:"expression in the free variable x, for example x^2 * sin(x)"`
	LowerBound float64 `json:"lower_bound" jsonschema:"lower integration bound"`
	UpperBound float64 `json:"upper_bound" jsonschema:"upper integration bound"`
}

// DifferentiateInput represents the MCP tool input for numerical
// differentiation.
type DifferentiateInput struct {
	Expression string  `json:"expression" jsonschema:"expression in the free variable x, for example x^3 + 2*x"`
	Point      float64 `json:"point" jsonschema:"point at which to evaluate the derivative"`
}

// NumericalIntegrateTool defines the MCP tool schema for integration.
func NumericalIntegrateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "numerical_integrate",
		Description: "Numerically integrates an expression of x between two bounds",
	}
}

// NumericalDifferentiateTool defines the MCP tool schema for
// differentiation.
func NumericalDifferentiateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "numerical_differentiate",
		Description: "Numerically differentiates an expression of x at a point",
	}
}

// NumericalIntegrateHandler executes the numerical_integrate tool.
func NumericalIntegrateHandler() mcp.ToolHandlerFor[IntegrateInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input IntegrateInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.Integrate(input.Expression, input.LowerBound, input.UpperBound)
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}

// NumericalDifferentiateHandler executes the numerical_differentiate tool.
func NumericalDifferentiateHandler() mcp.ToolHandlerFor[DifferentiateInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DifferentiateInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.Differentiate(input.Expression, input.Point)
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}
