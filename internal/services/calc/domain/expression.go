package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpcalc/mcpcalc/internal/calc"
)

// EvaluateInput represents the MCP tool input for expression evaluation.
type EvaluateInput struct {
	Expression string `json:"expression" jsonschema:"arithmetic expression using +,-,*,/,^ and math functions such as sin, cos, sqrt, log, pi, e"`
}

// EvaluateExpressionTool defines the MCP tool schema for expression
// evaluation.
func EvaluateExpressionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "evaluate_expression",
		Description: "Evaluates an arithmetic expression with precedence, parentheses, and math functions",
	}
}

// EvaluateExpressionHandler executes the evaluate_expression tool.
func EvaluateExpressionHandler() mcp.ToolHandlerFor[EvaluateInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.Evaluate(input.Expression)
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}
