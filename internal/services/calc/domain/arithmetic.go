package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpcalc/mcpcalc/internal/calc"
)

// BinaryInput represents the MCP tool input for two-operand arithmetic.
type BinaryInput struct {
	A float64 `json:"a" jsonschema:"first operand"`
	B float64 `json:"b" jsonschema:"second operand"`
}

// ValueResult represents an MCP tool output carrying a single number.
type ValueResult struct {
	Result float64 `json:"result" jsonschema:"numeric result of the operation"`
}

// AddTool defines the MCP tool schema for addition.
func AddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add",
		Description: "Adds two numbers",
	}
}

// SubtractTool defines the MCP tool schema for subtraction.
func SubtractTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "subtract",
		Description: "Subtracts b from a",
	}
}

// MultiplyTool defines the MCP tool schema for multiplication.
func MultiplyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "multiply",
		Description: "Multiplies two numbers",
	}
}

// DivideTool defines the MCP tool schema for division.
func DivideTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "divide",
		Description: "Divides a by b; fails when b is zero",
	}
}

// AddHandler executes the add tool.
func AddHandler() mcp.ToolHandlerFor[BinaryInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BinaryInput) (*mcp.CallToolResult, ValueResult, error) {
		return nil, ValueResult{Result: calc.Add(input.A, input.B)}, nil
	}
}

// SubtractHandler executes the subtract tool.
func SubtractHandler() mcp.ToolHandlerFor[BinaryInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BinaryInput) (*mcp.CallToolResult, ValueResult, error) {
		return nil, ValueResult{Result: calc.Subtract(input.A, input.B)}, nil
	}
}

// MultiplyHandler executes the multiply tool.
func MultiplyHandler() mcp.ToolHandlerFor[BinaryInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BinaryInput) (*mcp.CallToolResult, ValueResult, error) {
		return nil, ValueResult{Result: calc.Multiply(input.A, input.B)}, nil
	}
}

// DivideHandler executes the divide tool. Division by zero surfaces as a
// tool error, not a transport failure.
func DivideHandler() mcp.ToolHandlerFor[BinaryInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BinaryInput) (*mcp.CallToolResult, ValueResult, error) {
		quotient, err := calc.Divide(input.A, input.B)
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: quotient}, nil
	}
}
