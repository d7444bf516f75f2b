package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpcalc/mcpcalc/internal/calc"
)

// DataInput represents the MCP tool input for statistics over a data set.
type DataInput struct {
	Data []float64 `json:"data" jsonschema:"numbers to aggregate"`
}

// SpreadInput represents the MCP tool input for dispersion statistics.
type SpreadInput struct {
	Data []float64 `json:"data" jsonschema:"numbers to aggregate"`
	Ddof *int      `json:"ddof,omitempty" jsonschema:"delta degrees of freedom: 1 for sample (default), 0 for population"`
}

// ModesResult represents the MCP tool output for mode calculation.
type ModesResult struct {
	Modes []float64 `json:"modes" jsonschema:"values tied for the highest frequency, ascending"`
}

// ddofOrDefault resolves the optional ddof selector to the sample default.
func (in SpreadInput) ddofOrDefault() int {
	if in.Ddof == nil {
		return 1
	}
	return *in.Ddof
}

// CalculateMeanTool defines the MCP tool schema for the mean.
func CalculateMeanTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calculate_mean",
		Description: "Calculates the mean of a list of numbers",
	}
}

// CalculateMedianTool defines the MCP tool schema for the median.
func CalculateMedianTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calculate_median",
		Description: "Calculates the median of a list of numbers",
	}
}

// CalculateModeTool defines the MCP tool schema for the mode.
func CalculateModeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calculate_mode",
		Description: "Calculates the mode(s) of a list of numbers",
	}
}

// CalculateStdDevTool defines the MCP tool schema for standard deviation.
func CalculateStdDevTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calculate_std_dev",
		Description: "Calculates the standard deviation of a list of numbers",
	}
}

// CalculateVarianceTool defines the MCP tool schema for variance.
func CalculateVarianceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calculate_variance",
		Description: "Calculates the variance of a list of numbers",
	}
}

// CalculateMeanHandler executes the calculate_mean tool.
func CalculateMeanHandler() mcp.ToolHandlerFor[DataInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DataInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.Mean(input.Data)
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}

// CalculateMedianHandler executes the calculate_median tool.
func CalculateMedianHandler() mcp.ToolHandlerFor[DataInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DataInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.Median(input.Data)
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}

// CalculateModeHandler executes the calculate_mode tool.
func CalculateModeHandler() mcp.ToolHandlerFor[DataInput, ModesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DataInput) (*mcp.CallToolResult, ModesResult, error) {
		modes, err := calc.Mode(input.Data)
		if err != nil {
			return nil, ModesResult{}, err
		}
		return nil, ModesResult{Modes: modes}, nil
	}
}

// CalculateStdDevHandler executes the calculate_std_dev tool.
func CalculateStdDevHandler() mcp.ToolHandlerFor[SpreadInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpreadInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.StdDev(input.Data, input.ddofOrDefault())
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}

// CalculateVarianceHandler executes the calculate_variance tool.
func CalculateVarianceHandler() mcp.ToolHandlerFor[SpreadInput, ValueResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpreadInput) (*mcp.CallToolResult, ValueResult, error) {
		value, err := calc.Variance(input.Data, input.ddofOrDefault())
		if err != nil {
			return nil, ValueResult{}, err
		}
		return nil, ValueResult{Result: value}, nil
	}
}
