package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpcalc/mcpcalc/internal/services/calc/domain"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

func registerArithmeticTools(registrar mcpRegistrationTarget) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.AddTool(), handler: domain.AddHandler()},
		{tool: domain.SubtractTool(), handler: domain.SubtractHandler()},
		{tool: domain.MultiplyTool(), handler: domain.MultiplyHandler()},
		{tool: domain.DivideTool(), handler: domain.DivideHandler()},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerExpressionTools(registrar mcpRegistrationTarget) error {
	return registerTool(registrar, domain.EvaluateExpressionTool(), domain.EvaluateExpressionHandler())
}

func registerStatisticsTools(registrar mcpRegistrationTarget) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.CalculateMeanTool(), handler: domain.CalculateMeanHandler()},
		{tool: domain.CalculateMedianTool(), handler: domain.CalculateMedianHandler()},
		{tool: domain.CalculateModeTool(), handler: domain.CalculateModeHandler()},
		{tool: domain.CalculateStdDevTool(), handler: domain.CalculateStdDevHandler()},
		{tool: domain.CalculateVarianceTool(), handler: domain.CalculateVarianceHandler()},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerCalculusTools(registrar mcpRegistrationTarget) error {
	if err := registerTool(registrar, domain.NumericalIntegrateTool(), domain.NumericalIntegrateHandler()); err != nil {
		return err
	}
	return registerTool(registrar, domain.NumericalDifferentiateTool(), domain.NumericalDifferentiateHandler())
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
