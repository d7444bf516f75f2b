// Package agent runs an LLM chat loop backed by MCP calculator tools.
//
// The agent advertises every tool from a connected MCP session to the model,
// executes the tool calls the model requests, and feeds the results back
// until the model produces a final answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/openai/openai-go"
)

const (
	// defaultMaxTurns bounds the tool-call loop so a confused model cannot
	// spin forever.
	defaultMaxTurns = 10

	defaultSystemPrompt = "You are a calculator assistant. Use the available tools for every " +
		"calculation instead of computing answers yourself."
)

// ToolCaller is the slice of an MCP client session the agent needs.
// *mcp.ClientSession satisfies it.
type ToolCaller interface {
	ListTools(ctx context.Context, params *mcp.ListToolsParams) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// Config configures the agent loop.
type Config struct {
	Model        string
	SystemPrompt string
	MaxTurns     int
}

// Agent drives an OpenAI-compatible chat model against MCP tools.
type Agent struct {
	llm   openai.Client
	tools ToolCaller
	cfg   Config
}

// New creates an agent over the given chat client and MCP session.
func New(llm openai.Client, tools ToolCaller, cfg Config) *Agent {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = defaultMaxTurns
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	return &Agent{llm: llm, tools: tools, cfg: cfg}
}

// Run sends the prompt to the model and resolves tool calls until the model
// answers in plain text.
func (a *Agent) Run(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is empty")
	}

	listed, err := a.tools.ListTools(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("list MCP tools: %w", err)
	}
	toolParams, err := chatToolParams(listed.Tools)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(a.cfg.SystemPrompt),
		openai.UserMessage(prompt),
	}

	for turn := 0; turn < a.cfg.MaxTurns; turn++ {
		completion, err := a.llm.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(a.cfg.Model),
			Messages: messages,
			Tools:    toolParams,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			output, err := a.callTool(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				return "", err
			}
			messages = append(messages, openai.ToolMessage(output, call.ID))
		}
	}

	return "", fmt.Errorf("no final answer after %d turns", a.cfg.MaxTurns)
}

// callTool executes a single MCP tool call requested by the model.
// Tool-level errors are reported back to the model as text so it can recover.
func (a *Agent) callTool(ctx context.Context, name, rawArgs string) (string, error) {
	args, err := decodeArguments(rawArgs)
	if err != nil {
		return "", fmt.Errorf("decode arguments for %s: %w", name, err)
	}

	result, err := a.tools.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}
	return renderToolResult(result), nil
}

// chatToolParams converts MCP tool metadata into chat completion tool
// definitions. Input schemas pass through as-is via JSON round-tripping.
func chatToolParams(tools []*mcp.Tool) ([]openai.ChatCompletionToolParam, error) {
	params := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, tool := range tools {
		if tool == nil {
			continue
		}
		var parameters openai.FunctionParameters
		if tool.InputSchema != nil {
			data, err := json.Marshal(tool.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("marshal schema for %s: %w", tool.Name, err)
			}
			if err := json.Unmarshal(data, &parameters); err != nil {
				return nil, fmt.Errorf("unmarshal schema for %s: %w", tool.Name, err)
			}
		}
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  parameters,
			},
		})
	}
	return params, nil
}

// decodeArguments parses a tool-call argument payload. Models occasionally
// emit slightly malformed JSON, so unmarshal failures get one repair attempt.
func decodeArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		return args, nil
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, fmt.Errorf("repair arguments: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &args); err != nil {
		return nil, fmt.Errorf("unmarshal repaired arguments: %w", err)
	}
	return args, nil
}

// renderToolResult flattens a tool result into text for the model.
func renderToolResult(result *mcp.CallToolResult) string {
	if result == nil {
		return "tool returned no result"
	}

	var sb strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	text := sb.String()
	if text == "" && result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			text = string(data)
		}
	}
	if result.IsError {
		return "tool error: " + text
	}
	return text
}
