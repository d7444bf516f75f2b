// Package calcagent runs an example LLM agent against the calculator MCP server.
package calcagent

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mcpcalc/mcpcalc/internal/agent"
	"github.com/mcpcalc/mcpcalc/internal/platform/config"
)

// Config holds agent command configuration.
type Config struct {
	Model   string `env:"MCPCALC_AGENT_MODEL" envDefault:"gpt-4o"`
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	SSEURL  string `env:"MCPCALC_SSE_URL"     envDefault:"http://localhost:8001/sse"`

	// Prompt is taken from the remaining command-line arguments.
	Prompt string
}

// ParseConfig loads .env if present, then parses environment and flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Model, "model", cfg.Model, "chat model name")
	fs.StringVar(&cfg.SSEURL, "sse-url", cfg.SSEURL, "calculator MCP SSE endpoint")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Prompt = strings.Join(fs.Args(), " ")
	return cfg, nil
}

// Run connects to the calculator server over SSE and answers the prompt.
func Run(ctx context.Context, cfg Config) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		return "", fmt.Errorf("prompt is required, e.g.: calc-agent what is 5 + 3?")
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "calc-agent", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, &mcp.SSEClientTransport{Endpoint: cfg.SSEURL}, nil)
	if err != nil {
		return "", fmt.Errorf("connect to calculator server at %s: %w", cfg.SSEURL, err)
	}
	defer session.Close()

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	llm := openai.NewClient(opts...)

	calcAgent := agent.New(llm, session, agent.Config{Model: cfg.Model})
	return calcAgent.Run(ctx, cfg.Prompt)
}
