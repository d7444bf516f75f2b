// Package mcpcalc parses calculator server flags and selects stdio or HTTP transport.
package mcpcalc

import (
	"context"
	"flag"
	"log"

	"github.com/mcpcalc/mcpcalc/internal/platform/config"
	"github.com/mcpcalc/mcpcalc/internal/platform/otel"
	"github.com/mcpcalc/mcpcalc/internal/platform/timeouts"
	"github.com/mcpcalc/mcpcalc/internal/services/calc/service"
)

// Config holds calculator server command configuration.
type Config struct {
	HTTPAddr  string `env:"MCPCALC_HTTP_ADDR" envDefault:"localhost:8001"`
	Transport string `env:"MCPCALC_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP calculator server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcpcalc")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.OTelShutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
