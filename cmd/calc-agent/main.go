package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	calcagentcmd "github.com/mcpcalc/mcpcalc/internal/cmd/calcagent"
	"github.com/mcpcalc/mcpcalc/internal/platform/config"
)

// main asks the agent a question and prints the answer.
func main() {
	cfg, err := calcagentcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[AGENT] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	answer, err := calcagentcmd.Run(ctx, cfg)
	if err != nil {
		config.Exitf("agent failed: %v", err)
	}
	fmt.Println(answer)
}
