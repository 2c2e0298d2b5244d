package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pteich/kubeq/internal/cli"
	"github.com/pteich/kubeq/internal/config"
)

func main() {
	// 1. Load configuration, flags are applied by the command tree
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Cancel running requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	// 3. Run the command
	err = cli.NewRootCommand(cfg, cli.NewKubeBackend).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
