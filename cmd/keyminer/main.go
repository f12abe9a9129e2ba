package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/storacha/go-keyminer/cmd/keyminer/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error during command execution: %v\n", err)
		stop()
		os.Exit(1)
	}
}
