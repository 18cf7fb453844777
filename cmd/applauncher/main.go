package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

const appName = "applauncher"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error().Stack().Err(err).Msg(appName + " failed")
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		}
		stop()
		os.Exit(1)
	}
}
