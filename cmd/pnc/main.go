package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd, closeStore := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeStore(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pnc: %v\n", err)
		stop()
		os.Exit(1)
	}
}
