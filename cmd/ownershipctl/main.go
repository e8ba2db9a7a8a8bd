package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(openDeps, os.Stdout).Execute(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
