package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"media-gallery/internal/cli"
	"media-gallery/internal/startup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		startup.LogFatal("%v", err)
	}
}
