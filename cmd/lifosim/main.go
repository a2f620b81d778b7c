package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/teenjuna/lifo/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command.Execute(ctx)
}
