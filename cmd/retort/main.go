// Package main is the entry point for the retort test environment runner.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/retortlabs/retort/cmd/retort/commands"
	"github.com/retortlabs/retort/internal/app"
	"github.com/retortlabs/retort/internal/core/domain"
	_ "github.com/retortlabs/retort/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// The progrock recorder buffers vertex updates until its tape is closed.
	defer func() {
		if closer, ok := components.Telemetry.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrPipelineFailed) {
			// Failures were already reported per run
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
