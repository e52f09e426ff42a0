package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/jsonuigo/internal/app"
	"github.com/vk/jsonuigo/internal/cli"
	"github.com/vk/jsonuigo/internal/hcl"
)

// main is the entrypoint for the jsonui application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(cli.CodeFailure)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: cli.CodeFailure, Message: fmt.Sprintf("application startup panicked: %v", r)}
		}
	}()

	return cli.Execute(ctx, outW, args, func(outW io.Writer, cfg *app.Config) *app.App {
		// Instantiate the concrete HCL loader to pass to the app.
		return app.NewApp(outW, cfg, hcl.NewLoader())
	})
}
