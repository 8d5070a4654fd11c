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

	"github.com/specialistvlad/nodecanvas/internal/app"
	"github.com/specialistvlad/nodecanvas/internal/cli"
	"github.com/specialistvlad/nodecanvas/internal/hcl"
)

// main is the entrypoint for the nodecanvas application.
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
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Turn unexpected startup panics into a clean error for the caller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	canvasApp, err := app.NewApp(outW, appConfig, hcl.NewLoader())
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	if appConfig.CheckOnly {
		return check(outW, canvasApp)
	}
	return canvasApp.Run(ctx)
}

// check prints the bootstrap summary. Skipped initial nodes fail the check;
// cardinality violations are reported only.
func check(outW io.Writer, a *app.App) error {
	summary := a.Inspect()
	fmt.Fprintf(outW, "nodes: %d\nconnections: %d\nvalid: %t\n", summary.Nodes, summary.Connections, summary.Valid)
	for _, v := range summary.Violations {
		fmt.Fprintf(outW, "  - %s\n", v)
	}
	if err := a.SetupErrors(); err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}
	return nil
}
