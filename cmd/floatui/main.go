// Package main provides the floatui command line tool.
//
// Usage:
//
//	floatui place scenario.toml     Solve a placement scenario and print the layout
//	floatui demo                    Run the interactive terminal demo
//	floatui version                 Print version information
//
// Examples:
//
//	floatui place -p top-start scenario.toml
//	floatui place -o toml - < scenario.toml
//	FLOATUI_PLACE_PADDING=8 floatui place scenario.toml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
