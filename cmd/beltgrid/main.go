package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beltgrid/internal/cli"
	bgerrors "github.com/matzehuels/beltgrid/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode prints err and maps it to a process exit status.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	if code := bgerrors.GetCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "Error: %s (%s)\n", bgerrors.UserMessage(err), code)
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return bgerrors.ExitCode(err)
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	// Errors are printed by exitCode.
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Raise the log level before the root pre-run installs logging hooks.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
