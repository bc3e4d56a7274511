package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"newscorpus/tui"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newRootCmd(), os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs root and reports any error on errOut, since the root command
// silences cobra's own error printing.
func execute(ctx context.Context, root *cobra.Command, errOut io.Writer) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(errOut, tui.ErrorStyle.Render("Error: "+err.Error()))
	}
	return err
}
