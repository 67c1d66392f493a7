package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/srcmake/srcmake/cmd/srcmake"
	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := srcmake.NewRootCmd()
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if hint, ok := errors.GetErrorDetails(err)["hint"].(string); ok && hint != "" {
			fmt.Fprintln(os.Stderr, styles.Render("Muted", hint))
		}

		// Show the usage of the command that failed
		if cmd != nil {
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}

		stop()
		os.Exit(1)
	}
}
