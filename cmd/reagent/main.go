// Command reagent answers questions about UK government services with a
// ReAct agent that searches GOV.UK.
//
//	reagent ask "How do I renew my passport?"
//	reagent -f reagent.yaml chat
//	reagent history --limit 5
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr)); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, a *app) error {
	opts := newOptions(ctx, a)
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PrintErrors|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}
