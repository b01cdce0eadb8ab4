package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/sermon/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sermon: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "sermon",
		Short:         "Watch a serial device with warnings and errors split out",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (optional)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "UI preferences file path (optional)")
	flags.StringVarP(&opts.Port, "port", "p", "", "serial device, overrides config and discovery")
	flags.IntVarP(&opts.BaudRate, "baud", "b", 0, "baud rate, overrides config")
	flags.StringVar(&opts.ReplayPath, "replay", "", "read a captured log file instead of a device")

	root.AddCommand(newPortsCmd())
	root.AddCommand(newVersionCmd())

	return root
}
