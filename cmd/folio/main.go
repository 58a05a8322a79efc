package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/osa911/folio/internal/logging"

	"github.com/spf13/cobra"
)

// errReported marks failures the command already showed to the user
var errReported = errors.New("reported")

type rootOptions struct {
	verbose bool
	logger  *logging.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "folio",
		Short: "folio - send a message through the contact form",
		Long: `folio submits contact messages to a folio API.

Use "folio send" for scripts and "folio form" for the interactive form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelWarn
			if opts.verbose {
				level = logging.LevelDebug
			}
			// Diagnostics go to stderr so stdout stays for the user
			opts.logger = logging.NewWriterLogger(stderr, level)
			logging.SetGlobalLogger(opts.logger)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newSendCmd(opts))
	cmd.AddCommand(newFormCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
