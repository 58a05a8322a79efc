package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/folio/internal/form"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/notify"
	"github.com/osa911/folio/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFormCmd(root *rootOptions) *cobra.Command {
	var endpoints endpointFlags

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the contact form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := endpoints.client()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The terminal belongs to the form while it runs
			logger := logging.NewWriterLogger(io.Discard, logging.LevelError)
			if root.verbose {
				logger = root.logger
			}

			toasts := notify.NewChan(8)
			f := form.New(c, toasts, form.WithLogger(logger))

			p := tea.NewProgram(tui.New(ctx, f, toasts.C), tea.WithContext(ctx))
			_, err = p.Run()
			if err != nil && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	endpoints.register(cmd)
	return cmd
}
