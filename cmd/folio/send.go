package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/osa911/folio/internal/client"
	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/form"
	"github.com/osa911/folio/internal/notify"

	"github.com/spf13/cobra"
)

type endpointFlags struct {
	endpoint string
	path     string
	timeout  time.Duration
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "API base URL (default $FOLIO_ENDPOINT or http://localhost:8080)")
	cmd.Flags().StringVar(&f.path, "path", "", "Submission path (default $FOLIO_CONTACT_PATH or /api/test)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Request timeout, 0 waits for the server")
}

// client builds the submitter from flags over env config
func (f *endpointFlags) client() (*client.Client, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if f.endpoint != "" {
		cfg.Endpoint = f.endpoint
	}
	if f.path != "" {
		cfg.ContactPath = f.path
	}
	return client.New(cfg.Endpoint, client.WithPath(cfg.ContactPath), client.WithTimeout(f.timeout)), nil
}

func newSendCmd(root *rootOptions) *cobra.Command {
	var (
		sub       contact.Submission
		endpoints endpointFlags
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a contact message",
		Long: `Validate and send a single contact message.

Invalid fields are reported and nothing is sent. A failed request keeps
nothing around, so just run the command again.

Example:
  folio send --name "Jane Doe" --email jane@example.com --message "Hello there, friend"
  echo "A longer message" | folio send --name Jane --email jane@example.com --message -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sub.Message == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read message from stdin: %w", err)
				}
				sub.Message = strings.TrimRight(string(data), "\n")
			}

			c, err := endpoints.client()
			if err != nil {
				return err
			}
			root.logger.Debug("Submitting to %s", c.URL())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var n notify.Notifier = notifierFor(cmd.OutOrStdout())
			if root.verbose {
				n = notify.NewMulti(n, notify.NewLog(root.logger))
			}
			f := form.New(c, n, form.WithValues(sub), form.WithLogger(root.logger))
			return runSend(ctx, f, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&sub.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&sub.Email, "email", "", "Your email address")
	cmd.Flags().StringVar(&sub.Message, "message", "", `Message text, "-" reads stdin`)
	endpoints.register(cmd)

	return cmd
}

// runSend submits once and reports field errors. Outcome toasts are
// printed by the form's notifier.
func runSend(ctx context.Context, f *form.Form, stderr io.Writer) error {
	err := f.Submit(ctx)
	if err == nil {
		return nil
	}

	var validationErr *contact.ValidationError
	if errors.As(err, &validationErr) {
		for _, field := range validationErr.Fields.Fields() {
			fmt.Fprintf(stderr, "  %s: %s\n", field, validationErr.Fields.Get(field))
		}
	}
	return errReported
}

func notifierFor(w io.Writer) notify.Notifier {
	if f, ok := w.(*os.File); ok {
		return notify.ForFile(f)
	}
	return notify.NewPlain(w)
}
