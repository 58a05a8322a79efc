package main

import (
	"fmt"

	"github.com/osa911/folio/internal/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var (
		check     bool
		endpoints endpointFlags
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "folio version: %s\n", version.Info())

			if !check {
				return nil
			}

			c, err := endpoints.client()
			if err != nil {
				return err
			}

			info, err := version.CheckServerVersion(cmd.Context(), c.BaseURL())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "server version: %s (%s)\n", info.Version, info.Platform)
			if info.UpdateAvailable {
				fmt.Fprintln(out, "A newer folio is available.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Also ask the server for its version")
	endpoints.register(cmd)
	return cmd
}
