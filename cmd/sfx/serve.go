package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(bootstrap bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the connect-cluster prompt over HTTP",
		Long: `Serve the connect-cluster prompt over HTTP on APP_PORT.

The server exits once the prompt is answered (POST /prompt/connect-cluster)
or dismissed (POST /prompt/exit), or on SIGINT/SIGTERM. The chosen endpoint
is printed on stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := a.Run(ctx); err != nil {
				return err
			}

			s, err := a.Session()
			if err != nil {
				return err
			}
			if v, ok := s.Result(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
