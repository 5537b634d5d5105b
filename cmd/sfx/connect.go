package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/km-arc/sfx-di/framework/prompt/connectcluster"
)

func newConnectCmd(bootstrap bootstrapFunc) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "connect [url]",
		Short: "Validate a cluster url and print its endpoint",
		Long: `Validate a cluster url and print its endpoint (scheme://host[:port]).

Examples:
  sfx connect https://mycluster.westus.cloudapp.azure.com:19080
  sfx connect --local`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !local {
				return errors.New("a cluster url is required unless --local is set")
			}
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			p, err := a.ConnectPrompt()
			if err != nil {
				return err
			}

			var raw string
			if len(args) > 0 {
				raw = args[0]
			}
			endpoint, err := p.Connect(raw, local)
			if err != nil {
				return errors.New(connectcluster.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), endpoint)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&local, "local", "l", false, "connect to the local cluster (CLUSTER_LOCAL_URL)")
	return cmd
}
