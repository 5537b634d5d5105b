package main

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/sfx-di/framework/app"
)

var version = "dev"

// newRootCmd builds the sfx command tree. Every subcommand bootstraps its own
// Application from the --env-file flags.
func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:          "sfx",
		Short:        "Connect to a Service Fabric cluster",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVarP(&envFiles, "env-file", "e", nil,
		"env file(s) to load (default: .env)")

	bootstrap := func(cmd *cobra.Command) (*app.Application, error) {
		return app.New(app.WithEnvFiles(envFiles...), app.WithLogOutput(cmd.ErrOrStderr()))
	}

	root.AddCommand(
		newServeCmd(bootstrap),
		newConnectCmd(bootstrap),
		newBindingsCmd(bootstrap),
	)
	return root
}

type bootstrapFunc func(cmd *cobra.Command) (*app.Application, error)
