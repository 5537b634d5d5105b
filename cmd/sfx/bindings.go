package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBindingsCmd(bootstrap bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "List the container bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			for _, key := range a.Bindings() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}
