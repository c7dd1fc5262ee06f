package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/nativevm/natives"
	"github.com/reglet-dev/nativevm/natives/stdlib"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the standard native functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := natives.NewRegistry(stdlib.Table(a.address))
			if err != nil {
				return err
			}
			for _, id := range registry.Entries() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
