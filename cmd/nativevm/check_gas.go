package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/nativevm/gas"
)

func newCheckGasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-gas <file>",
		Short: "Validate a YAML gas schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gas.LoadConfigFile(args[0])
			if err != nil {
				return err
			}
			table := cfg.CostTable()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: ok (%d native costs set)\n", args[0], len(cfg.Natives))
			for _, name := range gas.NativeCostNames() {
				idx, _ := gas.ParseNativeCostIndex(name)
				cost := table.NativeCost(idx)
				fmt.Fprintf(out, "  %-24s instruction=%d memory=%d\n", name, cost.Instruction, cost.Memory)
			}
			return nil
		},
	}
}
