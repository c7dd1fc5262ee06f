package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/nativevm/domain/entities"
	nvlog "github.com/reglet-dev/nativevm/log"
)

// app carries the settings shared by all subcommands.
type app struct {
	logger   *slog.Logger
	address  entities.AccountAddress
	addrFlag string
	logLevel string
	logJSON  bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "nativevm",
		Short:         "Inspect and exercise the native function boundary",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := nvlog.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = nvlog.New(nvlog.WithLevel(level), nvlog.WithJSON(a.logJSON), nvlog.WithWriter(cmd.ErrOrStderr()))

			addr, err := entities.ParseAddress(a.addrFlag)
			if err != nil {
				return err
			}
			a.address = addr
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.addrFlag, "address", "0x1", "address the standard natives are registered under")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write logs as JSON")

	root.AddCommand(
		newListCmd(a),
		newSchemaCmd(),
		newCheckGasCmd(),
		newDemoCmd(a),
	)
	return root
}
