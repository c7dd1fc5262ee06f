package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"

	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/gas"
	"github.com/reglet-dev/nativevm/infrastructure/loader"
	"github.com/reglet-dev/nativevm/infrastructure/memstore"
	"github.com/reglet-dev/nativevm/infrastructure/metrics"
	wasmnatives "github.com/reglet-dev/nativevm/infrastructure/wazero"
	"github.com/reglet-dev/nativevm/natives"
	"github.com/reglet-dev/nativevm/natives/stdlib"
	"github.com/reglet-dev/nativevm/vm"
)

type demoFlags struct {
	gasFile     string
	gasLimit    uint64
	showMetrics bool
}

func newDemoCmd(a *app) *cobra.Command {
	f := &demoFlags{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Call a standard native through a full session",
	}
	cmd.PersistentFlags().StringVar(&f.gasFile, "gas", "", "YAML gas schedule (default: built-in schedule)")
	cmd.PersistentFlags().Uint64Var(&f.gasLimit, "gas-limit", 1_000_000, "gas available to the session")
	cmd.PersistentFlags().BoolVar(&f.showMetrics, "metrics", false, "print call metrics after the call")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "length <n...>",
			Short: "Call vector::length on a vector<u64>",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				vec := entities.NewVector()
				for _, s := range args {
					n, err := strconv.ParseUint(s, 10, 64)
					if err != nil {
						return fmt.Errorf("element %q: %w", s, err)
					}
					vec.Elems = append(vec.Elems, entities.U64(n))
				}
				return runDemo(cmd.OutOrStdout(), a, f, "vector", "length",
					[]entities.Type{entities.U64Type}, []entities.Value{vec})
			},
		},
		&cobra.Command{
			Use:   "sha3 <text>",
			Short: "Call hash::sha3_256 on the bytes of text",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDemo(cmd.OutOrStdout(), a, f, "hash", "sha3_256",
					nil, []entities.Value{entities.BytesVector([]byte(args[0]))})
			},
		},
		&cobra.Command{
			Use:   "wasm <file> <export> [n...]",
			Short: "Register an i64 export of a wasm module as wasm::<export> and call it",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWasmDemo(cmd.Context(), cmd.OutOrStdout(), a, f, args[0], args[1], args[2:])
			},
		},
	)
	return cmd
}

func runWasmDemo(ctx context.Context, out io.Writer, a *app, f *demoFlags, path, export string, params []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	wasm, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read wasm module: %w", err)
	}

	runtime := wazero.NewRuntime(ctx)
	defer func() { _ = runtime.Close(ctx) }()

	mod, err := wasmnatives.LoadModule(ctx, runtime, wasm)
	if err != nil {
		return err
	}
	fn, err := mod.Native(export, gas.NativeWasmCall)
	if err != nil {
		return err
	}
	table, err := natives.MakeTable(a.address, []natives.RawEntry{{Module: "wasm", Function: export, Func: fn}})
	if err != nil {
		return err
	}

	args := make([]entities.Value, len(params))
	for i, s := range params {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("argument %q: %w", s, err)
		}
		args[i] = entities.U64(n)
	}
	return runDemo(out, a, f, "wasm", export, nil, args, table)
}

func runDemo(out io.Writer, a *app, f *demoFlags, module, function string, tyArgs []entities.Type, args []entities.Value, extra ...natives.Table) error {
	table := gas.DefaultCostTable()
	if f.gasFile != "" {
		cfg, err := gas.LoadConfigFile(f.gasFile)
		if err != nil {
			return err
		}
		table = cfg.CostTable()
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	opts := make([]natives.RegistryOption, 0, len(extra)+1)
	for _, t := range extra {
		opts = append(opts, natives.WithTable(t))
	}
	opts = append(opts, natives.WithMiddleware(
		natives.PanicRecoveryMiddleware(),
		natives.LoggingMiddleware(a.logger),
		collector.Middleware(),
	))
	registry, err := natives.NewRegistry(stdlib.Table(a.address), opts...)
	if err != nil {
		return err
	}

	resolver := loader.NewResolver(loader.New())
	rt := vm.NewRuntime(registry, resolver, vm.WithLogger(a.logger))
	session := rt.NewSession(memstore.New(resolver), gas.NewStatus(table, f.gasLimit), nil)

	outcome, err := session.CallNative(a.address, module, function, tyArgs, args)
	if err != nil {
		return err
	}

	if code, aborted := outcome.Aborted(); aborted {
		fmt.Fprintf(out, "aborted: %d\n", code)
	} else {
		for _, v := range outcome.Values {
			fmt.Fprintf(out, "value: %s\n", formatResult(v))
		}
	}
	fmt.Fprintf(out, "gas used: %d\n", outcome.GasUsed)

	if f.showMetrics {
		return printMetrics(out, reg)
	}
	return nil
}

func formatResult(v entities.Value) string {
	if vec, ok := v.(*entities.Vector); ok {
		if b, ok := vec.Bytes(); ok && vec.Len() > 0 {
			return fmt.Sprintf("0x%x", b)
		}
	}
	return entities.FormatValue(v)
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			var value string
			switch {
			case m.GetCounter() != nil:
				value = strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64)
			case m.GetHistogram() != nil:
				value = fmt.Sprintf("count=%d sum=%g", m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			default:
				continue
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %s", mf.GetName(), strings.Join(labels, ","), value))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return nil
}
