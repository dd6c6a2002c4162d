// Command gpuinfo lists the graphics adapters of the host and their
// normalized capabilities.
//
// Usage:
//
//	gpuinfo [--output table|markdown|json|yaml] [--backend vulkan,gl]
//	        [--replay host.yaml] [--config path] [--log-level debug] [--no-color]
//	gpuinfo version
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/wgpu/hal"
	"github.com/spf13/cobra"

	"github.com/gogpu/gpuinfo"
	_ "github.com/gogpu/gpuinfo/backends"
	"github.com/gogpu/gpuinfo/report"
	"github.com/gogpu/gpuinfo/snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "gpuinfo: %v\n", err)
	for _, h := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s\n", h)
	}
}

type flags struct {
	config   string
	output   string
	backends []string
	replay   string
	logLevel string
	noColor  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "gpuinfo",
		Short: "Report GPU adapters and their capabilities",
		Long: `gpuinfo probes every graphics backend available on this host, lists the
adapters each one exposes and reports their features and limits in one
canonical vocabulary.

Backends that fail to initialize are reported with the reason; the run only
fails when no backend is available at all.

Examples:
  gpuinfo                          # table of every adapter
  gpuinfo -o json                  # machine-readable report
  gpuinfo --backend vulkan,gl      # probe selected backends only
  gpuinfo --replay lab-01.yaml     # report a recorded host`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, &f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "config file (default $XDG_CONFIG_HOME/gpuinfo/config.toml)")
	fl.StringVarP(&f.output, "output", "o", "table", "output format: table, markdown, json, yaml")
	fl.StringSliceVarP(&f.backends, "backend", "b", nil, "backends to probe (default all)")
	fl.StringVar(&f.replay, "replay", "", "report a recorded host snapshot instead of probing")
	fl.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored table output")

	cmd.AddCommand(newVersionCmd(stdout))
	return cmd
}

// resolveConfig layers explicitly set flags over the config file.
func resolveConfig(cmd *cobra.Command, f *flags) (config, error) {
	path, explicit := defaultConfigPath(), false
	if cmd.Flags().Changed("config") {
		path, explicit = f.config, true
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("backend") {
		cfg.Backends = f.backends
	}
	if changed("replay") {
		cfg.Replay = f.replay
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.noColor {
		cfg.Color = false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = false
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config, stdout, stderr io.Writer) error {
	lvl, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
	gpuinfo.SetLogger(logger)
	hal.SetLogger(logger)
	defer func() {
		gpuinfo.SetLogger(nil)
		hal.SetLogger(nil)
	}()

	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	opts := []gpuinfo.Option{
		gpuinfo.WithQueryConcurrency(cfg.QueryConcurrency),
		gpuinfo.WithShaderCheck(cfg.ShaderCheck),
	}
	if len(cfg.Backends) > 0 {
		bs, err := parseBackends(cfg.Backends)
		if err != nil {
			return err
		}
		opts = append(opts, gpuinfo.WithBackends(bs...))
	}
	if cfg.Replay != "" {
		host, err := snapshot.Load(cfg.Replay)
		if err != nil {
			return err
		}
		logger.Info("gpuinfo: replaying snapshot", "host", host.Name, "path", cfg.Replay)
		opts = append(opts, gpuinfo.WithDrivers(host.Drivers()...))
	}

	model, err := gpuinfo.Collect(ctx, opts...)
	if err != nil {
		return err
	}
	return report.Write(stdout, model, format, report.WithColor(cfg.Color))
}

// parseBackends accepts both repeated flags and comma-separated lists.
func parseBackends(names []string) ([]gpuinfo.Backend, error) {
	var out []gpuinfo.Backend
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			b, err := gpuinfo.ParseBackend(part)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
	}
	return out, nil
}
