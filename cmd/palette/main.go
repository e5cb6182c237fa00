package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"color-palette/internal/api"
	"color-palette/internal/clipboard"
	"color-palette/internal/colorutil"
	"color-palette/internal/config"
	"color-palette/internal/metrics"
	"color-palette/internal/ui"
)

var version = "v1.0.0"

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	seed       uint64
	jsonOut    bool

	cfg    *config.Config
	source colorutil.Source
	sink   colorutil.TextSink
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "palette",
		Short:         "Generate color palettes and check WCAG contrast",
		Long:          `palette generates random colors and five-color palettes around a base color, converts between color representations and grades foreground/background pairs against WCAG AA and AAA.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultFile, "Path to JSON config file")
	root.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "Seed for reproducible colors (0 = random, overrides RANDOM_SEED)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print JSON instead of tables")

	root.AddCommand(
		newRandomCmd(a),
		newPaletteCmd(a),
		newContrastCmd(a),
		newCheckCmd(a),
		newDescribeCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	ui.SetDebug(cfg.Env.DebugLogging())

	seed := a.seed
	if seed == 0 {
		seed = cfg.Env.RandomSeed
	}
	if seed != 0 {
		a.source = colorutil.NewSeededSource(seed)
	} else {
		a.source = colorutil.DefaultSource()
	}

	if cfg.Env.NoClipboard {
		a.sink = clipboard.Disabled{}
	} else {
		a.sink = clipboard.System{}
	}
	return nil
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintBanner(version)
			ui.LogStatus("info", "Environment: "+a.cfg.Env.Env.String())

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if a.cfg.MetricsListen != "" {
				ms := metrics.NewMetricsServer(a.cfg.MetricsListen)
				ms.Start()
				ui.LogStatus("info", "Metrics: "+metricsURL(a.cfg.MetricsListen))
				defer ms.Shutdown(context.Background())
			}

			return api.NewServer(a.cfg, a.source, a.sink).Start(ctx)
		},
	}
}

// metricsURL turns a listen address into something a browser can open.
func metricsURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/metrics"
}

func main() {
	// Load .env file if it exists; plain env vars work too
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
