package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runmap/marathon-map/internal/config"
	"github.com/runmap/marathon-map/internal/utils"
)

type options struct {
	configFile string
	verbose    bool
	dataDir    string
	outputDir  string
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// load applies flag overrides on top of the config file.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "marathon-map",
		Short:         "Build and preview the marathon map site from the bundled race log.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := opts.logger()
			slog.SetDefault(logger)
			utils.SetLogger(logger)
			utils.SetDownloadDelay(500 * time.Millisecond)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.dataDir, "data", "", "the data directory (overrides config)")
	root.PersistentFlags().StringVar(&opts.outputDir, "output", "", "the output directory (overrides config)")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newRouteCmd(opts))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("marathon-map failed", "error", err)
		os.Exit(1)
	}
}
