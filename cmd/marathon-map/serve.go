package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/runmap/marathon-map/internal/server"
	"github.com/runmap/marathon-map/internal/site"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	var generate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the generated site and serve the events API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := slog.Default()

			if generate {
				if err := site.Generate(cmd.Context(), cfg, logger); err != nil {
					return err
				}
			}

			dataset, err := site.LoadDataset(cfg.DataDir, logger)
			if err != nil {
				return err
			}
			return server.New(dataset, cfg.OutputDir, logger).ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&generate, "generate", false, "generate the site before serving")
	return cmd
}
