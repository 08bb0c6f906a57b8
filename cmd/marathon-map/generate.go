package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/runmap/marathon-map/internal/site"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var downloadDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the static site (map, summary, challenges, countdown, future events, settings).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if downloadDir != "" {
				cfg.DownloadDir = downloadDir
			}
			return site.Generate(cmd.Context(), cfg, slog.Default())
		},
	}
	cmd.Flags().StringVar(&downloadDir, "download", "", "the download cache directory (overrides config)")
	return cmd
}
