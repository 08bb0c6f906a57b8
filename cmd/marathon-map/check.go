package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/runmap/marathon-map/internal/marathon"
	"github.com/runmap/marathon-map/internal/site"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the bundled event data.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			events, err := marathon.LoadEvents(site.PathBuilder(cfg.DataDir).Path("events.json"))
			if err != nil {
				return err
			}

			errs := marathon.Validate(events)
			for _, err := range errs {
				slog.Error("invalid event data", "error", err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d problem(s) in %d events", len(errs), len(events))
			}

			summary := marathon.Summarize(events)
			fmt.Fprintf(cmd.OutOrStdout(), "%d events, %s, %s ascent, effort %s\n", summary.Count, summary.DistanceF(), summary.AscentF(), summary.EffortF())
			return nil
		},
	}
}
