package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runmap/marathon-map/internal/marathon"
	"github.com/runmap/marathon-map/internal/site"
	"github.com/runmap/marathon-map/internal/utils"
)

func newRouteCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Manage event route polylines.",
	}

	var maxPoints int
	importCmd := &cobra.Command{
		Use:   "import <event-id> <file.gpx>",
		Short: "Replace the route of an event with the track of a GPX file.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id '%s'", args[0])
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if maxPoints == 0 {
				maxPoints = cfg.Map.MaxRoutePoints
			}

			eventsFile := site.PathBuilder(cfg.DataDir).Path("events.json")
			events, err := marathon.LoadEvents(eventsFile)
			if err != nil {
				return err
			}
			event := marathon.FindEvent(events, id)
			if event == nil {
				return fmt.Errorf("no event with id %d", id)
			}

			buf, err := utils.ReadFile(args[1])
			if err != nil {
				return err
			}
			route, err := marathon.RouteFromGPX(buf)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			event.Route = marathon.SimplifyRoute(route, maxPoints)

			slog.Info("-- imported route",
				"event", event.Name,
				"points", len(route),
				"kept", len(event.Route),
				"length_km", fmt.Sprintf("%.2f", marathon.RouteLengthKm(event.Route)),
			)
			return marathon.SaveEvents(events, eventsFile)
		},
	}
	importCmd.Flags().IntVar(&maxPoints, "max-points", 0, "maximum number of route points (default from config)")

	cmd.AddCommand(importCmd)
	return cmd
}
