package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/runmap/marathon-map/internal/config"
	"github.com/runmap/marathon-map/internal/marathon"
	"github.com/runmap/marathon-map/internal/utils"
)

const TileStorageKey = "marathon-map.tile"

// Dataset is everything loaded from the data directory.
type Dataset struct {
	Events     []*marathon.Event
	Future     *marathon.FutureEvents
	Challenges []marathon.Challenge
}

// LoadDataset reads the bundled JSON files. Future events and challenges are
// optional.
func LoadDataset(dataDir string, logger *slog.Logger) (*Dataset, error) {
	data := PathBuilder(dataDir)

	events, err := marathon.LoadEvents(data.Path("events.json"))
	if err != nil {
		return nil, err
	}
	for _, err := range marathon.Validate(events) {
		logger.Warn("invalid event data", "error", err)
	}

	future, err := marathon.LoadFutureEvents(data.Path("future-events.json"))
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no future events", "dir", dataDir)
		future = &marathon.FutureEvents{}
	} else if err != nil {
		return nil, err
	}

	challenges, err := marathon.LoadChallenges(data.Path("challenges.json"))
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no challenges", "dir", dataDir)
		challenges = nil
	} else if err != nil {
		return nil, err
	}

	return &Dataset{events, future, challenges}, nil
}

type asset struct {
	url  string
	file string
}

func downloadAssets(ctx context.Context, cfg *config.Config, now time.Time) error {
	fileAge1w := now.Add(-24 * 7 * time.Hour)
	download := PathBuilder(cfg.DownloadDir)
	leafletUrl := fmt.Sprintf("https://unpkg.com/leaflet@%s/dist", cfg.Assets.LeafletVersion)
	bulmaUrl := fmt.Sprintf("https://unpkg.com/bulma@%s/css", cfg.Assets.BulmaVersion)

	assets := []asset{
		{leafletUrl + "/leaflet.js", download.Path("leaflet", "leaflet.js")},
		{leafletUrl + "/leaflet.css", download.Path("leaflet", "leaflet.css")},
		{leafletUrl + "/images/marker-icon.png", download.Path("leaflet", "marker-icon.png")},
		{leafletUrl + "/images/marker-icon-2x.png", download.Path("leaflet", "marker-icon-2x.png")},
		{leafletUrl + "/images/marker-shadow.png", download.Path("leaflet", "marker-shadow.png")},
		{bulmaUrl + "/bulma.min.css", download.Path("bulma", "bulma.css")},
	}
	for _, a := range assets {
		if err := utils.DownloadFileIfOlder(ctx, a.url, a.file, fileAge1w); err != nil {
			return fmt.Errorf("while downloading %s to %s: %w", a.url, a.file, err)
		}
	}
	return nil
}

// Generate renders the complete static site into cfg.OutputDir.
func Generate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	now := time.Now()
	data := PathBuilder(cfg.DataDir)
	download := PathBuilder(cfg.DownloadDir)
	output := cfg.OutputDir

	dataset, err := LoadDataset(cfg.DataDir, logger)
	if err != nil {
		return err
	}
	events := dataset.Events
	logger.Info("-- loaded events", "count", len(events))

	if cfg.Map.MaxRoutePoints > 0 {
		for _, event := range events {
			before := len(event.Route)
			event.Route = marathon.SimplifyRoute(event.Route, cfg.Map.MaxRoutePoints)
			if before != len(event.Route) {
				logger.Debug("-- simplified route", "event", event.ID, "before", before, "after", len(event.Route))
			}
		}
	}

	if err := downloadAssets(ctx, cfg, now); err != nil {
		return err
	}

	tiles := cfg.Tiles()
	jsData := marathon.JsData{
		Events:          events,
		Tiles:           tiles,
		RouteMinZoom:    cfg.Map.RouteMinZoom,
		RoutePrecision:  cfg.Map.RoutePrecision,
		TileStorageKey:  TileStorageKey,
		DefaultLocation: cfg.Map.Center,
		DefaultZoom:     cfg.Map.Zoom,
	}
	if err := marathon.RenderJs(jsData, download.Path("data.js")); err != nil {
		return fmt.Errorf("failed to render data: %w", err)
	}

	geojson, err := marathon.RoutesGeoJSON(events)
	if err != nil {
		return fmt.Errorf("failed to render routes: %w", err)
	}
	if err := utils.WriteFile(filepath.Join(output, "routes.geojson"), geojson); err != nil {
		return err
	}

	copies := []struct {
		src, dst string
		js       bool
	}{
		{download.Path("leaflet", "leaflet.js"), "leaflet-HASH.js", true},
		{download.Path("data.js"), "data-HASH.js", true},
		{data.Path("static", "main.js"), "main-HASH.js", true},
		{download.Path("bulma", "bulma.css"), "bulma-HASH.css", false},
		{download.Path("leaflet", "leaflet.css"), "leaflet-HASH.css", false},
		{data.Path("static", "style.css"), "style-HASH.css", false},
	}
	jsFiles := make([]string, 0)
	cssFiles := make([]string, 0)
	for _, c := range copies {
		name, err := utils.CopyHash(c.src, c.dst, output)
		if err != nil {
			return fmt.Errorf("while copying %s: %w", c.src, err)
		}
		if c.js {
			jsFiles = append(jsFiles, name)
		} else {
			cssFiles = append(cssFiles, name)
		}
	}
	for _, image := range []string{"marker-icon.png", "marker-icon-2x.png", "marker-shadow.png"} {
		if _, err := utils.CopyHash(download.Path("leaflet", image), filepath.Join("images", image), output); err != nil {
			return fmt.Errorf("while copying %s: %w", image, err)
		}
	}

	upcoming := marathon.Upcoming(dataset.Future, now)
	countdown := marathon.Countdown{}
	if len(upcoming) > 0 {
		countdown = marathon.TimeLeft(upcoming[0].When, now)
	}
	done, total := marathon.Progress(dataset.Challenges)

	renderData := RenderData{
		Events:     events,
		Tags:       marathon.AllTagOptions(events),
		Categories: marathon.Categories,
		Summary:    marathon.Summarize(events),
		Challenges: dataset.Challenges,
		Done:       done,
		Total:      total,
		Upcoming:   upcoming,
		Countdown:  countdown,
		Future:     dataset.Future,
		Tiles:      tiles,
		StorageKey: TileStorageKey,
		JsFiles:    jsFiles,
		CssFiles:   cssFiles,
		Timestamp:  now.Format("2006-01-02 15:04:05"),
	}

	t := PathBuilder(data.Path("templates"))
	partials := []string{t.Path("header.html"), t.Path("footer.html"), t.Path("tail.html")}
	pages := []struct {
		file, title, description, nav string
	}{
		{"index.html", cfg.Site.Title, cfg.Site.Description, "map"},
		{"summary.html", cfg.Site.Title + " - Summary", "Statistics over all finished races", "summary"},
		{"challenges.html", cfg.Site.Title + " - Challenges", "Running challenges and their progress", "challenges"},
		{"countdown.html", cfg.Site.Title + " - Countdown", "Countdown to the next registered race", "countdown"},
		{"future.html", cfg.Site.Title + " - Future Events", "Registered and deferred races", "future"},
		{"settings.html", cfg.Site.Title + " - Settings", "Map theme selection", "settings"},
	}
	for _, page := range pages {
		renderData.set(page.title, page.description, cfg.Site.BaseURL+page.file, page.nav)
		files := append([]string{t.Path(page.file)}, partials...)
		if err := renderData.render(filepath.Join(output, page.file), files...); err != nil {
			return fmt.Errorf("while rendering '%s': %w", page.file, err)
		}
	}

	renderData.BasePath = "../"
	for _, event := range events {
		sections, err := renderSections(event.Notes)
		if err != nil {
			return fmt.Errorf("event %d: %w", event.ID, err)
		}
		renderData.Event = event
		renderData.Prev, renderData.Next = marathon.Neighbors(events, event.ID)
		renderData.Sections = sections
		renderData.set(fmt.Sprintf("%s - %s", event.Name, cfg.Site.Title), fmt.Sprintf("Notes and ratings for %s", event.Name), cfg.Site.BaseURL+event.Url(), "event")
		files := append([]string{t.Path("event.html")}, partials...)
		if err := renderData.render(filepath.Join(output, event.Url()), files...); err != nil {
			return fmt.Errorf("while rendering '%s': %w", event.Url(), err)
		}
	}

	logger.Info("-- generated site", "dir", output, "events", len(events), "upcoming", len(upcoming))
	return nil
}
