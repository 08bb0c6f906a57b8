package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/runmap/marathon-map/internal/marathon"
)

// Config holds the generator and preview server settings. Every key is
// optional; missing values fall back to Default().
type Config struct {
	// DataDir contains events.json, future-events.json, challenges.json,
	// templates/ and static/.
	DataDir string `yaml:"data_dir"`

	// DownloadDir caches third-party assets between runs.
	DownloadDir string `yaml:"download_dir"`

	// OutputDir receives the generated site.
	OutputDir string `yaml:"output_dir"`

	Site struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"site"`

	Map struct {
		Center       marathon.Coordinates `yaml:"center"`
		Zoom         int                  `yaml:"zoom"`
		RouteMinZoom int                  `yaml:"route_min_zoom"`
		// MaxRoutePoints bounds the size of each route polyline in data.js.
		MaxRoutePoints int                  `yaml:"max_route_points"`
		RoutePrecision int                  `yaml:"route_precision"`
		Tiles          []marathon.TileLayer `yaml:"tiles"`
		// APIKeyEnv names the environment variable holding the Stadia key.
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"map"`

	Assets struct {
		LeafletVersion string `yaml:"leaflet_version"`
		BulmaVersion   string `yaml:"bulma_version"`
	} `yaml:"assets"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

func Default() *Config {
	cfg := &Config{
		DataDir:     "data",
		DownloadDir: ".download",
		OutputDir:   ".output",
	}
	cfg.Site.Title = "Marathon Map"
	cfg.Site.Description = "Map of all marathons and ultra-marathons I have finished"
	cfg.Site.BaseURL = "/"
	cfg.Map.Center = marathon.Coordinates{Lat: 51.505, Lng: -0.09}
	cfg.Map.Zoom = 3
	cfg.Map.RouteMinZoom = 11
	cfg.Map.MaxRoutePoints = 300
	cfg.Map.RoutePrecision = 5
	cfg.Map.Tiles = marathon.DefaultTiles()
	cfg.Map.APIKeyEnv = "STADIA_API_KEY"
	// renovate: datasource=npm depName=leaflet
	cfg.Assets.LeafletVersion = "1.9.4"
	// renovate: datasource=npm depName=bulma
	cfg.Assets.BulmaVersion = "0.9.4"
	cfg.Server.Addr = "localhost:8080"
	return cfg
}

// Load reads a YAML file on top of the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if len(cfg.Map.Tiles) == 0 {
		return fmt.Errorf("map.tiles must not be empty")
	}
	for _, tile := range cfg.Map.Tiles {
		if tile.Name == "" || tile.URL == "" {
			return fmt.Errorf("map.tiles: every tile needs a name and an url")
		}
	}
	if !cfg.Map.Center.IsValid() {
		return fmt.Errorf("map.center is not a valid coordinate")
	}
	if cfg.Map.MaxRoutePoints != 0 && cfg.Map.MaxRoutePoints < 2 {
		return fmt.Errorf("map.max_route_points must be at least 2")
	}
	return nil
}

// Tiles returns the configured tile layers with the API key applied.
func (cfg *Config) Tiles() []marathon.TileLayer {
	key := ""
	if cfg.Map.APIKeyEnv != "" {
		key = os.Getenv(cfg.Map.APIKeyEnv)
	}
	return marathon.WithAPIKey(cfg.Map.Tiles, key)
}
