package marathon

import (
	"net/url"
	"strings"
)

// TileLayer is a map background style; see leaflet-extras/leaflet-providers.
type TileLayer struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	MinZoom     int    `json:"minZoom" yaml:"min_zoom"`
	MaxZoom     int    `json:"maxZoom" yaml:"max_zoom"`
	Attribution string `json:"attribution" yaml:"attribution"`
}

const (
	osmAttribution    = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	stadiaAttribution = `&copy; <a href="https://www.stadiamaps.com/" target="_blank">Stadia Maps</a> &copy; <a href="https://openmaptiles.org/" target="_blank">OpenMapTiles</a> &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	stamenAttribution = `&copy; <a href="https://www.stadiamaps.com/" target="_blank">Stadia Maps</a> &copy; <a href="https://www.stamen.com/" target="_blank">Stamen Design</a> &copy; <a href="https://openmaptiles.org/" target="_blank">OpenMapTiles</a> &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

func DefaultTiles() []TileLayer {
	return []TileLayer{
		{"OpenStreetMap Standard", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", 0, 20, osmAttribution},
		{"Stadia Alidade Smooth", "https://tiles.stadiamaps.com/tiles/alidade_smooth/{z}/{x}/{y}{r}.png", 0, 20, stadiaAttribution},
		{"Stadia Alidade Smooth Dark", "https://tiles.stadiamaps.com/tiles/alidade_smooth_dark/{z}/{x}/{y}{r}.png", 0, 20, stadiaAttribution},
		{"Stadia Stamen Toner", "https://tiles.stadiamaps.com/tiles/stamen_toner/{z}/{x}/{y}{r}.png", 0, 20, stamenAttribution},
	}
}

// TileByName falls back to the first tile layer for unknown names.
func TileByName(tiles []TileLayer, name string) TileLayer {
	for _, tile := range tiles {
		if tile.Name == name {
			return tile
		}
	}
	if len(tiles) == 0 {
		return TileLayer{}
	}
	return tiles[0]
}

func WithAPIKey(tiles []TileLayer, key string) []TileLayer {
	result := make([]TileLayer, 0, len(tiles))
	for _, tile := range tiles {
		if key != "" && strings.Contains(tile.URL, "stadiamaps.com") {
			sep := "?"
			if strings.Contains(tile.URL, "?") {
				sep = "&"
			}
			tile.URL = tile.URL + sep + "api_key=" + url.QueryEscape(key)
		}
		result = append(result, tile)
	}
	return result
}
