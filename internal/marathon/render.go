package marathon

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

type jsEvent struct {
	ID       int          `json:"id"`
	Url      string       `json:"url"`
	Name     string       `json:"name"`
	Date     string       `json:"date"`
	Start    string       `json:"start"`
	Type     string       `json:"type"`
	Distance string       `json:"distance"`
	Ascent   string       `json:"ascent"`
	Time     string       `json:"time"`
	Link     string       `json:"link"`
	Lat      float64      `json:"lat"`
	Lng      float64      `json:"lng"`
	Tags     Tags         `json:"tags"`
	Rating   string       `json:"rating"`
	Effort   float64      `json:"effort"`
	HasNotes bool         `json:"hasNotes"`
	Route    [][2]float64 `json:"route"`
}

// JsData is the payload the browser script filters and draws.
type JsData struct {
	Events          []*Event
	Tiles           []TileLayer
	RouteMinZoom    int
	RoutePrecision  int
	TileStorageKey  string
	DefaultLocation Coordinates
	DefaultZoom     int
}

func roundRoute(route [][2]float64, digits int) [][2]float64 {
	if digits <= 0 {
		return route
	}
	f := math.Pow(10, float64(digits))
	rounded := make([][2]float64, 0, len(route))
	for _, c := range route {
		rounded = append(rounded, [2]float64{math.Round(c[0]*f) / f, math.Round(c[1]*f) / f})
	}
	return rounded
}

func RenderJs(data JsData, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0770); err != nil {
		return err
	}

	out, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer out.Close()

	events := make([]jsEvent, 0, len(data.Events))
	for _, event := range data.Events {
		events = append(events, jsEvent{
			ID:       event.ID,
			Url:      event.Url(),
			Name:     event.Name,
			Date:     event.Date,
			Start:    event.Start,
			Type:     event.Type,
			Distance: event.Distance,
			Ascent:   event.Ascent,
			Time:     event.Time,
			Link:     event.Link,
			Lat:      event.Location.Lat,
			Lng:      event.Location.Lng,
			Tags:     event.Tags,
			Rating:   event.RatingF(),
			Effort:   EffortScore(event),
			HasNotes: !event.Notes.Empty(),
			Route:    roundRoute(event.Route, data.RoutePrecision),
		})
	}

	settings := map[string]interface{}{
		"routeMinZoom":   data.RouteMinZoom,
		"tileStorageKey": data.TileStorageKey,
		"center":         []float64{data.DefaultLocation.Lat, data.DefaultLocation.Lng},
		"zoom":           data.DefaultZoom,
	}

	blocks := []struct {
		name  string
		value interface{}
	}{
		{"marathons", events},
		{"tags", AllTagOptions(data.Events)},
		{"tiles", data.Tiles},
		{"settings", settings},
	}
	for _, block := range blocks {
		buf, err := json.Marshal(block.value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", block.name, err)
		}
		if _, err := fmt.Fprintf(out, "var %s = %s;\n", block.name, buf); err != nil {
			return err
		}
	}

	return nil
}
