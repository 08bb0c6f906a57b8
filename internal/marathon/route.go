package marathon

import (
	"fmt"

	"github.com/jftuga/geodist"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
	simplifier "github.com/yrsh/simplify-go"
)

const (
	initialPrecision = 0.00001
	deltaPrecision   = 0.000001
)

// SimplifyRoute thins a route with increasing tolerance until at most
// allowedPoints remain. Start and finish are always kept.
func SimplifyRoute(route [][2]float64, allowedPoints int) [][2]float64 {
	if allowedPoints < 2 || len(route) <= allowedPoints {
		return route
	}

	precision := initialPrecision
	s := make([][]float64, 0, len(route))
	for _, c := range route {
		s = append(s, []float64{c[0], c[1]})
	}
	for len(s) > allowedPoints {
		s = simplifier.Simplify(s, precision, true)
		precision += deltaPrecision
	}

	simplified := make([][2]float64, 0, len(s))
	for _, c := range s {
		simplified = append(simplified, [2]float64{c[0], c[1]})
	}
	return simplified
}

// RouteFromGPX collects the points of all tracks, or of all routes if the
// file has no tracks, as [lat, lng] pairs.
func RouteFromGPX(data []byte) ([][2]float64, error) {
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing gpx: %w", err)
	}

	route := make([][2]float64, 0)
	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				route = append(route, [2]float64{p.Latitude, p.Longitude})
			}
		}
	}
	if len(route) == 0 {
		for _, r := range g.Routes {
			for _, p := range r.Points {
				route = append(route, [2]float64{p.Latitude, p.Longitude})
			}
		}
	}

	if len(route) < 2 {
		return nil, fmt.Errorf("gpx contains no route (%d points)", len(route))
	}
	return route, nil
}

func RouteLengthKm(route [][2]float64) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		a := geodist.Coord{Lat: route[i-1][0], Lon: route[i-1][1]}
		b := geodist.Coord{Lat: route[i][0], Lon: route[i][1]}
		_, km := geodist.HaversineDistance(a, b)
		total += km
	}
	return total
}

// RoutesGeoJSON exports every event as a start point plus its route line.
func RoutesGeoJSON(events []*Event) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, event := range events {
		point := geojson.NewFeature(orb.Point{event.Location.Lng, event.Location.Lat})
		point.Properties["id"] = event.ID
		point.Properties["name"] = event.Name
		point.Properties["date"] = event.Date
		point.Properties["type"] = event.Type
		point.Properties["distance"] = event.Distance
		fc.Append(point)

		if !event.HasRoute() {
			continue
		}
		line := make(orb.LineString, 0, len(event.Route))
		for _, c := range event.Route {
			line = append(line, orb.Point{c[1], c[0]})
		}
		track := geojson.NewFeature(line)
		track.Properties["id"] = event.ID
		track.Properties["name"] = event.Name
		track.Properties["length_km"] = RouteLengthKm(event.Route)
		fc.Append(track)
	}
	return fc.MarshalJSON()
}
