package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runmap/marathon-map/internal/marathon"
)

var dataDir = filepath.Join("..", "..", "data")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "--data", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "4 events")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.json"), []byte(`[
		{"id": 1, "name": "", "date": "never", "distance": "42.2 km", "time": "4:00:00"}
	]`), 0644))
	_, err = run(t, "check", "--data", dir)
	assert.ErrorContains(t, err, "2 problem(s) in 1 events")
}

func TestRouteImport(t *testing.T) {
	dir := t.TempDir()
	events, err := os.ReadFile(filepath.Join(dataDir, "events.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.json"), events, 0644))

	gpxFile := filepath.Join(dir, "amsterdam.gpx")
	require.NoError(t, os.WriteFile(gpxFile, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg>
    <trkpt lat="52.3434" lon="4.8540"></trkpt>
    <trkpt lat="52.3600" lon="4.8800"></trkpt>
    <trkpt lat="52.3676" lon="4.9041"></trkpt>
  </trkseg></trk>
</gpx>`), 0644))

	_, err = run(t, "route", "import", "2", gpxFile, "--data", dir)
	require.NoError(t, err)

	loaded, err := marathon.LoadEvents(filepath.Join(dir, "events.json"))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{52.3434, 4.8540}, {52.3600, 4.8800}, {52.3676, 4.9041}}, marathon.FindEvent(loaded, 2).Route)

	_, err = run(t, "route", "import", "99", gpxFile, "--data", dir)
	assert.ErrorContains(t, err, "no event with id 99")

	_, err = run(t, "route", "import", "two", gpxFile, "--data", dir)
	assert.ErrorContains(t, err, "invalid event id")
}
