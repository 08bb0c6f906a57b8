package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runmap/marathon-map/internal/marathon"
	"github.com/runmap/marathon-map/internal/site"
)

func ptr(s string) *string {
	return &s
}

func testServer(t *testing.T) *Server {
	t.Helper()
	events := []*marathon.Event{
		{
			ID: 1, Name: "London", Date: "28/04/19", Distance: "42.2 km", Time: "4:12:33", Type: "Marathon",
			Tags:    marathon.Tags{Date: []string{"2019"}, Region: []string{"Europe", "UK"}, Type: []string{"Marathon"}},
			Ratings: marathon.Ratings{Exertion: 4, EventOrganisation: 5, Location: 5, Enjoyment: 5},
		},
		{
			ID: 2, Name: "Amsterdam", Date: "20/10/19", Distance: "42.2 km", Time: "3:58:02", Type: "Marathon",
			Tags:    marathon.Tags{Date: []string{"2019"}, Region: []string{"Europe"}, Type: []string{"Marathon"}},
			Ratings: marathon.Ratings{Exertion: 3, EventOrganisation: 4, Location: 4, Enjoyment: 3},
		},
		{
			ID: 3, Name: "CCC", Date: "26/08/22", Distance: "100 km", Ascent: "6100 m", Time: "26:41:10", Type: "Ultra-Marathon",
			Tags:    marathon.Tags{Date: []string{"2022"}, Region: []string{"Europe", "Alps"}, Type: []string{"Ultra"}},
			Ratings: marathon.Ratings{Exertion: 5, EventOrganisation: 5, Location: 5, Enjoyment: 4},
		},
	}
	future := &marathon.FutureEvents{}
	future.Registered.Marathon = []marathon.FutureEvent{
		{Date: "26/04/27", Location: "London, UK", Name: "London 2027"},
		{Date: "01/01/26", Location: "Past", Name: "Already run"},
	}
	future.Registered.UltraMarathon = []marathon.FutureEvent{
		{Date: "20/10/26", Location: "Somewhere", Name: "Soon", Distance: ptr("50 km")},
	}

	outputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "index.html"), []byte("<h1>map</h1>"), 0644))

	s := New(&site.Dataset{Events: events, Future: future}, outputDir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time {
		return time.Date(2026, time.October, 18, 12, 0, 0, 0, time.Local)
	}
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestEvents(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		target string
		want   []int
	}{
		{"/api/events", []int{1, 2, 3}},
		{"/api/events?region=UK,Alps", []int{1, 3}},
		{"/api/events?region=Europe&region=UK&mode=all", []int{1}},
		{"/api/events?date=2019&type=Ultra", []int{}},
	}
	for _, tt := range tests {
		rec := get(t, s, tt.target)
		require.Equal(t, http.StatusOK, rec.Code, tt.target)

		var events []marathon.Event
		decode(t, rec, &events)
		got := make([]int, 0, len(events))
		for _, e := range events {
			got = append(got, e.ID)
		}
		assert.Equal(t, tt.want, got, tt.target)
	}

	rec := get(t, s, "/api/events?mode=sometimes")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	assert.Contains(t, body["error"], "unknown mode")
}

func TestEvent(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/api/events/2")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ID     int     `json:"id"`
		Name   string  `json:"name"`
		Effort float64 `json:"effort"`
		Prev   *int    `json:"prev"`
		Next   *int    `json:"next"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Amsterdam", resp.Name)
	assert.Greater(t, resp.Effort, 0.0)
	require.NotNil(t, resp.Prev)
	require.NotNil(t, resp.Next)
	assert.Equal(t, 1, *resp.Prev)
	assert.Equal(t, 3, *resp.Next)

	rec = get(t, s, "/api/events/3?date=2022,2019&region=UK,Alps")
	require.Equal(t, http.StatusOK, rec.Code)
	resp.Prev, resp.Next = nil, nil
	decode(t, rec, &resp)
	require.NotNil(t, resp.Prev)
	assert.Equal(t, 1, *resp.Prev)
	assert.Nil(t, resp.Next)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/events/abc").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/events/99").Code)
}

func TestTags(t *testing.T) {
	rec := get(t, testServer(t), "/api/tags")
	require.Equal(t, http.StatusOK, rec.Code)

	var tags map[string][]string
	decode(t, rec, &tags)
	assert.Equal(t, []string{"2019", "2022"}, tags["date"])
	assert.Equal(t, []string{"Europe", "UK", "Alps"}, tags["region"])
	assert.Equal(t, []string{"Marathon", "Ultra"}, tags["type"])
}

func TestSummary(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp summaryResponse
	decode(t, rec, &resp)
	assert.Equal(t, 3, resp.Count)
	assert.InDelta(t, 184.4, resp.TotalDistanceKm, 1e-9)
	assert.Equal(t, 6100.0, resp.TotalAscentM)
	assert.Equal(t, "34:51:45", resp.TotalTime)
	require.NotNil(t, resp.Longest)
	assert.Equal(t, 3, *resp.Longest)
	require.NotNil(t, resp.Highest)
	assert.Equal(t, 1, *resp.Highest)
	require.NotNil(t, resp.Lowest)
	assert.Equal(t, 2, *resp.Lowest)
	assert.Equal(t, []marathon.TypeCount{{Type: "Marathon", Count: 2}, {Type: "Ultra-Marathon", Count: 1}}, resp.Types)
	assert.InDelta(t, 4.0, resp.Averages["enjoyment"], 1e-9)
	assert.Len(t, resp.Efforts, 3)

	rec = get(t, s, "/api/summary?type=Ultra")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = summaryResponse{}
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 3, *resp.Highest)
	assert.Equal(t, 3, *resp.Lowest)

	rec = get(t, s, "/api/summary?type=Swim")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = summaryResponse{}
	decode(t, rec, &resp)
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Types)
	assert.Empty(t, resp.Types)
	assert.Nil(t, resp.Highest)
	assert.Nil(t, resp.Longest)
}

func TestCountdown(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/api/countdown")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp countdownResponse
	decode(t, rec, &resp)
	assert.Equal(t, 0, resp.Index)
	assert.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.Event)
	assert.Equal(t, "Soon", resp.Event.Name)
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Equal(t, marathon.Countdown{Days: 1, Hours: 12}, resp.TimeLeft)

	rec = get(t, s, "/api/countdown?index=7")
	resp = countdownResponse{}
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.Index)
	assert.Equal(t, "London 2027", resp.Event.Name)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/countdown?index=x").Code)

	s.dataset.Future = nil
	rec = get(t, s, "/api/countdown")
	resp = countdownResponse{}
	decode(t, rec, &resp)
	assert.Zero(t, resp.Count)
	assert.Nil(t, resp.Event)
}

func TestStaticFiles(t *testing.T) {
	rec := get(t, testServer(t), "/index.html")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)

	rec = get(t, testServer(t), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>map</h1>")
}
