package marathon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/runmap/marathon-map/internal/utils"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

type Tags struct {
	Date   []string `json:"date"`
	Region []string `json:"region"`
	Type   []string `json:"type"`
}

type Ratings struct {
	Exertion          int `json:"exertion"`
	EventOrganisation int `json:"event_organisation"`
	Location          int `json:"location"`
	Enjoyment         int `json:"enjoyment"`
}

func (r Ratings) Rated() bool {
	return r.Enjoyment > 0
}

// Event is a single race of the personal race log.
type Event struct {
	ID       int          `json:"id"`
	Date     string       `json:"date"`
	Start    string       `json:"start"`
	Location Coordinates  `json:"location"`
	Name     string       `json:"name"`
	Distance string       `json:"distance"`
	Ascent   string       `json:"ascent"`
	Time     string       `json:"time"`
	Link     string       `json:"link"`
	Tags     Tags         `json:"tags"`
	Type     string       `json:"type"`
	Notes    Notes        `json:"notes"`
	Route    [][2]float64 `json:"route"`
	Ratings  Ratings      `json:"ratings"`
}

func (event Event) Slug() string {
	return fmt.Sprintf("%d", event.ID)
}

func (event Event) Url() string {
	return fmt.Sprintf("events/%d.html", event.ID)
}

func (event Event) GoogleMapsUrl() string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%f%%2C%f", event.Location.Lat, event.Location.Lng)
}

func (event Event) HasRoute() bool {
	return len(event.Route) > 1
}

func (event Event) RatingF() string {
	if !event.Ratings.Rated() {
		return "-"
	}
	return fmt.Sprintf("%d/5", event.Ratings.Enjoyment)
}

func (event Event) Tagged(category Category, tag string) bool {
	for _, t := range event.Tags.Get(category) {
		if t == tag {
			return true
		}
	}
	return false
}

// DistanceKm parses the free text distance ("42.2 km", "50k", "26.2 mi").
func (event Event) DistanceKm() (float64, error) {
	return parseDistance(event.Distance)
}

// AscentM parses the free text ascent ("1,200 m", "3900ft").
func (event Event) AscentM() (float64, error) {
	if strings.TrimSpace(event.Ascent) == "" {
		return 0, nil
	}
	return parseAscent(event.Ascent)
}

func (event Event) Duration() (time.Duration, error) {
	return parseDuration(event.Time)
}

func (event Event) When() (time.Time, error) {
	return parseDate(event.Date)
}

var reNumberUnit = regexp.MustCompile(`^\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

func splitNumberUnit(s string) (float64, string, error) {
	m := reNumberUnit.FindStringSubmatch(s)
	if m == nil {
		return 0, "", fmt.Errorf("cannot parse value: '%s'", s)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, "", fmt.Errorf("cannot parse value: '%s'; error: %v", s, err)
	}
	return value, strings.ToLower(m[2]), nil
}

func parseDistance(s string) (float64, error) {
	value, unit, err := splitNumberUnit(s)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "", "k", "km", "kms":
		return value, nil
	case "mi", "mile", "miles":
		return value * 1.609344, nil
	case "m":
		return value / 1000, nil
	}
	return 0, fmt.Errorf("unknown distance unit: '%s'", s)
}

func parseAscent(s string) (float64, error) {
	value, unit, err := splitNumberUnit(s)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "", "m", "hm":
		return value, nil
	case "ft", "feet":
		return value * 0.3048, nil
	}
	return 0, fmt.Errorf("unknown ascent unit: '%s'", s)
}

var reClock = regexp.MustCompile(`^\s*(\d+):(\d\d)(?::(\d\d))?\s*$`)

// parseDuration reads "h:mm:ss", "h:mm" (race times are never mm:ss) or Go
// duration strings like "26h 30m". The result is always positive.
func parseDuration(s string) (time.Duration, error) {
	d, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("time must be positive: '%s'", s)
	}
	return d, nil
}

func parseClock(s string) (time.Duration, error) {
	if m := reClock.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		ss := 0
		if m[3] != "" {
			ss, _ = strconv.Atoi(m[3])
		}
		if mm >= 60 || ss >= 60 {
			return 0, fmt.Errorf("cannot parse time: '%s'", s)
		}
		return time.Duration(h)*time.Hour + time.Duration(mm)*time.Minute + time.Duration(ss)*time.Second, nil
	}
	d, err := time.ParseDuration(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0, fmt.Errorf("cannot parse time: '%s'", s)
	}
	return d, nil
}

var reDateShort = regexp.MustCompile(`^\s*(\d\d)/(\d\d)/(\d\d)\s*$`)
var reDateLong = regexp.MustCompile(`^\s*(\d\d)/(\d\d)/(\d\d\d\d)\s*$`)
var reDateISO = regexp.MustCompile(`^\s*(\d\d\d\d)-(\d\d)-(\d\d)\s*$`)

func parseDate(s string) (time.Time, error) {
	dd := ""
	mm := ""
	yy := ""
	century := 0
	if m := reDateShort.FindStringSubmatch(s); m != nil {
		dd, mm, yy = m[1], m[2], m[3]
		century = 2000
	} else if m := reDateLong.FindStringSubmatch(s); m != nil {
		dd, mm, yy = m[1], m[2], m[3]
	} else if m := reDateISO.FindStringSubmatch(s); m != nil {
		dd, mm, yy = m[3], m[2], m[1]
	} else {
		return time.Time{}, fmt.Errorf("cannot parse date (regexp failed): %s", s)
	}

	day, _ := strconv.Atoi(dd)
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yy)
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("cannot parse date (month failed): %s", s)
	}

	date := time.Date(century+year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Day() != day {
		return time.Time{}, fmt.Errorf("cannot parse date (day failed): %s", s)
	}
	return date, nil
}

func LoadEvents(eventsJsonFile string) ([]*Event, error) {
	buf, err := utils.ReadFile(eventsJsonFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", eventsJsonFile, err)
	}

	var events []*Event
	if err := json.Unmarshal(buf, &events); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", eventsJsonFile, err)
	}

	for _, event := range events {
		if event.Route == nil {
			event.Route = make([][2]float64, 0)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// SaveEvents writes the dataset back in its bundled, indented form.
func SaveEvents(events []*Event, eventsJsonFile string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return err
	}
	return utils.WriteFile(eventsJsonFile, buf.Bytes())
}

func FindEvent(events []*Event, id int) *Event {
	for _, event := range events {
		if event.ID == id {
			return event
		}
	}
	return nil
}

func validRating(r int) bool {
	return r >= 0 && r <= 5
}

// Validate reports malformed records; it never stops at the first problem.
func Validate(events []*Event) []error {
	errs := make([]error, 0)
	seen := make(map[int]bool)
	for _, event := range events {
		if seen[event.ID] {
			errs = append(errs, fmt.Errorf("event %d: duplicate id", event.ID))
		}
		seen[event.ID] = true

		if event.Name == "" {
			errs = append(errs, fmt.Errorf("event %d: missing name", event.ID))
		}
		if !event.Location.IsValid() {
			errs = append(errs, fmt.Errorf("event %d: invalid location %f/%f", event.ID, event.Location.Lat, event.Location.Lng))
		}
		if _, err := event.When(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", event.ID, err))
		}
		if _, err := event.DistanceKm(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", event.ID, err))
		}
		if _, err := event.AscentM(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", event.ID, err))
		}
		if _, err := event.Duration(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", event.ID, err))
		}
		r := event.Ratings
		if !validRating(r.Exertion) || !validRating(r.EventOrganisation) || !validRating(r.Location) || !validRating(r.Enjoyment) {
			errs = append(errs, fmt.Errorf("event %d: ratings must be within 0..5", event.ID))
		}
		for i, p := range event.Route {
			if !(Coordinates{p[0], p[1]}).IsValid() {
				errs = append(errs, fmt.Errorf("event %d: invalid route point #%d", event.ID, i))
				break
			}
		}
	}
	return errs
}
