package marathon

import (
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	weightDistance = 0.40
	weightAscent   = 0.20
	weightDuration = 0.20
	weightExertion = 0.20

	capDistanceKm = 100.0
	capAscentM    = 5000.0
	capDuration   = 24 * time.Hour
	capExertion   = 5.0
)

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type RatingAverages struct {
	Exertion          float64
	EventOrganisation float64
	Location          float64
	Enjoyment         float64
	Rated             int
}

type EventEffort struct {
	Event *Event
	Score float64
}

// Summary holds the derived statistics shown in the summary dialog.
type Summary struct {
	Count           int
	TotalDistanceKm float64
	TotalAscentM    float64
	TotalTime       time.Duration
	Longest         *Event
	Types           []TypeCount
	Highest         *Event
	Lowest          *Event
	Averages        RatingAverages
	Efforts         []EventEffort
	TotalEffort     float64
}

func ratio(value, limit float64) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(value/limit, 1)
}

// EffortScore rates how demanding a race was on a 0-100 scale.
func EffortScore(event *Event) float64 {
	distance, _ := event.DistanceKm()
	ascent, _ := event.AscentM()
	duration, _ := event.Duration()

	score := weightDistance*ratio(distance, capDistanceKm) +
		weightAscent*ratio(ascent, capAscentM) +
		weightDuration*ratio(float64(duration), float64(capDuration)) +
		weightExertion*ratio(float64(event.Ratings.Exertion), capExertion)
	return math.Round(score*1000) / 10
}

func Summarize(events []*Event) Summary {
	summary := Summary{Count: len(events), Types: make([]TypeCount, 0), Efforts: make([]EventEffort, 0, len(events))}

	longest := -1.0
	typeCounts := make(map[string]int)
	typeOrder := make([]string, 0)
	var sumExertion, sumOrganisation, sumLocation, sumEnjoyment int

	for _, event := range events {
		if distance, err := event.DistanceKm(); err == nil {
			summary.TotalDistanceKm += distance
			if distance > longest {
				longest = distance
				summary.Longest = event
			}
		}
		if ascent, err := event.AscentM(); err == nil {
			summary.TotalAscentM += ascent
		}
		if d, err := event.Duration(); err == nil {
			summary.TotalTime += d
		}

		if _, ok := typeCounts[event.Type]; !ok {
			typeOrder = append(typeOrder, event.Type)
		}
		typeCounts[event.Type] += 1

		effort := EffortScore(event)
		summary.Efforts = append(summary.Efforts, EventEffort{event, effort})
		summary.TotalEffort += effort

		r := event.Ratings
		if !r.Rated() {
			continue
		}
		summary.Averages.Rated += 1
		sumExertion += r.Exertion
		sumOrganisation += r.EventOrganisation
		sumLocation += r.Location
		sumEnjoyment += r.Enjoyment
		if h := summary.Highest; h == nil || r.Enjoyment > h.Ratings.Enjoyment ||
			(r.Enjoyment == h.Ratings.Enjoyment && event.ID < h.ID) {
			summary.Highest = event
		}
		if l := summary.Lowest; l == nil || r.Enjoyment < l.Ratings.Enjoyment ||
			(r.Enjoyment == l.Ratings.Enjoyment && event.ID < l.ID) {
			summary.Lowest = event
		}
	}

	for _, t := range typeOrder {
		summary.Types = append(summary.Types, TypeCount{t, typeCounts[t]})
	}
	sort.SliceStable(summary.Types, func(i, j int) bool {
		return summary.Types[i].Count > summary.Types[j].Count
	})

	if n := float64(summary.Averages.Rated); n > 0 {
		summary.Averages.Exertion = float64(sumExertion) / n
		summary.Averages.EventOrganisation = float64(sumOrganisation) / n
		summary.Averages.Location = float64(sumLocation) / n
		summary.Averages.Enjoyment = float64(sumEnjoyment) / n
	}
	summary.TotalEffort = math.Round(summary.TotalEffort*10) / 10

	return summary
}

var printer = message.NewPrinter(language.English)

func (s Summary) DistanceF() string {
	return printer.Sprintf("%.1f km", s.TotalDistanceKm)
}

func (s Summary) AscentF() string {
	return printer.Sprintf("%.0f m", s.TotalAscentM)
}

func (s Summary) TimeF() string {
	return fmtDuration(s.TotalTime)
}

func (s Summary) EffortF() string {
	return printer.Sprintf("%.1f", s.TotalEffort)
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d = d - m*time.Minute
	s := d / time.Second

	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
