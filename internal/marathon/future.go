package marathon

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/runmap/marathon-map/internal/utils"
)

type FutureEvent struct {
	Date     string  `json:"date"`
	Location string  `json:"location"`
	Name     string  `json:"name"`
	Distance *string `json:"distance"`
	Time     *string `json:"time"`
	Gain     *string `json:"gain"`
	Link     string  `json:"link"`
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func (e FutureEvent) DistanceF() string { return optional(e.Distance) }
func (e FutureEvent) TimeF() string     { return optional(e.Time) }
func (e FutureEvent) GainF() string     { return optional(e.Gain) }

type FutureCategory struct {
	Marathon      []FutureEvent `json:"marathon"`
	UltraMarathon []FutureEvent `json:"ultra-marathon"`
}

type FutureEvents struct {
	Registered FutureCategory `json:"registered"`
	Deferred   FutureCategory `json:"deferred"`
}

func LoadFutureEvents(filePath string) (*FutureEvents, error) {
	buf, err := utils.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	var events FutureEvents
	if err := json.Unmarshal(buf, &events); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return &events, nil
}

type UpcomingEvent struct {
	FutureEvent
	When time.Time
}

// Upcoming returns the registered events whose day has not started yet,
// soonest first. An event dated today is dropped once midnight has passed.
// Events with unparseable dates are skipped.
func Upcoming(events *FutureEvents, now time.Time) []UpcomingEvent {
	if events == nil {
		return nil
	}
	all := make([]FutureEvent, 0)
	all = append(all, events.Registered.Marathon...)
	all = append(all, events.Registered.UltraMarathon...)

	upcoming := make([]UpcomingEvent, 0, len(all))
	for _, e := range all {
		m := reDateShort.FindStringSubmatch(e.Date)
		if m == nil {
			continue
		}
		when, err := parseDate(e.Date)
		if err != nil {
			continue
		}
		when = time.Date(when.Year(), when.Month(), when.Day(), 0, 0, 0, 0, now.Location())
		if when.Before(now) {
			continue
		}
		upcoming = append(upcoming, UpcomingEvent{e, when})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].When.Before(upcoming[j].When)
	})
	return upcoming
}

type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func TimeLeft(target, now time.Time) Countdown {
	diff := target.Sub(now)
	if diff <= 0 {
		return Countdown{}
	}
	total := int64(diff / time.Second)
	return Countdown{
		Days:    int(total / 86400),
		Hours:   int(total/3600) % 24,
		Minutes: int(total/60) % 60,
		Seconds: int(total % 60),
	}
}

// ClampIndex keeps a carousel position within [0, n-1].
func ClampIndex(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index > n-1 {
		return n - 1
	}
	return index
}
