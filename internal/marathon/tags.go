package marathon

import (
	"fmt"
	"net/url"
	"strings"
)

type Category string

const (
	CategoryDate   Category = "date"
	CategoryRegion Category = "region"
	CategoryType   Category = "type"
)

var Categories = []Category{CategoryDate, CategoryRegion, CategoryType}

func (c Category) Title() string {
	switch c {
	case CategoryDate:
		return "Date"
	case CategoryRegion:
		return "Region"
	case CategoryType:
		return "Type"
	}
	return string(c)
}

func (tags Tags) Get(category Category) []string {
	switch category {
	case CategoryDate:
		return tags.Date
	case CategoryRegion:
		return tags.Region
	case CategoryType:
		return tags.Type
	}
	return nil
}

// TagOptions lists the distinct tags of a category in order of first appearance.
func TagOptions(events []*Event, category Category) []string {
	seen := make(map[string]bool)
	options := make([]string, 0)
	for _, event := range events {
		for _, tag := range event.Tags.Get(category) {
			if !seen[tag] {
				seen[tag] = true
				options = append(options, tag)
			}
		}
	}
	return options
}

func AllTagOptions(events []*Event) map[Category][]string {
	all := make(map[Category][]string, len(Categories))
	for _, category := range Categories {
		all[category] = TagOptions(events, category)
	}
	return all
}

type MatchMode int

const (
	MatchAny MatchMode = iota
	MatchAll
)

func (m MatchMode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// Selection holds the tags picked per category in the filter drawer.
type Selection struct {
	Date   []string
	Region []string
	Type   []string
	Mode   MatchMode
}

func (s Selection) Get(category Category) []string {
	switch category {
	case CategoryDate:
		return s.Date
	case CategoryRegion:
		return s.Region
	case CategoryType:
		return s.Type
	}
	return nil
}

func (s Selection) Empty() bool {
	return len(s.Date) == 0 && len(s.Region) == 0 && len(s.Type) == 0
}

func (s Selection) matchCategory(event *Event, category Category) bool {
	selected := s.Get(category)
	if len(selected) == 0 {
		return true
	}
	for _, tag := range selected {
		tagged := event.Tagged(category, tag)
		if s.Mode == MatchAll && !tagged {
			return false
		}
		if s.Mode == MatchAny && tagged {
			return true
		}
	}
	return s.Mode == MatchAll
}

func (s Selection) Match(event *Event) bool {
	for _, category := range Categories {
		if !s.matchCategory(event, category) {
			return false
		}
	}
	return true
}

// Filter keeps the events matching every non-empty category of the selection.
// The order of events is preserved.
func Filter(events []*Event, selection Selection) []*Event {
	if selection.Empty() {
		return events
	}
	filtered := make([]*Event, 0, len(events))
	for _, event := range events {
		if selection.Match(event) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func splitValues(values []string) []string {
	result := make([]string, 0)
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				result = append(result, item)
			}
		}
	}
	return result
}

// ParseSelection reads date/region/type (repeated or comma separated) and mode
// query parameters.
func ParseSelection(query url.Values) (Selection, error) {
	s := Selection{
		Date:   splitValues(query[string(CategoryDate)]),
		Region: splitValues(query[string(CategoryRegion)]),
		Type:   splitValues(query[string(CategoryType)]),
	}
	switch query.Get("mode") {
	case "", "any":
		s.Mode = MatchAny
	case "all":
		s.Mode = MatchAll
	default:
		return s, fmt.Errorf("unknown mode: '%s'", query.Get("mode"))
	}
	return s, nil
}

// Neighbors returns the events before and after id within the filtered list.
func Neighbors(filtered []*Event, id int) (*Event, *Event) {
	for i, event := range filtered {
		if event.ID != id {
			continue
		}
		var prev, next *Event
		if i > 0 {
			prev = filtered[i-1]
		}
		if i < len(filtered)-1 {
			next = filtered[i+1]
		}
		return prev, next
	}
	return nil, nil
}
