package marathon

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taggedEvents() []*Event {
	london := newEvent(1, "London", "28/04/19", "42.2 km", "", "4:12:33")
	london.Tags = Tags{Date: []string{"2019"}, Region: []string{"Europe", "UK"}, Type: []string{"Marathon", "Road"}}
	amsterdam := newEvent(2, "Amsterdam", "20/10/19", "42.2 km", "", "3:58:02")
	amsterdam.Tags = Tags{Date: []string{"2019"}, Region: []string{"Europe"}, Type: []string{"Marathon", "Road"}}
	ccc := newEvent(3, "CCC", "26/08/22", "100 km", "6100 m", "26:41:10")
	ccc.Tags = Tags{Date: []string{"2022"}, Region: []string{"Europe", "Alps"}, Type: []string{"Ultra", "Trail"}}
	tokyo := newEvent(4, "Tokyo", "03/03/24", "42.195 km", "", "4:30:00")
	tokyo.Tags = Tags{Date: []string{"2024"}, Region: []string{"Asia"}, Type: []string{"Marathon", "Road"}}
	return []*Event{london, amsterdam, ccc, tokyo}
}

func ids(events []*Event) []int {
	result := make([]int, 0, len(events))
	for _, e := range events {
		result = append(result, e.ID)
	}
	return result
}

func TestTagOptions(t *testing.T) {
	events := taggedEvents()
	assert.Equal(t, []string{"2019", "2022", "2024"}, TagOptions(events, CategoryDate))
	assert.Equal(t, []string{"Europe", "UK", "Alps", "Asia"}, TagOptions(events, CategoryRegion))

	all := AllTagOptions(events)
	assert.Len(t, all, 3)
	assert.Equal(t, []string{"Marathon", "Road", "Ultra", "Trail"}, all[CategoryType])

	assert.Empty(t, TagOptions(nil, CategoryDate))
	assert.Equal(t, "Region", CategoryRegion.Title())
}

func TestFilter(t *testing.T) {
	events := taggedEvents()

	tests := []struct {
		name      string
		selection Selection
		want      []int
	}{
		{"empty selection", Selection{}, []int{1, 2, 3, 4}},
		{"single tag", Selection{Region: []string{"Europe"}}, []int{1, 2, 3}},
		{"any within category", Selection{Region: []string{"UK", "Asia"}}, []int{1, 4}},
		{"all within category", Selection{Region: []string{"Europe", "UK"}, Mode: MatchAll}, []int{1}},
		{"categories intersect", Selection{Date: []string{"2019"}, Region: []string{"UK"}}, []int{1}},
		{"categories intersect all", Selection{Region: []string{"Europe"}, Type: []string{"Marathon", "Road"}, Mode: MatchAll}, []int{1, 2}},
		{"nothing matches", Selection{Date: []string{"2024"}, Region: []string{"Europe"}}, []int{}},
		{"unknown tag", Selection{Type: []string{"Swim"}}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(events, tt.selection)))
		})
	}
}

func TestParseSelection(t *testing.T) {
	query, err := url.ParseQuery("region=Europe,UK&type=Road&type=Trail&mode=all&date=")
	require.NoError(t, err)

	s, err := ParseSelection(query)
	require.NoError(t, err)
	assert.Equal(t, []string{"Europe", "UK"}, s.Region)
	assert.Equal(t, []string{"Road", "Trail"}, s.Type)
	assert.Empty(t, s.Date)
	assert.Equal(t, MatchAll, s.Mode)
	assert.Equal(t, "all", s.Mode.String())

	s, err = ParseSelection(url.Values{})
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.Equal(t, MatchAny, s.Mode)

	_, err = ParseSelection(url.Values{"mode": {"some"}})
	assert.Error(t, err)
}

func TestNeighbors(t *testing.T) {
	events := taggedEvents()
	filtered := Filter(events, Selection{Type: []string{"Road"}})

	prev, next := Neighbors(filtered, 1)
	assert.Nil(t, prev)
	assert.Equal(t, 2, next.ID)

	prev, next = Neighbors(filtered, 2)
	assert.Equal(t, 1, prev.ID)
	assert.Equal(t, 4, next.ID)

	prev, next = Neighbors(filtered, 4)
	assert.Equal(t, 2, prev.ID)
	assert.Nil(t, next)

	prev, next = Neighbors(filtered, 3)
	assert.Nil(t, prev)
	assert.Nil(t, next)
}
