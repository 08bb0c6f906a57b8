package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/runmap/marathon-map/internal/marathon"
)

type RenderedSection struct {
	Key   string
	Label string
	Notes []template.HTML
}

type RenderData struct {
	Events     []*marathon.Event
	Tags       map[marathon.Category][]string
	Categories []marathon.Category
	Summary    marathon.Summary
	Challenges []marathon.Challenge
	Done       int
	Total      int
	Upcoming   []marathon.UpcomingEvent
	Countdown  marathon.Countdown
	Future     *marathon.FutureEvents
	Tiles      []marathon.TileLayer
	StorageKey string

	Event    *marathon.Event
	Prev     *marathon.Event
	Next     *marathon.Event
	Sections []RenderedSection

	JsFiles     []string
	CssFiles    []string
	BasePath    string
	Title       string
	Description string
	Canonical   string
	Nav         string
	Timestamp   string
}

func (data *RenderData) set(title, description, canonical, nav string) {
	data.Title = title
	data.Description = description
	data.Canonical = canonical
	data.Nav = nav
}

func (data RenderData) render(outputFile string, templateFiles ...string) error {
	tmpl, err := template.New(filepath.Base(templateFiles[0])).Funcs(funcs).ParseFiles(templateFiles...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0770); err != nil {
		return err
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

var funcs = template.FuncMap{
	"stars": func(r int) string {
		if r <= 0 {
			return "-"
		}
		return fmt.Sprintf("%d/5", r)
	},
	"fixed1": func(f float64) string {
		return fmt.Sprintf("%.1f", f)
	},
	"isoDate": func(t time.Time) string {
		return t.Format(time.RFC3339)
	},
	"dict": func(pairs ...interface{}) (map[string]interface{}, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict needs key/value pairs")
		}
		m := make(map[string]interface{}, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}

type PathBuilder string

func (p PathBuilder) Path(items ...string) string {
	return filepath.Join(append([]string{string(p)}, items...)...)
}

func renderSections(notes marathon.Notes) ([]RenderedSection, error) {
	sections := make([]RenderedSection, 0)
	for _, s := range notes.Sections() {
		rendered := RenderedSection{Key: s.Key, Label: s.Label}
		for _, note := range s.Notes {
			html, err := marathon.RenderNote(note)
			if err != nil {
				return nil, fmt.Errorf("rendering %s notes: %w", s.Key, err)
			}
			rendered.Notes = append(rendered.Notes, html)
		}
		sections = append(sections, rendered)
	}
	return sections, nil
}
