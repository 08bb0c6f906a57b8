package marathon

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

type Notes struct {
	Pre       []string `json:"pre"`
	During    []string `json:"during"`
	Post      []string `json:"post"`
	Event     []string `json:"event"`
	Takeaways []string `json:"takeaways"`
}

type NoteSection struct {
	Key   string
	Label string
	Notes []string
}

// Sections lists the non-empty note sections in display order.
func (n Notes) Sections() []NoteSection {
	all := []NoteSection{
		{"pre", "Pre-Race", n.Pre},
		{"during", "During Race", n.During},
		{"post", "Post-Race", n.Post},
		{"event", "Event", n.Event},
		{"takeaways", "Takeaways", n.Takeaways},
	}
	sections := make([]NoteSection, 0, len(all))
	for _, s := range all {
		if len(s.Notes) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}

func (n Notes) Empty() bool {
	return len(n.Sections()) == 0
}

// raw HTML in notes is dropped
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func RenderNote(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
