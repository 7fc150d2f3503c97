package render

import (
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var fragmentTemplate = template.Must(template.New("results").Parse(
	`{{- if .Message}}<div class="no-results">{{.Message}}</div>
{{- else}}{{range .Rows}}<div class="search-result-item" data-href="{{.Link}}">
<div><span class="author">{{.Author}}</span> <span class="time">{{.Date}}</span></div>
<div class="content">{{.Excerpt}}</div>
</div>
{{end}}{{end}}`))

// HTMLWriter renders result lists as the results-container fragment.
type HTMLWriter struct {
	policy *bluemonday.Policy
}

// NewHTMLWriter creates a writer whose excerpt markup admits <mark> only.
func NewHTMLWriter() *HTMLWriter {
	p := bluemonday.NewPolicy()
	p.AllowElements("mark")
	return &HTMLWriter{policy: p}
}

type htmlRow struct {
	Link    string
	Author  string
	Date    string
	Excerpt template.HTML
}

type htmlList struct {
	Message string
	Rows    []htmlRow
}

// Write renders list to w. A cleared list writes nothing.
func (h *HTMLWriter) Write(w io.Writer, list ResultList) error {
	if list.State == StateCleared {
		return nil
	}

	data := htmlList{Message: list.Message}
	for _, r := range list.Rows {
		data.Rows = append(data.Rows, htmlRow{
			Link:    r.Link,
			Author:  r.Author,
			Date:    r.Date,
			Excerpt: h.Excerpt(r),
		})
	}
	return fragmentTemplate.Execute(w, data)
}

// String renders list and returns the fragment.
func (h *HTMLWriter) String(list ResultList) (string, error) {
	var b strings.Builder
	if err := h.Write(&b, list); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Excerpt returns the row's excerpt as escaped HTML with <mark> highlights.
func (h *HTMLWriter) Excerpt(r Row) template.HTML {
	raw := r.Excerpt.Render(html.EscapeString, func(s string) string {
		return "<mark>" + html.EscapeString(s) + "</mark>"
	})
	// Sanitized to <mark> only.
	return template.HTML(h.policy.Sanitize(raw))
}
