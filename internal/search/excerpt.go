package search

import (
	"regexp"
	"strings"
	"unicode"
)

// Excerpt defaults.
const (
	// DefaultExcerptLength is the window size used when the query is not
	// found in the content (remote hits may match on other criteria).
	DefaultExcerptLength = 150
	// DefaultContextChars is how much text is kept on each side of the match.
	DefaultContextChars = 50

	ellipsis = "..."
)

// ExcerptOptions sizes the excerpt window. Zero values select the defaults.
type ExcerptOptions struct {
	MaxLength    int
	ContextChars int
}

func (o ExcerptOptions) withDefaults() ExcerptOptions {
	if o.MaxLength <= 0 {
		o.MaxLength = DefaultExcerptLength
	}
	if o.ContextChars <= 0 {
		o.ContextChars = DefaultContextChars
	}
	return o
}

// Span is a highlighted byte range of Excerpt.Text.
type Span struct {
	Start int
	End   int
}

// Excerpt is a bounded snippet of a record's content with the positions of
// every query occurrence. Front ends decide how a highlight looks.
type Excerpt struct {
	// Text is the snippet including leading/trailing ellipses.
	Text string
	// Spans are the non-overlapping highlighted ranges of Text, in order.
	Spans []Span
	// Leading reports that Text starts with an ellipsis.
	Leading bool
	// Trailing reports that Text ends with an ellipsis.
	Trailing bool
}

// BuildExcerpt cuts a window out of content around the first
// case-insensitive occurrence of query and marks every occurrence inside it.
// Lengths are counted in characters (code points), not bytes.
func BuildExcerpt(content, query string, opts ExcerptOptions) Excerpt {
	opts = opts.withDefaults()

	runes := []rune(content)
	needle := []rune(query)

	start, end := 0, min(opts.MaxLength, len(runes))
	if len(needle) > 0 {
		if idx := indexFold(runes, needle); idx >= 0 {
			start = max(0, idx-opts.ContextChars)
			end = min(len(runes), idx+len(needle)+opts.ContextChars)
		}
	}

	e := Excerpt{
		Leading:  start > 0,
		Trailing: end < len(runes),
	}

	var b strings.Builder
	if e.Leading {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if e.Trailing {
		b.WriteString(ellipsis)
	}
	e.Text = b.String()
	e.Spans = highlightSpans(e.Text, query)
	return e
}

// Body returns the excerpt text without ellipses.
func (e Excerpt) Body() string {
	body := e.Text
	if e.Leading {
		body = strings.TrimPrefix(body, ellipsis)
	}
	if e.Trailing {
		body = strings.TrimSuffix(body, ellipsis)
	}
	return body
}

// Render walks the excerpt, passing unhighlighted segments through plain and
// highlighted ones through mark.
func (e Excerpt) Render(plain, mark func(string) string) string {
	var b strings.Builder
	pos := 0
	for _, s := range e.Spans {
		if s.Start > pos {
			b.WriteString(plain(e.Text[pos:s.Start]))
		}
		b.WriteString(mark(e.Text[s.Start:s.End]))
		pos = s.End
	}
	if pos < len(e.Text) {
		b.WriteString(plain(e.Text[pos:]))
	}
	return b.String()
}

// highlightSpans finds every case-insensitive occurrence of the escaped
// query. Metacharacters typed by the user match literally.
func highlightSpans(text, query string) []Span {
	if query == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil
	}

	locs := re.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		if loc[1] > loc[0] {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
	}
	return spans
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of needle in haystack, or -1.
func indexFold(haystack, needle []rune) int {
	h := lowerRunes(haystack)
	n := lowerRunes(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		if runesEqual(h[i:i+len(n)], n) {
			return i
		}
	}
	return -1
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
