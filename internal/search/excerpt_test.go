package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brackets(s string) string { return "[" + s + "]" }
func identity(s string) string { return s }

func TestBuildExcerpt_ShortContentNoEllipses(t *testing.T) {
	// Given: content shorter than the window
	e := BuildExcerpt("hello world", "world", ExcerptOptions{})

	// Then: whole content, one highlight, no ellipses
	assert.Equal(t, "hello world", e.Text)
	assert.False(t, e.Leading)
	assert.False(t, e.Trailing)
	require.Len(t, e.Spans, 1)
	assert.Equal(t, "hello [world]", e.Render(identity, brackets))
}

func TestBuildExcerpt_CenteredWindowWithBothEllipses(t *testing.T) {
	// Given: a single occurrence more than 50 characters from both ends
	content := strings.Repeat("x", 60) + "needle" + strings.Repeat("y", 60)

	// When: building the excerpt
	e := BuildExcerpt(content, "needle", ExcerptOptions{})

	// Then: both ellipses and exactly one highlight
	assert.True(t, e.Leading)
	assert.True(t, e.Trailing)
	assert.True(t, strings.HasPrefix(e.Text, "..."))
	assert.True(t, strings.HasSuffix(e.Text, "..."))
	require.Len(t, e.Spans, 1)
	assert.Equal(t, "needle", e.Text[e.Spans[0].Start:e.Spans[0].End])
	assert.Equal(t, strings.Repeat("x", 50)+"needle"+strings.Repeat("y", 50), e.Body())
}

func TestBuildExcerpt_WindowClampedAtStart(t *testing.T) {
	content := "needle " + strings.Repeat("y", 100)

	e := BuildExcerpt(content, "needle", ExcerptOptions{})

	assert.False(t, e.Leading)
	assert.True(t, e.Trailing)
	assert.Equal(t, "needle "+strings.Repeat("y", 49)+"...", e.Text)
}

func TestBuildExcerpt_NotFoundTakesPrefix(t *testing.T) {
	// Given: content without the query (possible for remote hits)
	content := strings.Repeat("z", 200)

	// When: building the excerpt
	e := BuildExcerpt(content, "q", ExcerptOptions{})

	// Then: the first 150 characters with a trailing ellipsis, nothing highlighted
	assert.False(t, e.Leading)
	assert.True(t, e.Trailing)
	assert.Equal(t, strings.Repeat("z", DefaultExcerptLength)+"...", e.Text)
	assert.Empty(t, e.Spans)
}

func TestBuildExcerpt_CustomMaxLength(t *testing.T) {
	e := BuildExcerpt("abcdefghij", "zzz", ExcerptOptions{MaxLength: 4})
	assert.Equal(t, "abcd...", e.Text)
}

func TestBuildExcerpt_CaseInsensitiveKeepsDisplayCase(t *testing.T) {
	e := BuildExcerpt("Say Hello and hello again", "HELLO", ExcerptOptions{})

	assert.Equal(t, "Say [Hello] and [hello] again", e.Render(identity, brackets))
}

func TestBuildExcerpt_MetacharactersAreLiteral(t *testing.T) {
	// Given: a query full of regex metacharacters
	content := "total: $5.00 (approx) or 5x00"

	// When: building the excerpt
	e := BuildExcerpt(content, "$5.00 (", ExcerptOptions{})

	// Then: only the literal text is highlighted, nothing panics
	assert.Equal(t, "total: [$5.00 (]approx) or 5x00", e.Render(identity, brackets))

	dot := BuildExcerpt("a.b axb", ".", ExcerptOptions{})
	assert.Equal(t, "a[.]b axb", dot.Render(identity, brackets))
}

func TestBuildExcerpt_CountsCharactersNotBytes(t *testing.T) {
	// Given: multi-byte content with the match far from both ends
	content := strings.Repeat("天", 60) + "公园" + strings.Repeat("气", 60)

	// When: building the excerpt
	e := BuildExcerpt(content, "公园", ExcerptOptions{})

	// Then: 50 characters on each side, valid UTF-8, correct highlight
	assert.True(t, utf8.ValidString(e.Text))
	assert.Equal(t, 102, utf8.RuneCountInString(e.Body()))
	require.Len(t, e.Spans, 1)
	assert.Equal(t, "公园", e.Text[e.Spans[0].Start:e.Spans[0].End])
}

func TestBuildExcerpt_LengthBound(t *testing.T) {
	contents := []string{
		"short match",
		strings.Repeat("a", 30) + "match" + strings.Repeat("b", 300),
		strings.Repeat("a", 300) + "match",
		"match" + strings.Repeat("b", 300),
		strings.Repeat("a", 80) + "MATCH" + strings.Repeat("b", 80),
	}

	for _, c := range contents {
		e := BuildExcerpt(c, "match", ExcerptOptions{})
		limit := min(utf8.RuneCountInString(c), len("match")+2*DefaultContextChars)
		assert.LessOrEqual(t, utf8.RuneCountInString(e.Body()), limit)
		assert.NotEmpty(t, e.Spans)
	}
}

func TestBuildExcerpt_EmptyQueryNoHighlights(t *testing.T) {
	e := BuildExcerpt("some content", "", ExcerptOptions{})
	assert.Equal(t, "some content", e.Text)
	assert.Empty(t, e.Spans)
}

func TestExcerpt_RenderWithoutSpans(t *testing.T) {
	e := Excerpt{Text: "plain"}
	assert.Equal(t, "<plain>", e.Render(func(s string) string { return "<" + s + ">" }, brackets))
}
