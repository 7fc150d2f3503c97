package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("🔍", "Loading search index...")

	// Then: output contains icon and message
	assert.Equal(t, "🔍 Loading search index...\n", buf.String())
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")
	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		print func(w *Writer)
		icon  string
		text  string
	}{
		{"success", func(w *Writer) { w.Successf("Loaded %d posts", 3) }, "✅", "Loaded 3 posts"},
		{"warning", func(w *Writer) { w.Warningf("index %s", "missing") }, "⚠️", "index missing"},
		{"error", func(w *Writer) { w.Errorf("status %d", 502) }, "❌", "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.print(New(buf))
			assert.Contains(t, buf.String(), tt.icon)
			assert.Contains(t, buf.String(), tt.text)
		})
	}
}

func TestWriter_KeyValue_Aligns(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.KeyValue("mode", "static")
	w.KeyValue("index", "/assets/search-index.json")

	assert.Equal(t, "  mode:          static\n  index:         /assets/search-index.json\n", buf.String())
}

func TestWriter_Summary(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Summary(1, "static", 1500*time.Microsecond)
	w.Summary(0, "remote", 0)

	assert.Equal(t, "1 result (static, 1.5ms)\n0 results (remote, 0s)\n", buf.String())
}

func TestWriter_Code_IndentsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Code("mode: static\nsearch:\n")
	assert.Equal(t, "\n  mode: static\n  search:\n\n", buf.String())
}

func TestNewWithColor_PlainWhenDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWithColor(buf, false).Summary(2, "static", time.Millisecond)
	assert.Equal(t, "2 results (static, 1ms)\n", buf.String())
}
