// Package output prints status lines for non-interactive postsearch commands.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out      io.Writer
	useColor bool
	dim      lipgloss.Style
	key      lipgloss.Style
}

// New creates a Writer without colors.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// NewWithColor creates a Writer that dims secondary text when useColor is set.
func NewWithColor(out io.Writer, useColor bool) *Writer {
	w := New(out)
	w.useColor = useColor
	w.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	w.key = lipgloss.NewStyle().Foreground(lipgloss.Color("154"))
	return w
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// KeyValue prints an aligned "key: value" line.
func (w *Writer) KeyValue(key, value string) {
	k := fmt.Sprintf("%-14s", key+":")
	if w.useColor {
		k = w.key.Render(k)
	}
	_, _ = fmt.Fprintf(w.out, "  %s %s\n", k, value)
}

// Summary prints the hit count line shown under one-shot query results.
func (w *Writer) Summary(hits int, mode string, elapsed time.Duration) {
	noun := "results"
	if hits == 1 {
		noun = "result"
	}
	line := fmt.Sprintf("%d %s (%s, %s)", hits, noun, mode, elapsed.Round(time.Microsecond))
	if w.useColor {
		line = w.dim.Render(line)
	}
	_, _ = fmt.Fprintln(w.out, line)
}

// Code prints a code block with indentation.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
