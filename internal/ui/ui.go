// Package ui is the interactive terminal search panel.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Config configures the search panel.
type Config struct {
	Output  io.Writer
	NoColor bool
	// BaseURL turns selected links into absolute URLs.
	BaseURL string
	// Title is shown in the panel header.
	Title string
	// StartOpen opens the panel on start instead of waiting for the toggle key.
	StartOpen bool
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithNoColor disables color output.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) {
		c.NoColor = noColor
	}
}

// WithBaseURL sets the site URL that selected links are resolved against.
func WithBaseURL(base string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = base
	}
}

// WithTitle sets the panel header.
func WithTitle(title string) ConfigOption {
	return func(c *Config) {
		c.Title = title
	}
}

// WithStartOpen opens the panel immediately.
func WithStartOpen(open bool) ConfigOption {
	return func(c *Config) {
		c.StartOpen = open
	}
}

// NewConfig creates a new Config with the given output and options.
func NewConfig(output io.Writer, opts ...ConfigOption) Config {
	cfg := Config{
		Output: output,
		Title:  "postsearch",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
