// Package config loads postsearch configuration from defaults, YAML files,
// a .env file and POSTSEARCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/postsearch/internal/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "POSTSEARCH_"

// Project-level file names, checked in the working directory.
const (
	ProjectConfigFile    = ".postsearch.yaml"
	ProjectConfigFileAlt = ".postsearch.yml"
	DotEnvFile           = ".env"
)

// Config represents the complete postsearch configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Mode     string         `yaml:"mode" json:"mode"`
	Site     SiteConfig     `yaml:"site" json:"site"`
	Remote   RemoteConfig   `yaml:"remote" json:"remote"`
	Search   SearchConfig   `yaml:"search" json:"search"`
	Links    LinksConfig    `yaml:"links" json:"links"`
	Messages MessagesConfig `yaml:"messages" json:"messages"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Server   ServerConfig   `yaml:"server" json:"server"`
}

// SiteConfig locates the generated site.
type SiteConfig struct {
	// BaseURL is an http(s) URL, a file:// URL or a directory.
	BaseURL   string `yaml:"base_url" json:"base_url"`
	IndexPath string `yaml:"index_path" json:"index_path"`
}

// RemoteConfig configures the remote search endpoint.
type RemoteConfig struct {
	Endpoint   string `yaml:"endpoint" json:"endpoint"`
	QueryParam string `yaml:"query_param" json:"query_param"`
	// Timeout is a Go duration. "0s" leaves it to the transport.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// SearchConfig tunes matching and display.
type SearchConfig struct {
	MaxResults    int    `yaml:"max_results" json:"max_results"`
	Debounce      string `yaml:"debounce" json:"debounce"`
	ExcerptLength int    `yaml:"excerpt_length" json:"excerpt_length"`
	ContextChars  int    `yaml:"context_chars" json:"context_chars"`
	// CacheSize bounds the static query cache; -1 disables it.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// LinksConfig holds post URL patterns; "{id}" is replaced by the post id.
type LinksConfig struct {
	Static string `yaml:"static" json:"static"`
	Remote string `yaml:"remote" json:"remote"`
}

// MessagesConfig holds the placeholder texts.
type MessagesConfig struct {
	NoResults    string `yaml:"no_results" json:"no_results"`
	SearchFailed string `yaml:"search_failed" json:"search_failed"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	// File is the log path. Empty selects ~/.postsearch/logs/postsearch.log.
	File string `yaml:"file" json:"file"`
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	SiteDir string `yaml:"site_dir" json:"site_dir"`
	Watch   bool   `yaml:"watch" json:"watch"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Mode:    "static",
		Site: SiteConfig{
			BaseURL:   ".",
			IndexPath: "/assets/search-index.json",
		},
		Remote: RemoteConfig{
			Endpoint:   "/api/search",
			QueryParam: "q",
			Timeout:    "0s",
		},
		Search: SearchConfig{
			MaxResults:    20,
			Debounce:      "300ms",
			ExcerptLength: 150,
			ContextChars:  50,
			CacheSize:     128,
		},
		Links: LinksConfig{
			Static: "/posts/{id}.html",
			Remote: "/post/{id}",
		},
		Messages: MessagesConfig{
			NoResults:    "No matching posts found",
			SearchFailed: "Search failed, please try again",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:    "127.0.0.1:8000",
			SiteDir: ".",
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/postsearch/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/postsearch/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "postsearch", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "postsearch", "config.yaml")
	}
	return filepath.Join(home, ".config", "postsearch", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig reads the user configuration file alone.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	cfg := &Config{}
	if err := cfg.loadYAML(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads configuration for the working directory dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/postsearch/config.yaml)
//  3. Project config (.postsearch.yaml in dir)
//  4. .env in dir (never overrides variables already set)
//  5. Environment variables (POSTSEARCH_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := LoadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("invalid configuration", err).
			WithSuggestion("fix the value or run 'postsearch config show' to inspect the effective configuration")
	}
	return cfg, nil
}

// loadFromFile loads .postsearch.yaml, or .postsearch.yml as a fallback.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{ProjectConfigFile, ProjectConfigFileAlt} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			parsed := &Config{}
			if err := parsed.loadYAML(path); err != nil {
				return err
			}
			c.mergeWith(parsed)
			return nil
		}
	}
	return nil
}

// loadYAML parses path into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigNotFound, "failed to read config file", err).
			WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.ConfigError("failed to parse config file", err).
			WithDetail("path", path)
	}
	return nil
}

// loadDotEnv exports variables from dir/.env that are not already set.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, DotEnvFile)
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.ConfigError("failed to parse .env file", err).WithDetail("path", path)
	}
	return nil
}

// WithDefaults returns the defaults overlaid with the non-zero values of c.
// Used to fill in options added since a config file was written.
func (c *Config) WithDefaults() *Config {
	merged := NewConfig()
	merged.mergeWith(c)
	return merged
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Mode != "" {
		c.Mode = other.Mode
	}

	// Site
	if other.Site.BaseURL != "" {
		c.Site.BaseURL = other.Site.BaseURL
	}
	if other.Site.IndexPath != "" {
		c.Site.IndexPath = other.Site.IndexPath
	}

	// Remote
	if other.Remote.Endpoint != "" {
		c.Remote.Endpoint = other.Remote.Endpoint
	}
	if other.Remote.QueryParam != "" {
		c.Remote.QueryParam = other.Remote.QueryParam
	}
	if other.Remote.Timeout != "" {
		c.Remote.Timeout = other.Remote.Timeout
	}

	// Search
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.Debounce != "" {
		c.Search.Debounce = other.Search.Debounce
	}
	if other.Search.ExcerptLength != 0 {
		c.Search.ExcerptLength = other.Search.ExcerptLength
	}
	if other.Search.ContextChars != 0 {
		c.Search.ContextChars = other.Search.ContextChars
	}
	if other.Search.CacheSize != 0 {
		c.Search.CacheSize = other.Search.CacheSize
	}

	// Links
	if other.Links.Static != "" {
		c.Links.Static = other.Links.Static
	}
	if other.Links.Remote != "" {
		c.Links.Remote = other.Links.Remote
	}

	// Messages
	if other.Messages.NoResults != "" {
		c.Messages.NoResults = other.Messages.NoResults
	}
	if other.Messages.SearchFailed != "" {
		c.Messages.SearchFailed = other.Messages.SearchFailed
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.SiteDir != "" {
		c.Server.SiteDir = other.Server.SiteDir
	}
	if other.Server.Watch {
		c.Server.Watch = true
	}
}

// applyEnvOverrides applies POSTSEARCH_* environment variable overrides.
// Unparseable numbers are ignored; an empty value never overrides.
func (c *Config) applyEnvOverrides() {
	setString := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("MODE", &c.Mode)
	setString("BASE_URL", &c.Site.BaseURL)
	setString("INDEX_PATH", &c.Site.IndexPath)
	setString("REMOTE_ENDPOINT", &c.Remote.Endpoint)
	setString("REMOTE_QUERY_PARAM", &c.Remote.QueryParam)
	setString("REMOTE_TIMEOUT", &c.Remote.Timeout)
	setInt("MAX_RESULTS", &c.Search.MaxResults)
	setString("DEBOUNCE", &c.Search.Debounce)
	setInt("EXCERPT_LENGTH", &c.Search.ExcerptLength)
	setInt("CONTEXT_CHARS", &c.Search.ContextChars)
	setInt("CACHE_SIZE", &c.Search.CacheSize)
	setString("MSG_NO_RESULTS", &c.Messages.NoResults)
	setString("MSG_SEARCH_FAILED", &c.Messages.SearchFailed)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FILE", &c.Log.File)
	setString("SERVER_ADDR", &c.Server.Addr)
	setString("SITE_DIR", &c.Server.SiteDir)

	if v := os.Getenv(EnvPrefix + "WATCH"); v != "" {
		c.Server.Watch = strings.ToLower(v) == "true" || v == "1"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Mode) {
	case "static", "remote":
	default:
		return fmt.Errorf("mode must be 'static' or 'remote', got %q", c.Mode)
	}

	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.ExcerptLength <= 0 {
		return fmt.Errorf("search.excerpt_length must be positive, got %d", c.Search.ExcerptLength)
	}
	if c.Search.ContextChars <= 0 {
		return fmt.Errorf("search.context_chars must be positive, got %d", c.Search.ContextChars)
	}
	if c.Search.CacheSize < -1 {
		return fmt.Errorf("search.cache_size must be -1 (disabled) or greater, got %d", c.Search.CacheSize)
	}

	if d, err := time.ParseDuration(c.Search.Debounce); err != nil {
		return fmt.Errorf("search.debounce: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("search.debounce must be positive, got %s", c.Search.Debounce)
	}
	if d, err := time.ParseDuration(c.Remote.Timeout); err != nil {
		return fmt.Errorf("remote.timeout: %w", err)
	} else if d < 0 {
		return fmt.Errorf("remote.timeout must not be negative, got %s", c.Remote.Timeout)
	}

	if !strings.Contains(c.Links.Static, "{id}") || !strings.Contains(c.Links.Remote, "{id}") {
		return fmt.Errorf("links.static and links.remote must contain {id}")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Log.Level)
	}

	return nil
}

// DebounceDuration returns the parsed search.debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(c.Search.Debounce)
	return d
}

// RemoteTimeout returns the parsed remote.timeout.
func (c *Config) RemoteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Remote.Timeout)
	return d
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
