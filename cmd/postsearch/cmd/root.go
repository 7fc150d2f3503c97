// Package cmd provides the CLI commands for postsearch.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/postsearch/internal/config"
	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/logging"
	"github.com/Aman-CERP/postsearch/pkg/version"
)

// rootOptions holds the persistent flags and the configuration they resolve
// to. Subcommands read cfg after PersistentPreRunE has run.
type rootOptions struct {
	dir     string
	mode    string
	baseURL string
	debug   bool
	noColor bool

	cfg            *config.Config
	loggingCleanup func()
}

// NewRootCmd creates the root command for the postsearch CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "postsearch",
		Short: "Search the posts of a generated site",
		Long: `postsearch searches the posts of a statically generated site.

In static mode it loads the site's prebuilt search index
(/assets/search-index.json) once and matches queries locally.
In remote mode every query goes to the site's search endpoint.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/postsearch/config.yaml)
  3. Project config (.postsearch.yaml)
  4. .env file
  5. Environment variables (POSTSEARCH_*)
  6. Command-line flags`,
		Version:           version.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			opts.teardown()
		},
	}

	cmd.SetVersionTemplate("postsearch version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "Directory holding .postsearch.yaml and .env")
	cmd.PersistentFlags().StringVar(&opts.mode, "mode", "", "Search mode: static, remote")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Site URL or directory")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level (and to stderr for non-interactive commands)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newBrowseCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newLogsCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup resolves the configuration and starts file logging.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(o.dir)
	if err != nil {
		return err
	}

	if o.mode != "" {
		cfg.Mode = o.mode
	}
	if o.baseURL != "" {
		cfg.Site.BaseURL = o.baseURL
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return errors.ConfigError("invalid command-line flags", err)
	}
	o.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	if cfg.Log.File != "" {
		logCfg.FilePath = cfg.Log.File
	}
	// The browse panel owns the terminal.
	logCfg.WriteToStderr = o.debug && cmd.Name() != "browse"
	logCfg.SyncEach = o.debug

	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		logging.Discard()
		return nil
	}
	o.loggingCleanup = cleanup

	slog.Debug("command started",
		slog.String("command", cmd.CommandPath()),
		slog.String("mode", cfg.Mode),
		slog.String("base_url", cfg.Site.BaseURL),
		slog.String("version", version.Get().Version))
	return nil
}

func (o *rootOptions) teardown() {
	if o.loggingCleanup != nil {
		o.loggingCleanup()
		o.loggingCleanup = nil
	}
}

// Execute runs the root command and prints any error for the terminal.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(root.ErrOrStderr(), errors.FormatForCLI(err))
	}
	return err
}
