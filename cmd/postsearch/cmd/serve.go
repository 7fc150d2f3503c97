package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/postsearch/internal/output"
	"github.com/Aman-CERP/postsearch/internal/server"
)

// serveOptions holds CLI flags for serve.
type serveOptions struct {
	addr    string
	siteDir string
	watch   bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a generated site for local testing",
		Long: `Serve a generated site directory for local testing.

Besides the site's files the server answers:
  GET /api/search?q=...   JSON hits from the site's own index (the remote contract)
  GET /search?q=...       the results HTML fragment

With --watch the index is reloaded whenever it is regenerated.
This is a development harness, not a production search server.`,
		Example: `  postsearch serve --site-dir public --watch
  postsearch --mode remote --base-url http://127.0.0.1:8000 browse`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config, 127.0.0.1:8000)")
	cmd.Flags().StringVar(&opts.siteDir, "site-dir", "", "Generated site directory (default from config)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the index when it changes")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts serveOptions) error {
	cfg := root.cfg
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.siteDir != "" {
		cfg.Server.SiteDir = opts.siteDir
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.Watch = opts.watch
	}

	srv, err := server.New(server.Options{
		Addr:        cfg.Server.Addr,
		SiteDir:     cfg.Server.SiteDir,
		IndexPath:   cfg.Site.IndexPath,
		MaxResults:  cfg.Search.MaxResults,
		CacheSize:   cfg.Search.CacheSize,
		LinkPattern: cfg.Links.Static,
		QueryParam:  cfg.Remote.QueryParam,
		Excerpt:     excerptOptions(cfg),
		Messages:    messages(cfg),
		Watch:       cfg.Server.Watch,
	})
	if err != nil {
		return err
	}

	out := output.NewWithColor(cmd.OutOrStdout(), !root.noColor)
	go func() {
		select {
		case addr := <-srv.Ready():
			out.Successf("Serving %s at http://%s", cfg.Server.SiteDir, addr)
			out.KeyValue("Posts", fmt.Sprint(srv.Records()))
			out.KeyValue("Watch", fmt.Sprint(cfg.Server.Watch))
		case <-ctx.Done():
		}
	}()

	return srv.ListenAndServe(ctx)
}
