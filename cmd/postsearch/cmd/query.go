package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/output"
	"github.com/Aman-CERP/postsearch/internal/render"
	"github.com/Aman-CERP/postsearch/internal/session"
	"github.com/Aman-CERP/postsearch/internal/source"
	"github.com/Aman-CERP/postsearch/internal/ui"
)

// queryOptions holds CLI flags for query.
type queryOptions struct {
	format string // "text", "html", "json"
}

func newQueryCmd(root *rootOptions) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run one search and print the results",
		Long: `Run one search through the same pipeline as the interactive panel
and print the results.

Formats:
  text  author, date and excerpt per post, matches in [brackets]
  html  the results fragment as the site's search panel shows it
  json  machine-readable results with highlight offsets`,
		Example: `  postsearch query hello
  postsearch query "road trip" --format json
  postsearch --mode remote --base-url https://blog.example.com query hello`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd, root, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, html, json")

	return cmd
}

func runQuery(ctx context.Context, cmd *cobra.Command, root *rootOptions, query string, opts queryOptions) error {
	switch opts.format {
	case "text", "html", "json":
	default:
		return errors.ValidationError(fmt.Sprintf("unknown format %q", opts.format), nil).
			WithSuggestion("Use --format text, html or json")
	}

	cfg := root.cfg
	useColor := !root.noColor && ui.IsTTY(cmd.OutOrStdout()) && !ui.DetectNoColor() && !ui.DetectCI()
	errOut := output.NewWithColor(cmd.ErrOrStderr(), useColor)

	retriever, err := newRetriever(cfg)
	if err != nil {
		return err
	}
	if static, ok := retriever.(*source.StaticIndex); ok {
		if err := static.Load(ctx); err != nil {
			errOut.Warningf("search index unavailable: %s", err)
		}
	}

	panel := &headless{}
	sess, err := session.New(panel, retriever, sessionOptions(cfg))
	if err != nil {
		return err
	}
	defer sess.Close()

	slog.Info("query_started", slog.String("query", query), slog.String("mode", cfg.Mode))

	q, ok := sess.Dispatch(query)
	if !ok {
		return errors.ValidationError("query is blank", nil)
	}
	outcome := sess.Run(ctx, q)
	sess.Apply(outcome)

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		err = render.WriteJSON(out, panel.results)
	case "html":
		err = render.NewHTMLWriter().Write(out, panel.results)
		if err == nil {
			_, err = fmt.Fprintln(out)
		}
	default:
		err = render.WriteText(out, panel.results)
		if err == nil && panel.results.State == render.StateRows {
			output.NewWithColor(out, useColor).Summary(panel.results.Len(), cfg.Mode, outcome.Elapsed)
		}
	}
	if err != nil {
		return errors.InternalError("failed to write results", err)
	}

	if outcome.Err != nil {
		return outcome.Err
	}
	return nil
}
