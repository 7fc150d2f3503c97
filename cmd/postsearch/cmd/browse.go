package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/ui"
)

func newBrowseCmd(root *rootOptions) *cobra.Command {
	var closed bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive search panel",
		Long: `Open the interactive search panel.

Keys:
  / or ctrl+f   open the panel (ctrl+f also closes it)
  esc           close the panel and clear the search
  up/down       move through results
  enter         print the selected post's URL and exit
  q or ctrl+c   quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, root, !closed)
		},
	}

	cmd.Flags().BoolVar(&closed, "closed", false, "Start with the panel closed")

	return cmd
}

func runBrowse(cmd *cobra.Command, root *rootOptions, startOpen bool) error {
	out := cmd.OutOrStdout()
	if !ui.IsTTY(out) {
		return errors.New(errors.ErrCodeNoTerminal, "browse needs an interactive terminal", nil).
			WithSuggestion("Use 'postsearch query <text>' for scripts and pipes")
	}

	cfg := root.cfg
	retriever, err := newRetriever(cfg)
	if err != nil {
		return err
	}

	model, err := ui.NewModel(cmd.Context(), retriever, ui.NewConfig(out,
		ui.WithNoColor(root.noColor),
		ui.WithBaseURL(cfg.Site.BaseURL),
		ui.WithStartOpen(startOpen),
	), sessionOptions(cfg))
	if err != nil {
		return err
	}

	selected, err := ui.Run(cmd.Context(), model)
	if err != nil {
		return errors.InternalError("search panel failed", err)
	}
	if selected != "" {
		_, err = fmt.Fprintln(out, selected)
	}
	return err
}
