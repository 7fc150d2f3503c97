package cmd

import (
	"github.com/Aman-CERP/postsearch/internal/config"
	"github.com/Aman-CERP/postsearch/internal/render"
	"github.com/Aman-CERP/postsearch/internal/search"
	"github.com/Aman-CERP/postsearch/internal/session"
	"github.com/Aman-CERP/postsearch/internal/source"
)

// newRetriever builds the retrieval strategy selected by cfg.Mode.
func newRetriever(cfg *config.Config) (source.Retriever, error) {
	mode, err := source.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	if mode == source.ModeRemote {
		return source.NewRemote(source.RemoteOptions{
			BaseURL:     cfg.Site.BaseURL,
			Endpoint:    cfg.Remote.Endpoint,
			QueryParam:  cfg.Remote.QueryParam,
			Timeout:     cfg.RemoteTimeout(),
			LinkPattern: cfg.Links.Remote,
		})
	}

	return source.NewStatic(source.StaticOptions{
		BaseURL:     cfg.Site.BaseURL,
		IndexPath:   cfg.Site.IndexPath,
		MaxResults:  cfg.Search.MaxResults,
		CacheSize:   cfg.Search.CacheSize,
		LinkPattern: cfg.Links.Static,
	}), nil
}

func excerptOptions(cfg *config.Config) search.ExcerptOptions {
	return search.ExcerptOptions{
		MaxLength:    cfg.Search.ExcerptLength,
		ContextChars: cfg.Search.ContextChars,
	}
}

func messages(cfg *config.Config) render.Messages {
	return render.Messages{
		NoResults:    cfg.Messages.NoResults,
		SearchFailed: cfg.Messages.SearchFailed,
	}
}

func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		Debounce: cfg.DebounceDuration(),
		Excerpt: render.Options{
			Excerpt:  excerptOptions(cfg),
			Messages: messages(cfg),
		},
	}
}

// headless is a panel without a screen. One-shot commands drive the same
// session pipeline through it.
type headless struct {
	input   string
	visible bool
	results render.ResultList
}

func (h *headless) InputValue() string { return h.input }
func (h *headless) SetInputValue(v string) { h.input = v }
func (h *headless) SetResults(list render.ResultList) { h.results = list }
func (h *headless) SetPanelVisible(visible bool) { h.visible = visible }
func (h *headless) FocusInput() {}
