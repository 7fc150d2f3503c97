// Package session owns one search panel: its open/closed state, the
// debounced input, and the ordering of query outcomes.
//
// Session methods other than Run must be called from a single goroutine, the
// event loop of whatever front end hosts the panel. Run is safe to call from
// anywhere and does not touch session state, so retrieval can happen off the
// loop while the loop keeps handling keys:
//
//	q, ok := s.Dispatch(raw)   // on the loop
//	o := s.Run(ctx, q)         // anywhere
//	s.Apply(o)                 // back on the loop; stale outcomes are dropped
package session

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Aman-CERP/postsearch/internal/debounce"
	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/record"
	"github.com/Aman-CERP/postsearch/internal/render"
	"github.com/Aman-CERP/postsearch/internal/source"
)

// PanelState is the visibility of the search panel.
type PanelState int

const (
	// Closed is the initial state.
	Closed PanelState = iota
	// Open shows the panel with the input focused.
	Open
)

// String returns "closed" or "open".
func (p PanelState) String() string {
	if p == Open {
		return "open"
	}
	return "closed"
}

// KeyEscape is the key name HandleKey reacts to.
const KeyEscape = "esc"

// Options configures a Session.
type Options struct {
	// Debounce is the input quiet period. Zero selects debounce.DefaultWindow.
	Debounce time.Duration
	Excerpt  render.Options
}

// Query is one dispatched search.
type Query struct {
	Seq  uint64
	Text string
}

// Outcome is the result of running a Query.
type Outcome struct {
	Query   Query
	List    render.ResultList
	Err     error
	Elapsed time.Duration
}

// Session is the controller of one search panel.
type Session struct {
	ports     Ports
	retriever source.Retriever
	render    render.Options
	debouncer *debounce.Debouncer[string]

	state PanelState
	seq   uint64
}

// New creates a session. Both ports and retriever are required.
func New(ports Ports, retriever source.Retriever, opts Options) (*Session, error) {
	if ports == nil {
		return nil, errors.InternalError("search session needs a panel", nil)
	}
	if retriever == nil {
		return nil, errors.InternalError("search session needs a retriever", nil)
	}

	ro := opts.Excerpt
	ro.Link = retriever.Link

	return &Session{
		ports:     ports,
		retriever: retriever,
		render:    ro,
		debouncer: debounce.New[string](opts.Debounce),
	}, nil
}

// State returns the panel state.
func (s *Session) State() PanelState {
	return s.state
}

// Retriever returns the retrieval strategy in use.
func (s *Session) Retriever() source.Retriever {
	return s.retriever
}

// Toggle opens a closed panel and focuses the input, or closes an open one.
// Closing by toggle keeps the input and results as they are.
func (s *Session) Toggle() {
	if s.state == Closed {
		s.state = Open
		s.ports.SetPanelVisible(true)
		s.ports.FocusInput()
		return
	}
	s.state = Closed
	s.ports.SetPanelVisible(false)
}

// HandleKey reacts to a key press on the input and reports whether it was
// consumed.
func (s *Session) HandleKey(key string) bool {
	if key != KeyEscape {
		return false
	}
	return s.Escape()
}

// Escape closes an open panel and clears the input and the results. It is a
// no-op on a closed panel. Pending and in-flight queries are abandoned.
func (s *Session) Escape() bool {
	if s.state != Open {
		return false
	}
	s.state = Closed
	s.debouncer.Cancel()
	s.seq++
	s.ports.SetPanelVisible(false)
	s.ports.SetInputValue("")
	s.ports.SetResults(render.Cleared())
	return true
}

// InputChanged restarts the quiet period with the current input value.
func (s *Session) InputChanged() {
	s.debouncer.Trigger(s.ports.InputValue())
}

// Debounced delivers input values once typing pauses.
func (s *Session) Debounced() <-chan string {
	return s.debouncer.Output()
}

// Dispatch starts a query for raw input. A blank query clears the results
// immediately and returns false; nothing is retrieved.
func (s *Session) Dispatch(raw string) (Query, bool) {
	s.seq++
	text := strings.TrimSpace(raw)
	if text == "" {
		s.ports.SetResults(render.Cleared())
		return Query{}, false
	}
	return Query{Seq: s.seq, Text: text}, true
}

// Run retrieves and renders q. Failures become the "search failed"
// placeholder; an empty hit list becomes the "no results" placeholder.
func (s *Session) Run(ctx context.Context, q Query) Outcome {
	start := time.Now()
	hits, err := s.retriever.Retrieve(ctx, q.Text)
	o := Outcome{Query: q, Elapsed: time.Since(start)}

	if err != nil {
		o.Err = err
		o.List = render.Failed(s.render.Messages)
		if !stderrors.Is(err, context.Canceled) {
			slog.Warn("search failed",
				append(errors.LogAttrs(err),
					slog.String("mode", string(s.retriever.Mode())),
					slog.Uint64("seq", q.Seq))...)
		}
		return o
	}

	o.List = render.Results(hits, q.Text, s.render)
	slog.Debug("search completed",
		slog.String("mode", string(s.retriever.Mode())),
		slog.Int("hits", len(hits)),
		slog.Uint64("seq", q.Seq),
		slog.Duration("elapsed", o.Elapsed))
	return o
}

// Apply shows o unless a newer query was dispatched or the results were
// cleared since o's query started. It reports whether o was shown.
func (s *Session) Apply(o Outcome) bool {
	if o.Query.Seq != s.seq {
		slog.Debug("stale search outcome dropped",
			slog.Uint64("seq", o.Query.Seq),
			slog.Uint64("latest", s.seq))
		return false
	}
	s.ports.SetResults(o.List)
	return true
}

// Search dispatches, runs and applies raw in one step and returns the list
// now shown.
func (s *Session) Search(ctx context.Context, raw string) render.ResultList {
	q, ok := s.Dispatch(raw)
	if !ok {
		return render.Cleared()
	}
	o := s.Run(ctx, q)
	s.Apply(o)
	return o.List
}

// Link returns the page URL of a post for the active retriever.
func (s *Session) Link(id record.ID) string {
	return s.retriever.Link(id)
}

// Close stops the debouncer. The session must not be used afterwards.
func (s *Session) Close() {
	s.debouncer.Stop()
}
