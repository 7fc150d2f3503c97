// Package server is the development harness for a generated site: it serves
// the site directory, answers the remote search contract from the site's own
// index, and can reload the index when the file changes.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/record"
	"github.com/Aman-CERP/postsearch/internal/render"
	"github.com/Aman-CERP/postsearch/internal/search"
	"github.com/Aman-CERP/postsearch/internal/source"
)

// Default server settings.
const (
	DefaultAddr       = "127.0.0.1:8000"
	DefaultQueryParam = "q"

	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr    string
	SiteDir string
	// IndexPath is the index location relative to SiteDir.
	IndexPath   string
	MaxResults  int
	CacheSize   int
	LinkPattern string
	QueryParam  string
	// Excerpt and Messages shape the /search fragment.
	Excerpt  search.ExcerptOptions
	Messages render.Messages
	// Watch reloads the index after it changes on disk.
	Watch bool
	// ReloadDelay is the quiet period before a reload. Zero selects the
	// debouncer default.
	ReloadDelay time.Duration
}

// Server serves one site directory.
type Server struct {
	opts  Options
	index atomic.Pointer[source.StaticIndex]
	html  *render.HTMLWriter
	mux   *http.ServeMux
	ready chan string
}

// New creates a server and loads the index once. A missing or malformed
// index is logged and served as an empty index so the site itself stays
// browsable.
func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.SiteDir == "" {
		opts.SiteDir = "."
	}
	if opts.IndexPath == "" {
		opts.IndexPath = source.DefaultIndexPath
	}
	if opts.QueryParam == "" {
		opts.QueryParam = DefaultQueryParam
	}

	abs, err := filepath.Abs(opts.SiteDir)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid site directory %q", opts.SiteDir), err)
	}
	opts.SiteDir = abs

	s := &Server{
		opts:  opts,
		html:  render.NewHTMLWriter(),
		ready: make(chan string, 1),
	}
	s.index.Store(s.snapshot(nil))
	if err := s.Reload(); err != nil {
		slog.Warn("serving without a search index", errors.LogAttrs(err)...)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /api/search", s.handleAPISearch)
	s.mux.HandleFunc("GET /search", s.handleFragment)
	s.mux.Handle("GET /", http.FileServer(http.Dir(s.opts.SiteDir)))
	return s, nil
}

// IndexFile returns the absolute path of the index file.
func (s *Server) IndexFile() string {
	return filepath.Join(s.opts.SiteDir, filepath.FromSlash(s.opts.IndexPath))
}

// Records returns the number of records in the current snapshot.
func (s *Server) Records() int {
	return s.index.Load().Len()
}

// Reload reads the index file and swaps it in as the new snapshot. On failure
// the previous snapshot stays in place.
func (s *Server) Reload() error {
	records, err := source.ReadIndexFile(s.IndexFile())
	if err != nil {
		return err
	}
	s.index.Store(s.snapshot(records))
	slog.Info("search index loaded",
		slog.String("path", s.IndexFile()),
		slog.Int("records", len(records)))
	return nil
}

func (s *Server) snapshot(records []record.Record) *source.StaticIndex {
	return source.FromRecords(records, source.StaticOptions{
		MaxResults:  s.opts.MaxResults,
		CacheSize:   s.opts.CacheSize,
		LinkPattern: s.opts.LinkPattern,
	})
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Ready delivers the listen address once the server accepts connections.
func (s *Server) Ready() <-chan string {
	return s.ready
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.InternalError(fmt.Sprintf("failed to listen on %s", s.opts.Addr), err).
			WithSuggestion("Choose a free address with --addr")
	}

	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("dev server listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("site_dir", s.opts.SiteDir))
		s.ready <- ln.Addr().String()
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if s.opts.Watch {
		g.Go(func() error {
			return s.watch(gctx)
		})
	}

	if err := g.Wait(); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	hits, err := s.index.Load().Retrieve(r.Context(), r.URL.Query().Get(s.opts.QueryParam))
	if err != nil {
		s.fail(w, err)
		return
	}
	if hits == nil {
		hits = []record.Hit{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(hits); err != nil {
		slog.Debug("write search response", slog.String("error", err.Error()))
	}
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	idx := s.index.Load()
	query := r.URL.Query().Get(s.opts.QueryParam)

	var list render.ResultList
	switch hits, err := idx.Retrieve(r.Context(), query); {
	case err != nil:
		slog.Warn("fragment search failed", errors.LogAttrs(err)...)
		list = render.Failed(s.opts.Messages)
	case search.Normalize(query) == "":
		list = render.Cleared()
	default:
		list = render.Results(hits, query, render.Options{
			Link:     idx.Link,
			Excerpt:  s.opts.Excerpt,
			Messages: s.opts.Messages,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.html.Write(w, list); err != nil {
		slog.Debug("write search fragment", slog.String("error", err.Error()))
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if stderrors.Is(err, context.Canceled) {
		status = http.StatusServiceUnavailable
	}
	slog.Warn("api search failed", errors.LogAttrs(err)...)

	body, _ := errors.FormatJSON(errors.New(errors.ErrCodeSearchFailed, "search failed", err))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
