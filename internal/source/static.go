package source

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/record"
	"github.com/Aman-CERP/postsearch/internal/search"
)

// DefaultQueryCacheSize is the number of distinct queries memoized per index.
const DefaultQueryCacheSize = 128

// StaticOptions configures a StaticIndex.
type StaticOptions struct {
	// BaseURL is the site root: an http(s) URL, a file:// URL or a directory.
	BaseURL string
	// IndexPath is the index location relative to BaseURL.
	IndexPath string
	// MaxResults caps hits per query. Zero selects search.DefaultMaxResults.
	MaxResults int
	// CacheSize bounds the query cache. Negative disables it, zero selects
	// DefaultQueryCacheSize.
	CacheSize int
	// LinkPattern overrides DefaultStaticLink.
	LinkPattern string
	Client      *http.Client
}

// StaticIndex matches queries against the site's generated index, loaded
// once and never modified afterwards.
type StaticIndex struct {
	opts StaticOptions

	once    sync.Once
	mu      sync.RWMutex
	records []record.Record
	loadErr error

	cache *lru.Cache[string, []record.Hit]
}

// NewStatic creates an index that is empty until Load is called.
func NewStatic(opts StaticOptions) *StaticIndex {
	if opts.MaxResults <= 0 {
		opts.MaxResults = search.DefaultMaxResults
	}
	if opts.LinkPattern == "" {
		opts.LinkPattern = DefaultStaticLink
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = DefaultQueryCacheSize
	}

	s := &StaticIndex{opts: opts}
	if opts.CacheSize > 0 {
		s.cache, _ = lru.New[string, []record.Hit](opts.CacheSize)
	}
	return s
}

// FromRecords creates an already loaded index over records.
// Load on the result is a no-op.
func FromRecords(records []record.Record, opts StaticOptions) *StaticIndex {
	s := NewStatic(opts)
	s.once.Do(func() {
		s.records = records
	})
	return s
}

// Load fetches the index. Only the first call does any work; later calls
// return the first call's result. On failure the index stays empty, the
// error is logged and returned, and searches yield no hits.
func (s *StaticIndex) Load(ctx context.Context) error {
	s.once.Do(func() {
		loc, remote := IndexLocation(s.opts.BaseURL, s.opts.IndexPath)
		records, err := LoadIndex(ctx, s.opts.Client, loc, remote)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.loadErr = err
			slog.Error("search index load failed", append(errors.LogAttrs(err), slog.String("source", loc))...)
			return
		}
		s.records = records
		slog.Info("search index loaded",
			slog.Int("records", len(records)),
			slog.String("source", loc))
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Len returns the number of loaded records.
func (s *StaticIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Err returns the load failure, if any.
func (s *StaticIndex) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Retrieve matches the normalized query against the loaded records.
func (s *StaticIndex) Retrieve(ctx context.Context, query string) ([]record.Hit, error) {
	q := search.Normalize(query)
	if q == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if hits, ok := s.cache.Get(q); ok {
			return slices.Clone(hits), nil
		}
	}

	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	hits := search.Match(records, q, s.opts.MaxResults)
	// An index that has not loaded yet is not worth memoizing.
	if s.cache != nil && records != nil {
		s.cache.Add(q, hits)
	}
	return slices.Clone(hits), nil
}

// Link returns the pre-generated page of a post.
func (s *StaticIndex) Link(id record.ID) string {
	return ExpandLink(s.opts.LinkPattern, id)
}

// Mode returns ModeStatic.
func (s *StaticIndex) Mode() Mode {
	return ModeStatic
}
