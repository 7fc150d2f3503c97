package search

import (
	"slices"
	"strings"

	"github.com/Aman-CERP/postsearch/internal/record"
)

// Scoring weights for the local matcher.
const (
	// ContainsBoost is awarded to every matching record.
	ContainsBoost = 10
	// PrefixBoost is added when the content starts with the query.
	PrefixBoost = 5
	// DefaultMaxResults caps the number of hits per query.
	DefaultMaxResults = 20
)

// Normalize trims and lower-cases a raw query.
// An empty result means "clear the results, do not search".
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Match scans records in index order and returns up to limit hits for the
// normalized query, highest score first.
//
// Scanning stops as soon as limit matches are collected, so a later record
// with a higher score can be left out. Ties keep index order.
func Match(records []record.Record, query string, limit int) []record.Hit {
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	hits := make([]record.Hit, 0, min(limit, len(records)))
	for _, r := range records {
		if len(hits) >= limit {
			break
		}
		content := strings.ToLower(r.Content)
		if !strings.Contains(content, query) {
			continue
		}
		hits = append(hits, record.Hit{Record: r, Score: score(content, query)})
	}

	slices.SortStableFunc(hits, func(a, b record.Hit) int {
		return b.Score - a.Score
	})
	return hits
}

// Score returns the relevance of content for a normalized query,
// or 0 when the content does not contain it.
func Score(content, query string) int {
	if query == "" {
		return 0
	}
	content = strings.ToLower(content)
	if !strings.Contains(content, query) {
		return 0
	}
	return score(content, query)
}

// score expects lower-cased content that contains query.
func score(content, query string) int {
	s := ContainsBoost
	if strings.HasPrefix(content, query) {
		s += PrefixBoost
	}
	return s + strings.Count(content, query)
}
