// Package render turns search hits into a result list and writes that list
// as an HTML fragment, plain text or JSON.
package render

import (
	"strings"

	"github.com/Aman-CERP/postsearch/internal/record"
	"github.com/Aman-CERP/postsearch/internal/search"
)

// Messages are the placeholder texts shown instead of rows.
type Messages struct {
	NoResults    string `yaml:"no_results"`
	SearchFailed string `yaml:"search_failed"`
}

// DefaultMessages returns the English placeholders.
func DefaultMessages() Messages {
	return Messages{
		NoResults:    "No matching posts found",
		SearchFailed: "Search failed, please try again",
	}
}

func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.NoResults == "" {
		m.NoResults = d.NoResults
	}
	if m.SearchFailed == "" {
		m.SearchFailed = d.SearchFailed
	}
	return m
}

// State tells what a ResultList shows.
type State int

const (
	// StateCleared is an empty results container.
	StateCleared State = iota
	// StateRows shows one row per hit.
	StateRows
	// StateNoResults shows the "no results" placeholder.
	StateNoResults
	// StateFailed shows the "search failed" placeholder.
	StateFailed
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateRows:
		return "rows"
	case StateNoResults:
		return "no_results"
	case StateFailed:
		return "failed"
	default:
		return "cleared"
	}
}

// Row is one displayed hit.
type Row struct {
	ID      record.ID
	Author  string
	Date    string
	Excerpt search.Excerpt
	Link    string
	Score   int
}

// ResultList is the full content of the results container.
// Message is set for the two placeholder states only.
type ResultList struct {
	State   State
	Rows    []Row
	Message string
}

// Len returns the number of rows.
func (l ResultList) Len() int {
	return len(l.Rows)
}

// Options controls how hits become rows.
type Options struct {
	// Link maps a post id to its page URL.
	Link     func(record.ID) string
	Excerpt  search.ExcerptOptions
	Messages Messages
}

// Cleared returns the empty results container.
func Cleared() ResultList {
	return ResultList{State: StateCleared}
}

// Results builds the rows for hits in the given order. query is the trimmed
// query as typed; it drives excerpt placement and highlighting. An empty hit
// list yields the "no results" placeholder.
func Results(hits []record.Hit, query string, opts Options) ResultList {
	if len(hits) == 0 {
		return ResultList{
			State:   StateNoResults,
			Message: opts.Messages.withDefaults().NoResults,
		}
	}

	query = strings.TrimSpace(query)
	rows := make([]Row, 0, len(hits))
	for _, h := range hits {
		row := Row{
			ID:      h.ID,
			Author:  h.UserName,
			Date:    FormatDate(h.CreatedAt),
			Excerpt: search.BuildExcerpt(h.Content, query, opts.Excerpt),
			Score:   h.Score,
		}
		if opts.Link != nil {
			row.Link = opts.Link(h.ID)
		}
		rows = append(rows, row)
	}
	return ResultList{State: StateRows, Rows: rows}
}

// Failed returns the "search failed" placeholder.
func Failed(msgs Messages) ResultList {
	return ResultList{
		State:   StateFailed,
		Message: msgs.withDefaults().SearchFailed,
	}
}
