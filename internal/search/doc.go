// Package search implements literal, case-insensitive matching over an
// in-memory list of post records, plus excerpt extraction for display.
//
// Matching is a substring test on lower-cased content. There is no
// tokenization, stemming or fuzzy matching:
//
//	hits := search.Match(records, search.Normalize(raw), search.DefaultMaxResults)
//	for _, h := range hits {
//	    e := search.BuildExcerpt(h.Content, strings.TrimSpace(raw), search.ExcerptOptions{})
//	    ...
//	}
//
// Excerpts are values; callers decide how a highlighted span looks.
package search
