// Package source provides the two ways a session retrieves hits for a query:
// a static index matched in memory, and a remote search endpoint.
package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/record"
)

// Mode selects the retrieval strategy.
type Mode string

const (
	// ModeStatic matches against the site's generated JSON index.
	ModeStatic Mode = "static"
	// ModeRemote delegates each query to a search endpoint.
	ModeRemote Mode = "remote"
)

// Link patterns. "{id}" is replaced by the post id.
const (
	DefaultStaticLink = "/posts/{id}.html"
	DefaultRemoteLink = "/post/{id}"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStatic, ModeRemote:
		return m, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown search mode: "+s, nil).
			WithSuggestion("use \"static\" or \"remote\"")
	}
}

// Retriever produces ranked hits for a query and knows where each hit's
// page lives.
type Retriever interface {
	// Retrieve returns hits for the trimmed query as typed. A blank query
	// returns no hits and performs no work.
	Retrieve(ctx context.Context, query string) ([]record.Hit, error)

	// Link returns the site-relative page URL of a post.
	Link(id record.ID) string

	// Mode reports which strategy this is.
	Mode() Mode
}

// ExpandLink substitutes id into a link pattern.
func ExpandLink(pattern string, id record.ID) string {
	return strings.ReplaceAll(pattern, "{id}", url.PathEscape(id.String()))
}

// Absolute resolves a site-relative link against base. When base is not an
// absolute http(s) URL the link is returned as is.
func Absolute(base, link string) string {
	b, err := url.Parse(base)
	if err != nil || (b.Scheme != "http" && b.Scheme != "https") || b.Host == "" {
		return link
	}
	l, err := url.Parse(link)
	if err != nil {
		return link
	}
	return b.ResolveReference(l).String()
}
