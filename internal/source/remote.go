package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/record"
)

// Remote endpoint defaults.
const (
	DefaultEndpoint   = "/api/search"
	DefaultQueryParam = "q"
)

// RemoteOptions configures a Remote.
type RemoteOptions struct {
	// BaseURL resolves a relative Endpoint.
	BaseURL string
	// Endpoint is the search URL, absolute or relative to BaseURL.
	Endpoint   string
	QueryParam string
	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout     time.Duration
	LinkPattern string
	Client      *http.Client
}

// Remote sends every query to a search endpoint and returns its ranked
// list unchanged. Overlapping requests are neither de-duplicated nor
// cancelled; callers order the outcomes.
type Remote struct {
	endpoint *url.URL
	opts     RemoteOptions
}

// NewRemote validates the endpoint and creates a Remote.
func NewRemote(opts RemoteOptions) (*Remote, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.QueryParam == "" {
		opts.QueryParam = DefaultQueryParam
	}
	if opts.LinkPattern == "" {
		opts.LinkPattern = DefaultRemoteLink
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}

	ep, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, errors.ConfigError("invalid remote endpoint", err).WithDetail("endpoint", opts.Endpoint)
	}
	if !ep.IsAbs() {
		base, err := url.Parse(opts.BaseURL)
		if err != nil || !base.IsAbs() || (base.Scheme != "http" && base.Scheme != "https") {
			return nil, errors.ConfigError("relative remote endpoint needs an http(s) site.base_url", err).
				WithDetail("endpoint", opts.Endpoint).
				WithDetail("base_url", opts.BaseURL)
		}
		ep = base.ResolveReference(ep)
	}

	return &Remote{endpoint: ep, opts: opts}, nil
}

// Endpoint returns the resolved endpoint URL.
func (r *Remote) Endpoint() string {
	return r.endpoint.String()
}

// Retrieve issues one GET for the trimmed query.
func (r *Remote) Retrieve(ctx context.Context, query string) ([]record.Hit, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	u := *r.endpoint
	u.RawQuery = queryString(u.Query(), r.opts.QueryParam, q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.InternalError("build search request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.opts.Client.Do(req)
	if err != nil {
		return nil, errors.NetworkError("search request failed", err).
			WithDetail("endpoint", r.endpoint.String())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeBadStatus, fmt.Sprintf("search endpoint returned status %d", resp.StatusCode), nil).
			WithDetail("endpoint", r.endpoint.String()).
			WithDetail("status", fmt.Sprint(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexBytes))
	if err != nil {
		return nil, errors.NetworkError("search response could not be read", err)
	}
	records, err := record.DecodeStrict(data)
	if err != nil {
		return nil, errors.New(errors.ErrCodeBadResponse, "search response is not a JSON array of posts", err).
			WithDetail("endpoint", r.endpoint.String())
	}

	hits := make([]record.Hit, len(records))
	for i, rec := range records {
		hits[i] = record.Hit{Record: rec}
	}
	return hits, nil
}

// queryString adds key=value to the endpoint's own parameters. Spaces are
// sent as %20, not '+'.
func queryString(params url.Values, key, value string) string {
	params.Set(key, value)
	return strings.ReplaceAll(params.Encode(), "+", "%20")
}

// Link returns the server-routed page of a post.
func (r *Remote) Link(id record.ID) string {
	return ExpandLink(r.opts.LinkPattern, id)
}

// Mode returns ModeRemote.
func (r *Remote) Mode() Mode {
	return ModeRemote
}
