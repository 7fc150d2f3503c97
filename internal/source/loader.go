package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aman-CERP/postsearch/internal/errors"
	"github.com/Aman-CERP/postsearch/internal/record"
)

// DefaultIndexPath is where the site generator writes the search index.
const DefaultIndexPath = "/assets/search-index.json"

// maxIndexBytes bounds how much of an index or response body is read.
const maxIndexBytes = 64 << 20

// IndexLocation resolves where the index lives. base may be an http(s) URL,
// a file:// URL or a directory path. remote reports an http(s) location.
func IndexLocation(base, indexPath string) (loc string, remote bool) {
	if indexPath == "" {
		indexPath = DefaultIndexPath
	}
	if base == "" {
		base = "."
	}

	if u, err := url.Parse(base); err == nil {
		switch u.Scheme {
		case "http", "https":
			return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(indexPath, "/"), true
		case "file":
			base = u.Path
		}
	}
	return filepath.Join(base, filepath.FromSlash(strings.TrimLeft(indexPath, "/"))), false
}

// LoadIndex reads the index from an http(s) location or a file path.
func LoadIndex(ctx context.Context, client *http.Client, loc string, remote bool) ([]record.Record, error) {
	if remote {
		return FetchIndex(ctx, client, loc)
	}
	return ReadIndexFile(loc)
}

// FetchIndex downloads and decodes the index at rawURL.
func FetchIndex(ctx context.Context, client *http.Client, rawURL string) ([]record.Record, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.IndexError(errors.ErrCodeIndexRead, "invalid index URL", err).
			WithDetail("url", rawURL)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.IndexError(errors.ErrCodeNetworkUnavailable, "search index could not be fetched", err).
			WithDetail("url", rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.IndexError(errors.ErrCodeIndexNotFound, "search index not found", nil).
			WithDetail("url", rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.IndexError(errors.ErrCodeBadStatus, fmt.Sprintf("search index returned status %d", resp.StatusCode), nil).
			WithDetail("url", rawURL).
			WithDetail("status", fmt.Sprint(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexBytes))
	if err != nil {
		return nil, errors.IndexError(errors.ErrCodeIndexRead, "search index could not be read", err).
			WithDetail("url", rawURL)
	}
	return decodeIndex(data, rawURL)
}

// ReadIndexFile reads and decodes the index file at path.
func ReadIndexFile(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeIndexRead
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrCodeIndexNotFound
		}
		return nil, errors.IndexError(code, "search index could not be read", err).
			WithDetail("path", path)
	}
	return decodeIndex(data, path)
}

func decodeIndex(data []byte, loc string) ([]record.Record, error) {
	records, err := record.Decode(data)
	if err != nil {
		return nil, errors.IndexError(errors.ErrCodeIndexMalformed, "search index is not a JSON array of posts", err).
			WithDetail("source", loc)
	}
	return records, nil
}
