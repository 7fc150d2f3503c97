package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/errors"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Static")
	require.NoError(t, err)
	assert.Equal(t, ModeStatic, m)

	m, err = ParseMode(" remote ")
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, m)

	_, err = ParseMode("hybrid")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidMode, errors.GetCode(err))
}

func TestIndexLocation(t *testing.T) {
	tests := []struct {
		name, base, path, want string
		remote                 bool
	}{
		{"http base", "https://blog.example.org/", "", "https://blog.example.org/assets/search-index.json", true},
		{"http custom path", "http://localhost:8000", "/idx.json", "http://localhost:8000/idx.json", true},
		{"directory", "public", "", filepath.Join("public", "assets", "search-index.json"), false},
		{"file url", "file:///srv/site", "", filepath.Join("/srv/site", "assets", "search-index.json"), false},
		{"empty base", "", "", filepath.Join("assets", "search-index.json"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, remote := IndexLocation(tt.base, tt.path)
			assert.Equal(t, tt.want, loc)
			assert.Equal(t, tt.remote, remote)
		})
	}
}

func TestAbsolute(t *testing.T) {
	assert.Equal(t, "https://blog.example.org/posts/1.html", Absolute("https://blog.example.org/archive/", "/posts/1.html"))
	assert.Equal(t, "/post/1", Absolute("./public", "/post/1"))
	assert.Equal(t, "/post/1", Absolute("", "/post/1"))
}

func TestExpandLink_EscapesID(t *testing.T) {
	assert.Equal(t, "/posts/a%2Fb.html", ExpandLink(DefaultStaticLink, "a/b"))
}
