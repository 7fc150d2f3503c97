package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/record"
)

func TestWriteText(t *testing.T) {
	// Given: a hit with a line break in its content
	hits := []record.Hit{{Record: record.Record{ID: "1", UserName: "alice", Content: "hello\nworld", CreatedAt: "2024-01-02"}}}
	list := Results(hits, "world", Options{Link: staticLink})

	// When: writing plain text
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, list))

	// Then: the excerpt stays on one line with bracketed highlights
	assert.Equal(t, "alice  2024-01-02\n  hello [world]\n  /posts/1.html\n", buf.String())
}

func TestWriteText_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Failed(Messages{})))
	assert.Equal(t, DefaultMessages().SearchFailed+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteText(&buf, Cleared()))
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	hits := []record.Hit{{Record: record.Record{ID: "7", UserName: "bob", Content: "world peace", CreatedAt: "2024-01-02"}, Score: 16}}
	list := Results(hits, "world", Options{Link: staticLink})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, list))

	var decoded struct {
		State   string `json:"state"`
		Results []struct {
			ID         string   `json:"id"`
			Excerpt    string   `json:"excerpt"`
			Highlights [][2]int `json:"highlights"`
			Link       string   `json:"link"`
			Score      int      `json:"score"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "rows", decoded.State)
	require.Len(t, decoded.Results, 1)
	r := decoded.Results[0]
	assert.Equal(t, "7", r.ID)
	assert.Equal(t, "world peace", r.Excerpt)
	assert.Equal(t, [][2]int{{0, 5}}, r.Highlights)
	assert.Equal(t, "/posts/7.html", r.Link)
	assert.Equal(t, 16, r.Score)
}

func TestWriteJSON_EmptyResultsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Results(nil, "q", Options{})))
	assert.Contains(t, buf.String(), `"results": []`)
	assert.Contains(t, buf.String(), `"state": "no_results"`)
}
