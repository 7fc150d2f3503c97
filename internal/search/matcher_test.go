package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/postsearch/internal/record"
)

func rec(id, content string) record.Record {
	return record.Record{ID: record.ID(id), UserName: "user" + id, Content: content, CreatedAt: "2024-01-02T00:00:00Z"}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world", Normalize("  Hello World \t"))
	assert.Equal(t, "", Normalize("   \n"))
}

func TestMatch_SingleRecordScenario(t *testing.T) {
	// Given: one record and a query that occurs once, not at the start
	records := []record.Record{{ID: "1", UserName: "alice", Content: "hello world", CreatedAt: "2024-01-02T00:00:00Z"}}

	// When: matching
	hits := Match(records, "world", DefaultMaxResults)

	// Then: one hit with score 10 + 0 + 1
	require.Len(t, hits, 1)
	assert.Equal(t, record.ID("1"), hits[0].ID)
	assert.Equal(t, 11, hits[0].Score)
}

func TestMatch_EmptyQueryScansNothing(t *testing.T) {
	records := []record.Record{rec("1", "anything")}
	assert.Nil(t, Match(records, "", DefaultMaxResults))
}

func TestMatch_CaseInsensitiveContent(t *testing.T) {
	records := []record.Record{rec("1", "Hello WORLD"), rec("2", "nothing here")}

	hits := Match(records, Normalize("World"), DefaultMaxResults)

	require.Len(t, hits, 1)
	assert.Equal(t, record.ID("1"), hits[0].ID)
}

func TestMatch_CapsResultsAndStopsScanning(t *testing.T) {
	// Given: 30 matching records where the best one comes last
	var records []record.Record
	for i := 0; i < 29; i++ {
		records = append(records, rec(fmt.Sprint(i), "about go"))
	}
	records = append(records, rec("best", "go go go go"))

	// When: matching with the default cap
	hits := Match(records, "go", DefaultMaxResults)

	// Then: only the first 20 encountered are returned; the late best match is skipped
	require.Len(t, hits, DefaultMaxResults)
	for i, h := range hits {
		assert.Equal(t, record.ID(fmt.Sprint(i)), h.ID)
		assert.NotEqual(t, record.ID("best"), h.ID)
	}
}

func TestMatch_SortsByScoreStable(t *testing.T) {
	// Given: records with different scores and a tie
	records := []record.Record{
		rec("a", "x cat"),          // 10 + 1
		rec("b", "cat cat"),        // 10 + 5 + 2
		rec("c", "y cat"),          // 10 + 1, ties with a
		rec("d", "cat"),            // 10 + 5 + 1
		rec("e", "no feline here"), // no match
	}

	// When: matching
	hits := Match(records, "cat", DefaultMaxResults)

	// Then: highest first, ties keep index order
	ids := make([]record.ID, len(hits))
	scores := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		scores[i] = h.Score
	}
	assert.Equal(t, []record.ID{"b", "d", "a", "c"}, ids)
	assert.Equal(t, []int{17, 16, 11, 11}, scores)
}

func TestMatch_Properties(t *testing.T) {
	records := []record.Record{
		rec("1", "Go is fun. go go."),
		rec("2", "golang gophers"),
		rec("3", "nothing"),
		rec("4", "GO"),
		rec("5", "ago"),
	}

	for _, q := range []string{"go", "o", "gopher", "zzz", "."} {
		t.Run(q, func(t *testing.T) {
			hits := Match(records, q, DefaultMaxResults)

			assert.LessOrEqual(t, len(hits), DefaultMaxResults)
			for i, h := range hits {
				lower := strings.ToLower(h.Content)
				assert.Contains(t, lower, q)

				want := 10 + strings.Count(lower, q)
				if strings.HasPrefix(lower, q) {
					want += 5
				}
				assert.Equal(t, want, h.Score)

				if i > 0 {
					assert.GreaterOrEqual(t, hits[i-1].Score, h.Score)
				}
			}

			// Same query, same index, same answer.
			assert.Equal(t, hits, Match(records, q, DefaultMaxResults))
		})
	}
}

func TestMatch_NonPositiveLimitUsesDefault(t *testing.T) {
	var records []record.Record
	for i := 0; i < 25; i++ {
		records = append(records, rec(fmt.Sprint(i), "hit"))
	}
	assert.Len(t, Match(records, "hit", 0), DefaultMaxResults)
	assert.Len(t, Match(records, "hit", 5), 5)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		content string
		query   string
		want    int
	}{
		{"prefix and repeat", "abcabc", "abc", 17},
		{"non-overlapping count", "aaaa", "aa", 17},
		{"middle once", "hello world", "world", 11},
		{"case folded", "World world", "world", 17},
		{"metacharacters are literal", "a.b a.b", "a.b", 17},
		{"no match", "hello", "xyz", 0},
		{"empty query", "hello", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.content, tt.query))
		})
	}
}
