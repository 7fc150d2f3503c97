// Package record defines the searchable post record shared by the static
// index file and the remote search endpoint.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a post and is used to build its page URL.
// The index generator emits ids as strings, older exports and the dynamic
// server sometimes emit them as JSON numbers. Both decode to the same value.
type ID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	// Integral floats such as 4.98e15 still name a post.
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		if f, ferr := n.Float64(); ferr == nil && f == float64(int64(f)) {
			*id = ID(strconv.FormatInt(int64(f), 10))
			return nil
		}
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string {
	return string(id)
}

// Record is one searchable post.
type Record struct {
	ID        ID     `json:"id"`
	UserName  string `json:"user_name"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Hit is a record returned for a query. Score is only meaningful for hits
// produced by the local matcher; remote hits are pre-ranked and carry zero.
type Hit struct {
	Record
	Score int `json:"score,omitempty"`
}

// Decode parses a JSON array of records.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// DecodeStrict is Decode for live search responses: a null body or a null
// element is an error rather than an empty list or an empty post.
func DecodeStrict(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("response is null, want an array")
	}

	records := make([]Record, len(raw))
	for i, item := range raw {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return nil, fmt.Errorf("element %d is null", i)
		}
		if err := json.Unmarshal(item, &records[i]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return records, nil
}
