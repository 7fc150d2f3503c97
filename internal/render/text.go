package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Bracket marks a highlighted span in plain text output.
func Bracket(s string) string {
	return "[" + s + "]"
}

// WriteText renders list as plain text, one block per row:
//
//	alice  2024-01-02
//	  hello [world]
//	  /posts/1.html
func WriteText(w io.Writer, list ResultList) error {
	if list.State == StateCleared {
		return nil
	}
	if list.Message != "" {
		_, err := fmt.Fprintln(w, list.Message)
		return err
	}

	var b strings.Builder
	for i, r := range list.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", r.Author, r.Date)
		fmt.Fprintf(&b, "  %s\n", r.Excerpt.Render(flatten, func(s string) string { return Bracket(flatten(s)) }))
		if r.Link != "" {
			fmt.Fprintf(&b, "  %s\n", r.Link)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// flatten keeps multi-line posts on one output line.
func flatten(s string) string {
	return lineBreaks.Replace(s)
}

type jsonRow struct {
	ID         string   `json:"id"`
	Author     string   `json:"user_name"`
	Date       string   `json:"date"`
	Excerpt    string   `json:"excerpt"`
	Highlights [][2]int `json:"highlights,omitempty"`
	Link       string   `json:"link"`
	Score      int      `json:"score,omitempty"`
}

type jsonList struct {
	State   string    `json:"state"`
	Message string    `json:"message,omitempty"`
	Results []jsonRow `json:"results"`
}

// WriteJSON renders list as a JSON document. Highlights are byte offsets
// into excerpt.
func WriteJSON(w io.Writer, list ResultList) error {
	out := jsonList{
		State:   list.State.String(),
		Message: list.Message,
		Results: make([]jsonRow, 0, len(list.Rows)),
	}
	for _, r := range list.Rows {
		row := jsonRow{
			ID:      r.ID.String(),
			Author:  r.Author,
			Date:    r.Date,
			Excerpt: r.Excerpt.Text,
			Link:    r.Link,
			Score:   r.Score,
		}
		for _, s := range r.Excerpt.Spans {
			row.Highlights = append(row.Highlights, [2]int{s.Start, s.End})
		}
		out.Results = append(out.Results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
