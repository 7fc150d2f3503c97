package render

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. RubyDate is the timestamp format of the
// post source ("Mon Jan 02 15:04:05 -0700 2006").
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -0700",
	time.RubyDate,
	time.DateOnly,
}

// FormatDate renders a post timestamp as YYYY-MM-DD in the timestamp's own
// offset. Input that does not parse is returned unchanged and empty input
// yields "".
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return raw
}
