package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"rfc3339 utc", "2024-01-02T00:00:00Z", "2024-01-02"},
		{"rfc3339 fractional", "2024-03-05T10:11:12.345Z", "2024-03-05"},
		{"keeps own offset", "2024-01-02T23:30:00-05:00", "2024-01-02"},
		{"no zone", "2024-01-02T08:00:00", "2024-01-02"},
		{"space separated", "2023-12-31 23:59:59", "2023-12-31"},
		{"date only", "2021-07-04", "2021-07-04"},
		{"post source format", "Tue Mar 05 21:14:09 +0800 2019", "2019-03-05"},
		{"unpadded passes through", "2020-1-2", "2020-1-2"},
		{"not a date", "not-a-date", "not-a-date"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.raw))
		})
	}
}
