package handlers

import (
	"time"
)

// entryRequest carries the caller-supplied fields for create and update.
// Store-assigned fields (id, timestamps) are never accepted from the
// wire.
type entryRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Date     string   `json:"date,omitempty"` // RFC 3339 or YYYY-MM-DD
	Mood     *string  `json:"mood,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Insights *string  `json:"insights,omitempty"`
}

// parseEntryDate accepts either a full RFC 3339 timestamp or a bare
// calendar date.
func parseEntryDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
