package types

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Article represents one line of a corpus file
type Article struct {
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Header      string   `json:"header"`
	Text        string   `json:"text"`
	Authors     []string `json:"authors"`
	PublishDate string   `json:"publish_date"`
}

// PublishedAt parses PublishDate. ok is false when the date is missing or malformed.
// Timestamps without a zone are read as UTC.
func (a Article) PublishedAt() (t time.Time, ok bool) {
	return ParseDate(a.PublishDate)
}

// ParseDate leniently parses an ISO-8601 style date or timestamp
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
