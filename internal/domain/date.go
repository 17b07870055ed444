package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, time.RFC3339, time.RFC3339Nano}

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseRange(start, end string) (time.Time, *time.Time, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return time.Time{}, nil, err
	}
	if strings.TrimSpace(end) == "" {
		return startDate, nil, nil
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return time.Time{}, nil, err
	}
	return startDate, &endDate, nil
}
