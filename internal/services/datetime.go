package services

import (
	"errors"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
}

// NormalizeDate returns d as YYYY-MM-DD. An empty date stays empty.
func NormalizeDate(d string) (string, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", errors.New("invalid date format, use YYYY-MM-DD")
}

// NormalizeTime returns t as 24-hour HH:MM. An empty time stays empty.
func NormalizeTime(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", errors.New("invalid time format, use HH:MM or HH:MM AM/PM")
}
