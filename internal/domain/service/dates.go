package service

import (
	"strings"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/errors"
)

// Layouts accepted from date pickers and from the remote API, most common first.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
}

// ParseDate reads a date or timestamp. Values without a zone are taken to be in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.NewDomainError(errors.ErrInvalidDate, "empty date")
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc), nil
		}
	}

	return time.Time{}, errors.NewDomainError(errors.ErrInvalidDate, "unsupported date %q, expected YYYY-MM-DD", s)
}

// NormalizeDate returns the calendar day of t in loc as YYYY-MM-DD.
func NormalizeDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
