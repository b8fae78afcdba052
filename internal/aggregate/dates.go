package aggregate

import (
	"strings"
	"time"
)

// dateLayouts is the ordered set of layouts tried when parsing order_date.
// Day-first layouts come first; the sales exports this pipeline handles use
// the day-first convention.
var dateLayouts = []string{
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006",
	"02/01/2006",
	"2.1.2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate turns an order_date cell into a calendar date (time truncated to
// midnight UTC). Unparseable or missing values report ok=false; the caller
// discards those rows.
func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return dateOnly(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return dateOnly(parsed), true
			}
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
