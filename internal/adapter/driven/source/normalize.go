package source

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "", " ", "")

// ParseNumber strips currency symbols and thousand separators. Unparseable
// input yields 0.
func ParseNumber(s string) float64 {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseCount parses a whole-number fact, rounding fractional input.
func ParseCount(s string) int64 {
	return int64(math.Round(ParseNumber(s)))
}

// isoLayouts are tried before the slash and dash forms.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Month-first is tried before day-first, so 03/04/2024 is March 4th and
// 25/12/2024 falls through to December 25th.
var calendarLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"2/1/2006",
	"2-1-2006",
}

// ParseDate reads a calendar day from the supported layouts. The zero time
// means the value could not be parsed.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t)
		}
	}
	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t)
		}
	}
	return time.Time{}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
