package value

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DatePrecision indicates the granularity of a date.
type DatePrecision int

const (
	PrecisionUnknown DatePrecision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDay
)

// ErrUnparseableDate is returned when no date can be read from the input.
var ErrUnparseableDate = errors.New("unparseable date")

// Date represents a parsed calendar date with its precision.
type Date struct {
	Year      int
	Month     int
	Day       int
	Precision DatePrecision
	Raw       string // Original string
}

// ISO returns the date as YYYY-MM-DD. Missing month or day become 01, so a
// bare year maps to January 1st.
func (d Date) ISO() string {
	if d.Year == 0 {
		return ""
	}
	month, day := d.Month, d.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, month, day)
}

// IsZero returns true if the date has no meaningful value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Common date patterns
var (
	isoDateRegex = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2})(?:-(\d{1,2}))?)?$`)
	slashRegex   = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	yearExtract  = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
)

// Layouts tried after the ISO forms, most specific first.
var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.RFC1123,
	time.RFC1123Z,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
}

var monthLayouts = map[string]bool{"January 2006": true, "Jan 2006": true}

// ParseDate parses a date string with format auto-detection.
// Supports ISO 8601 dates and timestamps, a few human-readable forms, and
// as a last resort a four-digit year found anywhere in the text.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrUnparseableDate
	}

	d := Date{Raw: s}

	if matches := isoDateRegex.FindStringSubmatch(s); matches != nil {
		d.Year, _ = strconv.Atoi(matches[1])
		d.Precision = PrecisionYear
		if matches[2] != "" {
			d.Month, _ = strconv.Atoi(matches[2])
			d.Precision = PrecisionMonth
		}
		if matches[3] != "" {
			d.Day, _ = strconv.Atoi(matches[3])
			d.Precision = PrecisionDay
		}
		return d, checkDate(d)
	}

	if matches := slashRegex.FindStringSubmatch(s); matches != nil {
		d.Year, _ = strconv.Atoi(matches[1])
		d.Month, _ = strconv.Atoi(matches[2])
		d.Day, _ = strconv.Atoi(matches[3])
		d.Precision = PrecisionDay
		return d, checkDate(d)
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Timestamps are reported in UTC so a release published late in the
		// evening elsewhere keeps the date GitHub shows.
		t = t.UTC()
		d.Year, d.Month, d.Day = t.Year(), int(t.Month()), t.Day()
		d.Precision = PrecisionDay
		if monthLayouts[layout] {
			d.Day = 0
			d.Precision = PrecisionMonth
		}
		return d, nil
	}

	if matches := yearExtract.FindStringSubmatch(s); matches != nil {
		d.Year, _ = strconv.Atoi(matches[1])
		d.Precision = PrecisionYear
		return d, nil
	}

	return Date{Raw: s}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
}

func checkDate(d Date) error {
	if d.Month == 0 {
		return nil
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d out of range in %q", ErrUnparseableDate, d.Month, d.Raw)
	}
	if d.Day == 0 {
		return nil
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day {
		return fmt.Errorf("%w: day %d out of range in %q", ErrUnparseableDate, d.Day, d.Raw)
	}
	return nil
}

// ISODate parses any supported representation and returns YYYY-MM-DD, or ""
// when nothing usable is found. Numbers are read as years.
func ISODate(v any) string {
	s := strings.TrimSpace(Text(v))
	if s == "" {
		return ""
	}
	d, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return d.ISO()
}
