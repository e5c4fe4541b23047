package domain

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time of day. The zero value means "absent".
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}

	year, month, day := t.Date()
	return Date{year: year, month: month, day: day}
}

// ParseDate parses a YYYY-MM-DD value. Blank or malformed input yields the
// zero Date and false.
func ParseDate(raw string) (Date, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Date{}, false
	}

	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return Date{}, false
	}

	return DateOf(parsed), true
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Start(time.UTC).Format(dateLayout)
}

// Start returns midnight of d in loc.
func (d Date) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the same input as ParseDate; malformed text decodes
// to the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	*d, _ = ParseDate(string(text))
	return nil
}
