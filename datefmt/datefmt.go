// ABOUTME: Formats instants as "Mon, 02 Jan 2006" display dates in an explicit time zone.
// ABOUTME: Text input is parsed first; unparseable text fails with ParseError instead of placeholder text.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the display pattern: abbreviated weekday, zero-padded day,
// abbreviated month and four-digit year.
const Layout = "Mon, 02 Jan 2006"

// ErrParse is the sentinel wrapped by every ParseError.
var ErrParse = errors.New("unparseable date")

// ParseError reports text that no accepted layout could parse.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date %q: no accepted layout matched", e.Input)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Input is an already-parsed instant or text to parse.
type Input interface {
	time.Time | string
}

// layouts are tried in order. zoned layouts carry their own offset; the rest
// are interpreted in a fixed zone (see Parse).
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC1123Z,
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		Layout,
	}
	dateOnlyLayout = time.DateOnly
)

// namedZones are the abbreviations accepted in RFC 1123 text, in seconds east
// of UTC. time.Parse gives any other abbreviation a zero offset unless it
// happens to match the host zone, so those are rejected instead.
var namedZones = map[string]int{
	"UTC": 0,
	"GMT": 0,
	"EST": -5 * 60 * 60,
	"EDT": -4 * 60 * 60,
	"CST": -6 * 60 * 60,
	"CDT": -5 * 60 * 60,
	"MST": -7 * 60 * 60,
	"MDT": -6 * 60 * 60,
	"PST": -8 * 60 * 60,
	"PDT": -7 * 60 * 60,
}

// weekdayLayouts start with an abbreviated weekday that time.Parse reads but
// does not check against the date.
var weekdayLayouts = map[string]bool{
	time.RFC1123Z: true,
	time.RFC1123:  true,
	Layout:        true,
}

// FormatDisplayDate renders in using Layout in loc. A nil loc means the
// process-local zone, so the same instant can print different dates on
// different machines; pass a location when output must be reproducible.
func FormatDisplayDate[T Input](in T, loc *time.Location) (string, error) {
	switch v := any(in).(type) {
	case time.Time:
		return Format(v, loc), nil
	case string:
		t, err := Parse(v, loc)
		if err != nil {
			return "", err
		}
		return Format(t, loc), nil
	}
	panic("unreachable")
}

// Format renders t using Layout in loc (time.Local when nil).
func Format(t time.Time, loc *time.Location) string {
	return t.In(resolve(loc)).Format(Layout)
}

// Parse converts text to an instant. Accepted forms:
//
//   - RFC 3339, with or without fractional seconds
//   - RFC 1123 and RFC 1123 with numeric zone
//   - date-time without offset ("2024-01-15T12:00:00", "2024-01-15T12:00"), read in loc
//   - the display layout itself ("Mon, 15 Jan 2024"), read as midnight in loc
//   - date only ("2024-01-15"), read as midnight UTC
//
// RFC 1123 zone names are limited to UTC, GMT and the US zones (EST, EDT,
// CST, CDT, MST, MDT, PST, PDT). A leading weekday must agree with the date.
// Surrounding whitespace is ignored. Anything else fails with *ParseError.
func Parse(s string, loc *time.Location) (time.Time, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return time.Time{}, &ParseError{Input: s}
	}

	t, layout, ok := parseText(text, resolve(loc))
	if !ok {
		return time.Time{}, &ParseError{Input: s}
	}
	if weekdayLayouts[layout] && !strings.EqualFold(text[:3], t.Weekday().String()[:3]) {
		return time.Time{}, &ParseError{Input: s}
	}
	return t, nil
}

// parseText returns the instant and the layout that matched it.
func parseText(text string, zone *time.Location) (time.Time, string, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, layout, true
		}
	}
	if t, err := time.Parse(time.RFC1123, text); err == nil {
		name, _ := t.Zone()
		offset, known := namedZones[strings.ToUpper(name)]
		if !known {
			return time.Time{}, "", false
		}
		y, m, d := t.Date()
		h, mi, sec := t.Clock()
		return time.Date(y, m, d, h, mi, sec, t.Nanosecond(), time.FixedZone(name, offset)), time.RFC1123, true
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, text, time.UTC); err == nil {
		return t, dateOnlyLayout, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, text, zone); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

// Formatter pins a location so callers don't pass it on every call.
type Formatter struct {
	Location *time.Location
}

// Format renders t in the formatter's location.
func (f Formatter) Format(t time.Time) string {
	return Format(t, f.Location)
}

// FormatString parses s and renders it in the formatter's location.
func (f Formatter) FormatString(s string) (string, error) {
	return FormatDisplayDate(s, f.Location)
}

// LoadLocation resolves a zone name. "" and "Local" select the process zone.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}

func resolve(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
