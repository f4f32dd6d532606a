// Package temporal converts caller supplied dates into the canonical wall
// clock strings stored by the repositories. All day boundary math happens in
// the single operating timezone handed to NewNormalizer.
package temporal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	MonthLayout    = "2006-01"
)

var ErrInvalidFormat = errors.New("invalid date format")

var (
	dayMonthYear = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

type Normalizer struct {
	loc *time.Location
	now func() time.Time
}

func NewNormalizer(loc *time.Location, now func() time.Time) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{loc: loc, now: now}
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

func (n *Normalizer) Now() time.Time {
	return n.now().In(n.loc)
}

func (n *Normalizer) Today() string {
	return n.Now().Format(DateLayout)
}

func (n *Normalizer) Yesterday() string {
	return n.Now().AddDate(0, 0, -1).Format(DateLayout)
}

// NowDateTime returns the current operating wall clock time.
func (n *Normalizer) NowDateTime() string {
	return n.Now().Format(DateTimeLayout)
}

// ParseDate accepts DD/MM/YYYY first; once that shape matches the result must
// be a real calendar date. Anything else goes through generic parsing, with
// zone-less inputs read as operating wall clock time.
func (n *Normalizer) ParseDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidFormat)
	}

	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, n.loc)
		if t.Year() != year || int(t.Month()) != month || t.Day() != day {
			return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidFormat, s)
		}
		return t, nil
	}

	t, err := dateparse.ParseIn(s, n.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return t.In(n.loc), nil
}

func (n *Normalizer) CanonicalDate(input string) (string, error) {
	t, err := n.ParseDate(input)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

func (n *Normalizer) CanonicalDateTime(input string) (string, error) {
	t, err := n.ParseDate(input)
	if err != nil {
		return "", err
	}
	return t.Format(DateTimeLayout), nil
}

// DateRangeForDay returns the closed interval covering the calendar day of
// input. Callers compare inclusively on both ends.
func (n *Normalizer) DateRangeForDay(input string) (start, end string, err error) {
	day, err := n.CanonicalDate(input)
	if err != nil {
		return "", "", err
	}
	return day + " 00:00:00", day + " 23:59:59", nil
}

// WeekWindow covers the trailing seven days ending today, both inclusive.
func (n *Normalizer) WeekWindow() (start, end string) {
	today := n.Now()
	return today.AddDate(0, 0, -6).Format(DateLayout), today.Format(DateLayout)
}

// MonthWindow expands a YYYY-MM selector to its first and last calendar day.
func (n *Normalizer) MonthWindow(selector string) (start, end string, err error) {
	s := strings.TrimSpace(selector)
	if !monthPattern.MatchString(s) {
		return "", "", fmt.Errorf("%w: month must be YYYY-MM, got %q", ErrInvalidFormat, selector)
	}
	first, err := time.ParseInLocation(MonthLayout, s, n.loc)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidFormat, selector)
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout), nil
}

func (n *Normalizer) CurrentMonthWindow() (start, end string) {
	start, end, _ = n.MonthWindow(n.Now().Format(MonthLayout))
	return start, end
}

// ExtractDateKey returns the calendar day prefix of a stored date value.
// Values shorter than a full date yield ok=false; it never fails.
func ExtractDateKey(value string) (key string, ok bool) {
	if len(value) < len(DateLayout) {
		return "", false
	}
	return value[:len(DateLayout)], true
}

func ExtractDateKeyPtr(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return ExtractDateKey(*value)
}

// DayBounds turns a canonical date range into datetime bounds.
func DayBounds(startDate, endDate string) (string, string) {
	return startDate + " 00:00:00", endDate + " 23:59:59"
}
