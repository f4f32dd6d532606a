// Package childage derives age labels, sleep recommendations and progress
// percentages. Everything here is pure; callers supply the current time.
package childage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// MonthsElapsed counts whole calendar months between birth and now, ignoring
// the day of month.
func MonthsElapsed(birthDate, now time.Time) int {
	return (now.Year()-birthDate.Year())*12 + int(now.Month()) - int(birthDate.Month())
}

func DeriveAgeLabel(birthDate, now time.Time) string {
	months := MonthsElapsed(birthDate, now)
	switch {
	case months < 1:
		return "Less than 1 month"
	case months < 12:
		return plural(months, "month")
	default:
		return plural(months/12, "year")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// AgeMonthsFromLabel reads the leading integer of a free-form age label such
// as "3 months" or "2 years". Labels without a leading number count as 0.
func AgeMonthsFromLabel(label string) int {
	s := strings.TrimSpace(strings.ToLower(label))
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	if strings.Contains(s[end:], "year") {
		return n * 12
	}
	return n
}

// RecommendedSleepHours is the age banded nap/night table used by sleep
// auto-fill and progress.
func RecommendedSleepHours(ageMonths int) (nap, night float64) {
	switch {
	case ageMonths < 4:
		return 8, 8
	case ageMonths < 12:
		return 4, 10
	case ageMonths < 24:
		return 2, 11
	case ageMonths <= 60:
		return 1, 11
	default:
		return 0, 10
	}
}

// ProgressPercent is the signed, rounded percentage of value against
// baseline. A non-positive baseline yields 0.
func ProgressPercent(baseline, value float64) int {
	if baseline <= 0 {
		return 0
	}
	return int(math.Round((value - baseline) / baseline * 100))
}

func SleepProgress(ageMonths int, totalHours float64) int {
	nap, night := RecommendedSleepHours(ageMonths)
	return ProgressPercent(nap+night, totalHours)
}

// CompletionPercent rounds to the nearest integer and is 0 for an empty set.
func CompletionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
