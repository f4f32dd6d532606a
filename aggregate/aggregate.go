// Package aggregate buckets time-series records by a string key, usually a
// YYYY-MM-DD day or a YYYY-MM month. What gets accumulated per record is left
// to the caller.
package aggregate

import (
	"sort"

	"babycare/temporal"
)

// KeyFunc extracts a bucket key. Records reporting ok=false are skipped.
type KeyFunc[R any] func(R) (key string, ok bool)

// Group walks records once, creating buckets lazily on first sight of a key,
// and returns them ordered ascending by key.
func Group[R any, B any](records []R, key KeyFunc[R], init func(key string) B, add func(*B, R)) []B {
	index := make(map[string]*B)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		b, found := index[k]
		if !found {
			v := init(k)
			b = &v
			index[k] = b
		}
		add(b, r)
	}

	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]B, 0, len(keys))
	for _, k := range keys {
		out = append(out, *index[k])
	}
	return out
}

// Fold accumulates every record into a single value.
func Fold[R any, B any](records []R, acc B, add func(*B, R)) B {
	for _, r := range records {
		add(&acc, r)
	}
	return acc
}

// ByDay keys records on the calendar day prefix of a stored date value.
func ByDay[R any](date func(R) string) KeyFunc[R] {
	return func(r R) (string, bool) {
		return temporal.ExtractDateKey(date(r))
	}
}

// ByMonth keys records on the YYYY-MM prefix of a stored date value.
func ByMonth[R any](date func(R) string) KeyFunc[R] {
	return func(r R) (string, bool) {
		day, ok := temporal.ExtractDateKey(date(r))
		if !ok {
			return "", false
		}
		return day[:len(temporal.MonthLayout)], true
	}
}
