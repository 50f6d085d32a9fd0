package storage

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// ValidDateKey reports whether key is a well-formed zero-padded ISO date.
func ValidDateKey(key string) bool {
	_, err := time.Parse(dateLayout, key)
	return err == nil
}

// SortDatesDescending orders date keys newest first, comparing as calendar
// dates. Keys that fail to parse sort after all valid dates, between
// themselves by reverse byte order, so a malformed key never hides a real one.
func SortDatesDescending(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		ti, errI := time.Parse(dateLayout, dates[i])
		tj, errJ := time.Parse(dateLayout, dates[j])
		switch {
		case errI == nil && errJ == nil:
			return ti.After(tj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return dates[i] > dates[j]
		}
	})
}
