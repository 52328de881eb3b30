// Package isodate handles the ISO-8601 (YYYY-MM-DD) date strings that all
// clinical dates are stored as. Lexicographic order of these strings matches
// chronological order, which the stores rely on for date-descending listings.
package isodate

import "time"

const Layout = "2006-01-02"

// Valid reports whether s is a well-formed YYYY-MM-DD date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// Parse parses a YYYY-MM-DD date string.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Age returns full years elapsed between the birth date string and asOf.
// An empty or malformed birth date yields 0.
func Age(birthDate string, asOf time.Time) int {
	birth, err := time.Parse(Layout, birthDate)
	if err != nil {
		return 0
	}
	years := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
