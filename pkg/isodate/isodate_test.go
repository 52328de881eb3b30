package isodate

import (
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	if !Valid("1988-02-29") {
		t.Error("leap day should be valid")
	}
	for _, s := range []string{"", "02/29/1988", "1988-13-01", "1988-2-9", "not a date"} {
		if Valid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestAge(t *testing.T) {
	asOf := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birth string
		want  int
	}{
		{"1990-06-15", 34}, // birthday today
		{"1990-06-16", 33}, // birthday tomorrow
		{"1990-06-14", 34}, // birthday yesterday
		{"1990-12-01", 33},
		{"2024-06-01", 0},
		{"", 0},
		{"garbage", 0},
		{"2030-01-01", 0}, // future birth date clamps to 0
	}
	for _, tc := range cases {
		if got := Age(tc.birth, asOf); got != tc.want {
			t.Errorf("Age(%q): expected %d, got %d", tc.birth, tc.want, got)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	d, err := Parse("2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Format(d) != "2024-01-31" {
		t.Errorf("round trip mismatch: %s", Format(d))
	}
}
