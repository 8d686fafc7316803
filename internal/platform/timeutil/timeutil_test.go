package timeutil

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	in := time.Date(2024, time.July, 4, 17, 45, 12, 999, time.UTC)
	want := time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)
	if got := Date(in); !got.Equal(want) {
		t.Fatalf("Date = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, time.July, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.July, 4, 23, 59, 0, 0, time.UTC)
	next := time.Date(2024, time.July, 5, 0, 1, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Fatalf("same date should match")
	}
	if SameDay(morning, next) {
		t.Fatalf("different dates should not match")
	}
}

func TestSameDayComparesInFirstArgsZone(t *testing.T) {
	paris := time.FixedZone("CEST", 2*3600)
	// 01:30 July 5 in Paris is 23:30 July 4 in UTC
	parisEarly := time.Date(2024, time.July, 5, 1, 30, 0, 0, paris)
	utcNoon := time.Date(2024, time.July, 4, 10, 0, 0, 0, time.UTC)

	if SameDay(parisEarly, utcNoon) {
		t.Fatalf("in Paris the dates differ")
	}
	if !SameDay(utcNoon, parisEarly) {
		t.Fatalf("in UTC both fall on July 4")
	}
}

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time should be nil")
	}
	now := time.Now()
	if p := Ptr(now); p == nil || !p.Equal(now) {
		t.Fatalf("non-zero time lost")
	}
}
