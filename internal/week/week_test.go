package week

import (
	"errors"
	"testing"
	"time"
)

func TestStartOf_AllDaysMapToSameMonday(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i).Add(13 * time.Hour)
		if got := StartOf(day); !got.Equal(monday) {
			t.Fatalf("day %d: expected %v, got %v", i, monday, got)
		}
	}
}

func TestEndOf(t *testing.T) {
	wed := time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := EndOf(wed); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStartOf_SundayBelongsToPrecedingMonday(t *testing.T) {
	sun := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := StartOf(sun); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestISO_YearBoundary(t *testing.T) {
	// 2024-12-30 (Monday) belongs to ISO week 1 of 2025.
	y, w := ISO(time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC))
	if y != 2025 || w != 1 {
		t.Fatalf("expected 2025/1, got %d/%d", y, w)
	}
	// 2021-01-01 (Friday) belongs to ISO week 53 of 2020.
	y, w = ISO(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	if y != 2020 || w != 53 {
		t.Fatalf("expected 2020/53, got %d/%d", y, w)
	}
}

func TestParseStart(t *testing.T) {
	got, err := ParseStart("2024-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Weekday() != time.Monday {
		t.Fatalf("expected a Monday, got %v", got.Weekday())
	}

	if _, err := ParseStart("2024-03-05"); !errors.Is(err, ErrNotMonday) {
		t.Fatalf("expected ErrNotMonday, got %v", err)
	}
	if _, err := ParseStart("not-a-date"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := ParseStart(""); err == nil {
		t.Fatal("expected parse error for empty input")
	}
}

func TestDayOf(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := DayOf(start, 0); !got.Equal(start) {
		t.Fatalf("offset 0: expected %v, got %v", start, got)
	}
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := DayOf(start, 6); !got.Equal(want) {
		t.Fatalf("offset 6: expected %v, got %v", want, got)
	}
}

func TestTruncate_DropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("plus9", 9*3600)
	in := time.Date(2024, 3, 4, 23, 45, 12, 999, loc)
	got := Truncate(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != time.UTC {
		t.Fatalf("expected midnight UTC, got %v", got)
	}
	if got.Day() != 4 {
		t.Fatalf("calendar day must be preserved, got %v", got)
	}
}
