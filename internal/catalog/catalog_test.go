package catalog

import (
	"testing"
	"time"
)

func TestUpcomingDaysStartsTomorrow(t *testing.T) {
	now := time.Date(2024, time.December, 30, 18, 45, 0, 0, time.UTC)

	days := UpcomingDays(now, BookingWindowDays)
	if len(days) != BookingWindowDays {
		t.Fatalf("expected %d days, got %d", BookingWindowDays, len(days))
	}
	if days[0].ISO != "2024-12-31" {
		t.Fatalf("expected first day 2024-12-31, got %s", days[0].ISO)
	}
	if days[1].ISO != "2025-01-01" {
		t.Fatalf("expected rollover to 2025-01-01, got %s", days[1].ISO)
	}
	if days[0].Label != "Tue, 31 Dec" {
		t.Fatalf("unexpected label %q", days[0].Label)
	}
}

func TestIsSlot(t *testing.T) {
	if !IsSlot("02:30 PM") {
		t.Fatal("expected template slot to be accepted")
	}
	if IsSlot("03:00 PM") {
		t.Fatal("expected unknown slot to be rejected")
	}
}

func TestIsServiceType(t *testing.T) {
	if !IsServiceType("Car Wash & Detailing") {
		t.Fatal("expected listed service to be accepted")
	}
	if IsServiceType("car wash & detailing") || IsServiceType("Anything at all") {
		t.Fatal("expected unlisted service to be rejected")
	}
}

func TestIsBookableDate(t *testing.T) {
	now := time.Date(2024, time.January, 5, 23, 30, 0, 0, time.UTC)

	cases := map[string]bool{
		"2024-01-05": false,
		"2024-01-06": true,
		"2024-01-15": true,
		"2024-01-16": false,
		"1999-01-01": false,
		"06/01/2024": false,
	}
	for iso, want := range cases {
		if got := IsBookableDate(now, BookingWindowDays, iso); got != want {
			t.Fatalf("IsBookableDate(%q) = %v, want %v", iso, got, want)
		}
	}
}
