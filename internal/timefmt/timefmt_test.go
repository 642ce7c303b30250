package timefmt

import (
	"testing"
	"time"
)

func TestSlotToDateAfternoon(t *testing.T) {
	got, ok := SlotToDate("2024-01-10", "02:30 PM", time.Local)
	if !ok {
		t.Fatal("expected slot to parse")
	}
	want := time.Date(2024, time.January, 10, 14, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSlotToDateTwelveOClock(t *testing.T) {
	cases := []struct {
		slot string
		hour int
	}{
		{"12:00 AM", 0},
		{"12:00 PM", 12},
		{"09:00 am", 9},
		{"05:30 pm", 17},
	}

	for _, tc := range cases {
		got, ok := SlotToDate("2024-03-01", tc.slot, time.UTC)
		if !ok {
			t.Fatalf("%q: expected slot to parse", tc.slot)
		}
		if got.Hour() != tc.hour {
			t.Fatalf("%q: expected hour %d, got %d", tc.slot, tc.hour, got.Hour())
		}
	}
}

func TestSlotToDateWithoutMarkerIsMidnight(t *testing.T) {
	got, ok := SlotToDate("2024-03-01", "14:00", time.UTC)
	if !ok {
		t.Fatal("expected date-only fallback")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestSlotToDateBadMinutesDefaultToZero(t *testing.T) {
	got, ok := SlotToDate("2024-03-01", "10:xx AM", time.UTC)
	if !ok {
		t.Fatal("expected slot to parse")
	}
	if got.Hour() != 10 || got.Minute() != 0 {
		t.Fatalf("expected 10:00, got %v", got)
	}
}

func TestSlotToDateHourOnly(t *testing.T) {
	got, ok := SlotToDate("2024-01-10", "2 PM", time.UTC)
	if !ok {
		t.Fatal("expected hour-only slot to parse")
	}
	want := time.Date(2024, time.January, 10, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFormatAppointmentDateTime(t *testing.T) {
	got := FormatAppointmentDateTime("2024-01-10", "02:30 PM")
	if got != "Wed, 10 Jan, 2:30 PM" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestFormatAppointmentDateTimePending(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"2024-01-10", ""},
		{"", "02:30 PM"},
		{"not-a-date", "02:30 PM"},
		{"2024-01-10", "xx:30 PM"},
		{"2024-01-10", "13:00 PM"},
	}

	for _, tc := range cases {
		if got := FormatAppointmentDateTime(tc[0], tc[1]); got != SchedulePending {
			t.Fatalf("%q %q: expected %q, got %q", tc[0], tc[1], SchedulePending, got)
		}
	}
}

func TestFormatAcceptsTimestampDates(t *testing.T) {
	got := FormatIn("2024-01-10T00:00:00Z", "09:00 AM", time.UTC)
	if got != "Wed, 10 Jan, 9:00 AM" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestFormatNotificationTime(t *testing.T) {
	if FormatNotificationTime(time.Time{}, time.UTC) != "" {
		t.Fatal("zero time must render empty")
	}
	ts := time.Date(2024, time.February, 3, 16, 5, 0, 0, time.UTC)
	if got := FormatNotificationTime(ts, time.UTC); got != "3 Feb, 04:05 PM" {
		t.Fatalf("unexpected notification display %q", got)
	}
}
