// Package timefmt turns an appointment's calendar date and free-text time
// slot ("02:30 PM") into display strings. It is display-only; nothing here
// feeds scheduling decisions.
package timefmt

import (
	"strconv"
	"strings"
	"time"
)

// SchedulePending is shown whenever a date/slot pair cannot be turned into a timestamp.
const SchedulePending = "Schedule pending"

const (
	dateLayout         = "2006-01-02"
	displayLayout      = "Mon, 2 Jan, 3:04 PM"
	notificationLayout = "2 Jan, 03:04 PM"
)

// SlotToDate combines an ISO date and a 12-hour slot label in loc.
// A slot without an AM/PM marker resolves to midnight of the date, and an
// hour-only slot ("2 PM") resolves to the top of that hour.
func SlotToDate(date, slot string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	slot = strings.TrimSpace(slot)
	if date == "" || slot == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	// tolerate full timestamps ("2024-01-10T00:00:00Z")
	if len(date) > len(dateLayout) && date[len(dateLayout)] == 'T' {
		date = date[:len(dateLayout)]
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}

	parts := strings.Fields(slot)
	if len(parts) < 2 {
		return day, true
	}

	clock := strings.SplitN(parts[0], ":", 2)
	hours, err := strconv.Atoi(clock[0])
	if err != nil {
		return time.Time{}, false
	}

	minutes := 0
	if len(clock) == 2 {
		if m, err := strconv.Atoi(clock[1]); err == nil {
			minutes = m
		}
	}

	switch strings.ToUpper(parts[1]) {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return time.Time{}, false
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, loc), true
}

// FormatAppointmentDateTime renders date+slot in local time, or SchedulePending.
func FormatAppointmentDateTime(date, slot string) string {
	return FormatIn(date, slot, time.Local)
}

func FormatIn(date, slot string, loc *time.Location) string {
	t, ok := SlotToDate(date, slot, loc)
	if !ok {
		return SchedulePending
	}
	return t.Format(displayLayout)
}

// FormatNotificationTime renders the "email sent" timestamp; zero time renders empty.
func FormatNotificationTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(notificationLayout)
}
