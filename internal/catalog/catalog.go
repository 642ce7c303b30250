// Package catalog holds the static booking choices offered by the web app.
package catalog

import "time"

// SlotTemplates are the bookable time slots, in display order.
var SlotTemplates = []string{
	"09:00 AM",
	"10:30 AM",
	"12:00 PM",
	"02:30 PM",
	"04:00 PM",
	"05:30 PM",
}

// ServiceTypes are offered on the booking form.
var ServiceTypes = []string{
	"Comprehensive Check-up",
	"Oil & Filter Replacement",
	"Dent & Paint Restoration",
	"Battery & Electrical Diagnosis",
	"Car Wash & Detailing",
}

// GarageServices is shown on garage pages when the backend lists none.
var GarageServices = []string{
	"Oil Change",
	"Car Wash",
	"Battery Replacement",
}

const BookingWindowDays = 10

type Day struct {
	ISO   string
	Label string
}

// UpcomingDays returns n consecutive days starting the day after now.
func UpcomingDays(now time.Time, n int) []Day {
	days := make([]Day, 0, n)
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := 1; i <= n; i++ {
		d := base.AddDate(0, 0, i)
		days = append(days, Day{
			ISO:   d.Format("2006-01-02"),
			Label: d.Format("Mon, 2 Jan"),
		})
	}
	return days
}

func IsSlot(s string) bool {
	return contains(SlotTemplates, s)
}

func IsServiceType(s string) bool {
	return contains(ServiceTypes, s)
}

// IsBookableDate reports whether iso is one of the n days offered after now.
func IsBookableDate(now time.Time, n int, iso string) bool {
	for _, d := range UpcomingDays(now, n) {
		if d.ISO == iso {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
