package timezone

import "time"

const (
	DefaultTimezone = "Asia/Kolkata"
	DateLayout      = "2006-01-02"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.Local
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate parses a calendar date (yyyy-MM-dd) at midnight in tz.
func ParseDate(tz string, s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location(tz))
}
