package reminder

import (
	"errors"
	"time"
)

var ErrUnparsableDate = errors.New("unparsable appointment date")

// Layouts accepted for a booking's preferredDate. Customers usually pick a
// day plus a time in the site's booking form, but the field is free text
// end to end, so older rows may hold anything.
var appointmentLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseAppointmentDate resolves a preferredDate string to an absolute
// point in time. A bare calendar date defaults to defaultHour o'clock in
// loc, since the 24h/1h offsets need a time-of-day to subtract from.
func ParseAppointmentDate(value string, loc *time.Location, defaultHour int) (time.Time, error) {
	for _, layout := range appointmentLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = time.Date(t.Year(), t.Month(), t.Day(), defaultHour, 0, 0, 0, loc)
		}
		return t, nil
	}
	return time.Time{}, ErrUnparsableDate
}
