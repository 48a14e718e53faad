package reminder

import (
	"testing"
	"time"
)

func mustLoadLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseAppointmentDateWithTime(t *testing.T) {
	loc := mustLoadLoc(t)
	got, err := ParseAppointmentDate("2026-03-10 14:30", loc, 9)
	if err != nil {
		t.Fatalf("ParseAppointmentDate error: %v", err)
	}
	want := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = ParseAppointmentDate("2026-03-10T14:30", loc, 9)
	if err != nil {
		t.Fatalf("ParseAppointmentDate error: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseAppointmentDateBareDateDefaultsHour(t *testing.T) {
	loc := mustLoadLoc(t)
	got, err := ParseAppointmentDate("2026-03-10", loc, 9)
	if err != nil {
		t.Fatalf("ParseAppointmentDate error: %v", err)
	}
	want := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseAppointmentDateRFC3339(t *testing.T) {
	loc := mustLoadLoc(t)
	got, err := ParseAppointmentDate("2026-03-10T14:30:00Z", loc, 9)
	if err != nil {
		t.Fatalf("ParseAppointmentDate error: %v", err)
	}
	want := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseAppointmentDateUnparsable(t *testing.T) {
	loc := mustLoadLoc(t)
	for _, value := range []string{"", "next tuesday", "03/10/2026", "2026-13-40"} {
		if _, err := ParseAppointmentDate(value, loc, 9); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}
