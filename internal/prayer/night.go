package prayer

import (
	"fmt"
	"math"
	"time"
)

// Derived night events.
const (
	Midnight  = "Midnight"
	LastThird = "LastThird"
)

// Night is the span from today's Maghrib to tomorrow's Fajr, in minutes
// counted from today's 00:00. Midnight and LastThird may exceed 1440.
type Night struct {
	Maghrib   int
	Fajr      int // tomorrow's Fajr, already shifted by 24h
	Length    float64
	Midnight  float64
	LastThird float64
}

// NightTimes derives midnight (half of the night) and the start of the last
// third from today's Maghrib and tomorrow's Fajr.
func NightTimes(maghribToday, fajrTomorrow string) (Night, error) {
	m, err := ParseClock(maghribToday)
	if err != nil {
		return Night{}, fmt.Errorf("maghrib: %w", err)
	}
	f, err := ParseClock(fajrTomorrow)
	if err != nil {
		return Night{}, fmt.Errorf("fajr: %w", err)
	}

	fajr := f + 24*60
	length := float64(fajr - m)

	return Night{
		Maghrib:   m,
		Fajr:      fajr,
		Length:    length,
		Midnight:  float64(m) + length/2,
		LastThird: float64(m) + length*2/3,
	}, nil
}

// FormatMinutes renders minutes since 00:00 as "HH:MM", flooring seconds
// and wrapping past 24h.
func FormatMinutes(m float64) string {
	total := int(math.Floor(m))
	h := (total / 60) % 24
	mm := total % 60
	return fmt.Sprintf("%02d:%02d", h, mm)
}

// At places the night events on the calendar. day is the date whose Maghrib
// starts the night; times after 00:00 fall on the following day.
func (n Night) At(day time.Time, loc *time.Location) (midnight, lastThird Prayer) {
	at := func(m float64) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, int(math.Floor(m)), 0, 0, loc)
	}
	return Prayer{Name: Midnight, Time: at(n.Midnight)}, Prayer{Name: LastThird, Time: at(n.LastThird)}
}
