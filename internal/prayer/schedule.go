package prayer

import (
	"sort"
	"time"
)

// Schedule is the chronological list of events the countdown walks through:
// the six daily times followed by tonight's Midnight and LastThird.
type Schedule struct {
	Events []Prayer
	// FajrTomorrow is the target once every event has passed.
	FajrTomorrow Prayer
}

// BuildSchedule merges today's prayers with the night events placed after
// today's Maghrib.
func BuildSchedule(today []Prayer, night Night, day time.Time, loc *time.Location, fajrTomorrow Prayer) Schedule {
	mid, last := night.At(day, loc)

	events := make([]Prayer, 0, len(today)+2)
	events = append(events, today...)
	events = append(events, mid, last)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	return Schedule{Events: events, FajrTomorrow: fajrTomorrow}
}

// WithPrevious adds the events of the night that began at prevDay's Maghrib.
// Between 00:00 and Fajr that night is still in progress.
func (s Schedule) WithPrevious(night Night, prevDay time.Time, loc *time.Location) Schedule {
	mid, last := night.At(prevDay, loc)

	events := make([]Prayer, 0, len(s.Events)+2)
	events = append(events, mid, last)
	events = append(events, s.Events...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	return Schedule{Events: events, FajrTomorrow: s.FajrTomorrow}
}

// Next returns the first event strictly after now, or tomorrow's Fajr.
func (s Schedule) Next(now time.Time) Prayer {
	if p := NextPrayer(s.Events, now); p != nil {
		return *p
	}
	return s.FajrTomorrow
}

// Countdown is the state rendered on each tick.
type Countdown struct {
	Event     Prayer
	Remaining time.Duration
}

// Tick computes the countdown for now.
func (s Schedule) Tick(now time.Time) Countdown {
	next := s.Next(now)
	return Countdown{Event: next, Remaining: TimeRemaining(next, now)}
}

// String renders the remaining time as "H:MM:SS".
func (c Countdown) String() string {
	return FormatCountdown(c.Remaining)
}

// Highlighted reports whether name is the event the countdown points to.
func (c Countdown) Highlighted(name string) bool {
	return c.Event.Name == name
}
