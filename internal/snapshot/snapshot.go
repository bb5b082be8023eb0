// Package snapshot performs the once-a-day computation behind every view:
// resolve the location, fetch today's and tomorrow's timings, and derive the
// night events and the countdown schedule. Before Fajr the previous day is
// fetched too, since the night that began at its Maghrib is still running.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/cache"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
)

// Request carries the merged settings for one load.
type Request struct {
	Lat, Lon float64
	City     string
	Country  string
	Method   int
	School   int
	// Now defaults to time.Now.
	Now time.Time
}

// Snapshot is everything the views need for one day.
type Snapshot struct {
	Location Location
	TZ       *time.Location
	// Day is today's date in TZ at 00:00.
	Day      time.Time
	Today    api.Data
	Tomorrow api.Data
	// Prayers are today's six daily times.
	Prayers []prayer.Prayer
	Night   prayer.Night
	// Previous is the night from yesterday's Maghrib to today's Fajr. It is
	// only set when the snapshot was built before today's Fajr.
	Previous *prayer.Night
	Schedule prayer.Schedule
	Method   int
	School   int
}

// Loader fetches and assembles snapshots.
type Loader struct {
	Client *api.Client
	// Cache may be nil, which disables caching.
	Cache  *cache.Cache
	Geo    Locator
	Logger *zap.Logger
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

var defaultClient = sync.OnceValue(api.NewClient)

// client returns the configured client without mutating the loader, which
// is shared by concurrent fetches.
func (l *Loader) client() *api.Client {
	if l.Client == nil {
		return defaultClient()
	}
	return l.Client
}

// Load builds today's snapshot.
func (l *Loader) Load(ctx context.Context, req Request) (*Snapshot, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	loc, err := l.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	// With a timezone hint the date is known up front; otherwise it comes
	// from the API's meta and may require a second round.
	tz := time.Local
	if loc.Timezone != "" {
		if tz, err = time.LoadLocation(loc.Timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", loc.Timezone, err)
		}
	}

	fetched := now.In(tz).Format("2006-01-02")
	today, tomorrow, err := l.fetchPair(ctx, now.In(tz), loc, req.Method, req.School)
	if err != nil {
		return nil, err
	}

	if loc.Timezone == "" {
		metaTZ := today.Meta.Timezone
		if tz, err = time.LoadLocation(metaTZ); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", metaTZ, err)
		}
		if local, remote := fetched, now.In(tz).Format("2006-01-02"); local != remote {
			l.logger().Debug("local date differs from location date, refetching",
				zap.String("local", local), zap.String("remote", remote))
			if today, tomorrow, err = l.fetchPair(ctx, now.In(tz), loc, req.Method, req.School); err != nil {
				return nil, err
			}
		}
	}

	var yesterday *api.Data
	if beforeFajr(now.In(tz), today) {
		if yesterday, err = l.Day(ctx, now.In(tz).AddDate(0, 0, -1), loc, req.Method, req.School); err != nil {
			return nil, fmt.Errorf("failed to fetch yesterday's times: %w", err)
		}
	}

	snap, err := Build(now.In(tz), tz, loc, yesterday, today, tomorrow, req.Method, req.School)
	if err != nil {
		return nil, err
	}
	l.logger().Debug("night derived",
		zap.Float64("length_minutes", snap.Night.Length),
		zap.String("midnight", prayer.FormatMinutes(snap.Night.Midnight)),
		zap.String("last_third", prayer.FormatMinutes(snap.Night.LastThird)))
	return snap, nil
}

// beforeFajr reports whether now precedes today's Fajr.
func beforeFajr(now time.Time, today *api.Data) bool {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	fajr, err := prayer.ParseTimings(today.Timings, day, now.Location(), []string{"Fajr"})
	return err == nil && now.Before(fajr[0].Time)
}

// Build derives prayers, night events and the schedule from today's and
// tomorrow's data. yesterday may be nil; when given and now is before
// today's Fajr, the previous night's events join the schedule.
func Build(now time.Time, tz *time.Location, loc Location, yesterday, today, tomorrow *api.Data, method, school int) (*Snapshot, error) {
	now = now.In(tz)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, tz)

	prayers, err := prayer.ParseTimings(today.Timings, day, tz, prayer.DefaultPrayerNames)
	if err != nil {
		return nil, err
	}

	next := day.AddDate(0, 0, 1)
	fajr, err := prayer.ParseTimings(tomorrow.Timings, next, tz, []string{"Fajr"})
	if err != nil {
		return nil, fmt.Errorf("tomorrow: %w", err)
	}

	night, err := prayer.NightTimes(today.Timings.Maghrib, tomorrow.Timings.Fajr)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Location: loc,
		TZ:       tz,
		Day:      day,
		Today:    *today,
		Tomorrow: *tomorrow,
		Prayers:  prayers,
		Night:    night,
		Schedule: prayer.BuildSchedule(prayers, night, day, tz, fajr[0]),
		Method:   method,
		School:   school,
	}

	if yesterday != nil && now.Before(prayers[0].Time) {
		prev, err := prayer.NightTimes(yesterday.Timings.Maghrib, today.Timings.Fajr)
		if err != nil {
			return nil, fmt.Errorf("yesterday: %w", err)
		}
		snap.Previous = &prev
		snap.Schedule = snap.Schedule.WithPrevious(prev, day.AddDate(0, 0, -1), tz)
	}
	return snap, nil
}

// Tonight returns the night in progress at now and the date whose Maghrib
// began it: the previous night until today's Fajr, today's night after.
func (s *Snapshot) Tonight(now time.Time) (prayer.Night, time.Time) {
	if s.Previous != nil && now.Before(s.Prayers[0].Time) {
		return *s.Previous, s.Day.AddDate(0, 0, -1)
	}
	return s.Night, s.Day
}

// fetchPair fetches the given day and the next one concurrently.
func (l *Loader) fetchPair(ctx context.Context, date time.Time, loc Location, method, school int) (*api.Data, *api.Data, error) {
	var today, tomorrow *api.Data

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := l.Day(gctx, date, loc, method, school)
		today = d
		return err
	})
	g.Go(func() error {
		d, err := l.Day(gctx, date.AddDate(0, 0, 1), loc, method, school)
		if err != nil {
			return fmt.Errorf("failed to fetch tomorrow's times: %w", err)
		}
		tomorrow = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return today, tomorrow, nil
}

// Day returns one day of timings, using the cache when available.
func (l *Loader) Day(ctx context.Context, date time.Time, loc Location, method, school int) (*api.Data, error) {
	key := loc.cacheKey(method, school)

	if l.Cache != nil {
		if entry := l.Cache.LoadTimings(date, key); entry != nil {
			return &api.Data{Timings: entry.Timings, Date: entry.DateInfo, Meta: entry.Meta}, nil
		}
	}

	var (
		resp *api.Response
		err  error
	)
	switch loc.Mode {
	case ModeCity:
		resp, err = l.client().FetchByCity(ctx, date, loc.City, loc.Country, method, school)
	default:
		resp, err = l.client().FetchByCoordinates(ctx, date, loc.Lat, loc.Lon, method, school)
	}
	if err != nil {
		return nil, err
	}

	l.logger().Debug("fetched timings",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("method", method),
		zap.String("timezone", resp.Data.Meta.Timezone))

	if l.Cache != nil {
		_ = l.Cache.SaveTimings(date, key, resp) // best-effort
	}

	return &resp.Data, nil
}

// Countdown is the 1 Hz view of the snapshot.
func (s *Snapshot) Countdown(now time.Time) prayer.Countdown {
	return s.Schedule.Tick(now.In(s.TZ))
}

// Stale reports whether now is past the snapshot's day, so a fresh load is due.
func (s *Snapshot) Stale(now time.Time) bool {
	return !now.In(s.TZ).Before(s.Day.AddDate(0, 0, 1))
}
