package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/methods"
)

// Day is one calendar day with its raw API data.
type Day struct {
	Date time.Time
	Data api.Data
}

type yearMonth struct {
	year, month int
}

// Calendar returns data for `days` consecutive days starting at start.
// Whole months are fetched from the calendar endpoint, concurrently, and cached.
func (l *Loader) Calendar(ctx context.Context, start time.Time, days int, loc Location, method, school int) ([]Day, error) {
	if days < 1 {
		return nil, fmt.Errorf("invalid number of days: %d", days)
	}

	needed := make(map[yearMonth]bool)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		needed[yearMonth{d.Year(), int(d.Month())}] = true
	}

	var mu sync.Mutex
	monthData := make(map[yearMonth][]api.Data, len(needed))

	g, gctx := errgroup.WithContext(ctx)
	for ym := range needed {
		g.Go(func() error {
			data, err := l.month(gctx, ym, loc, method, school)
			if err != nil {
				return err
			}
			mu.Lock()
			monthData[ym] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		ym := yearMonth{d.Year(), int(d.Month())}
		inMonth := monthData[ym]

		idx := d.Day() - 1
		if idx < 0 || idx >= len(inMonth) {
			return nil, fmt.Errorf("day %d out of range for %d-%02d (got %d days)", d.Day(), ym.year, ym.month, len(inMonth))
		}
		result = append(result, Day{Date: d, Data: inMonth[idx]})
	}

	return result, nil
}

func (l *Loader) month(ctx context.Context, ym yearMonth, loc Location, method, school int) ([]api.Data, error) {
	key := loc.cacheKey(method, school)

	if l.Cache != nil {
		if entry := l.Cache.LoadCalendar(ym.year, ym.month, key); entry != nil {
			return entry.Days, nil
		}
	}

	var (
		resp *api.CalendarResponse
		err  error
	)
	switch loc.Mode {
	case ModeCity:
		resp, err = l.client().FetchCalendarByCity(ctx, ym.year, ym.month, loc.City, loc.Country, method, school)
	default:
		resp, err = l.client().FetchCalendarByCoordinates(ctx, ym.year, ym.month, loc.Lat, loc.Lon, method, school)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar for %d-%02d: %w", ym.year, ym.month, err)
	}

	if l.Cache != nil {
		_ = l.Cache.SaveCalendar(ym.year, ym.month, key, resp) // best-effort
	}

	return resp.Data, nil
}

// Methods returns the calculation methods offered by the API. It never fails:
// on a network error the built-in list is returned.
func (l *Loader) Methods(ctx context.Context) []methods.Method {
	if l.Cache != nil {
		if defs := l.Cache.LoadMethods(); defs != nil {
			return methods.FromAPI(defs)
		}
	}

	resp, err := l.client().FetchMethods(ctx)
	if err != nil {
		l.logger().Warn("method list unavailable, using built-in list", zap.Error(err))
		return methods.Builtin()
	}

	if l.Cache != nil {
		_ = l.Cache.SaveMethods(resp.Data) // best-effort
	}

	return methods.FromAPI(resp.Data)
}
