package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/cache"
	"github.com/smokyabdulrahman/prayer-widget/internal/geo"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
)

var riyadh = mustLoad("Asia/Riyadh")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// dayData returns a Makkah-like day; Fajr moves one minute per day so
// tomorrow's value is distinguishable from today's.
func dayData(d time.Time) api.Data {
	return api.Data{
		Timings: api.Timings{
			Fajr:    fmt.Sprintf("05:%02d", (d.Day()+45)%60),
			Sunrise: "06:19",
			Dhuhr:   "12:04",
			Asr:     "15:23",
			Sunset:  "17:49",
			Maghrib: "17:49",
			Isha:    "19:19",
		},
		Date: api.DateInfo{
			Readable: d.Format("02 Jan 2006"),
			Hijri: api.HijriDate{
				Day:   "08",
				Month: api.HijriMonth{Number: 5, En: "Jumādá al-ūlá", Ar: "جُمادى الأولى"},
				Year:  "1448",
			},
		},
		Meta: api.Meta{Latitude: 21.4225, Longitude: 39.8262, Timezone: "Asia/Riyadh"},
	}
}

// fakeAPI serves /timings, /calendar and /methods and counts requests.
type fakeAPI struct {
	hits    atomic.Int32
	methods atomic.Int32
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case parts[0] == "timings" || parts[0] == "timingsByCity":
			d, err := time.ParseInLocation("02-01-2006", parts[1], riyadh)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(api.Response{Code: 200, Status: "OK", Data: dayData(d)})

		case parts[0] == "calendar" || parts[0] == "calendarByCity":
			var year, month int
			fmt.Sscanf(parts[1]+" "+parts[2], "%d %d", &year, &month)
			first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, riyadh)
			var days []api.Data
			for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
				days = append(days, dayData(d))
			}
			json.NewEncoder(w).Encode(api.CalendarResponse{Code: 200, Status: "OK", Data: days})

		case parts[0] == "methods":
			f.methods.Add(1)
			json.NewEncoder(w).Encode(api.MethodsResponse{Code: 200, Status: "OK", Data: map[string]api.MethodDef{
				"MAKKAH": {ID: 4, Name: "Umm Al-Qura University, Makkah"},
				"EGYPT":  {ID: 5, Name: "Egyptian General Authority of Survey"},
			}})

		default:
			http.NotFound(w, r)
		}
	})
}

func newLoader(t *testing.T, withCache bool) (*Loader, *fakeAPI) {
	t.Helper()
	fake := &fakeAPI{}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	client := api.NewClient()
	client.BaseURL = server.URL

	l := &Loader{Client: client, Geo: stubLocator{ok: false}}
	if withCache {
		c, err := cache.New(t.TempDir())
		require.NoError(t, err)
		l.Cache = c
	}
	return l, fake
}

type stubLocator struct {
	loc geo.Location
	ok  bool
}

func (s stubLocator) Locate(context.Context) (geo.Location, bool) {
	if !s.ok {
		return geo.Default, false
	}
	return s.loc, true
}

func TestLoad_MakkahByCoordinates(t *testing.T) {
	l, _ := newLoader(t, false)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, riyadh)

	snap, err := l.Load(context.Background(), Request{Lat: 21.4225, Lon: 39.8262, Method: 4, School: -1, Now: now})
	require.NoError(t, err)

	assert.Equal(t, "Asia/Riyadh", snap.TZ.String())
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, riyadh), snap.Day)
	require.Len(t, snap.Prayers, 6)
	assert.Equal(t, "05:04", snap.Prayers[0].Time.Format("15:04"))
	assert.Equal(t, "05:05", snap.Tomorrow.Timings.Fajr)

	// Night from 17:49 to 05:05 is 676 minutes.
	assert.Equal(t, 676.0, snap.Night.Length)
	assert.Equal(t, "23:27", prayer.FormatMinutes(snap.Night.Midnight))
	assert.Equal(t, "01:19", prayer.FormatMinutes(snap.Night.LastThird))

	events := snap.Schedule.Events
	require.Len(t, events, 8)
	last := events[len(events)-1]
	assert.Equal(t, prayer.LastThird, last.Name)
	assert.Equal(t, time.Date(2026, 10, 20, 1, 19, 0, 0, riyadh), last.Time)
	assert.Equal(t, time.Date(2026, 10, 20, 5, 5, 0, 0, riyadh), snap.Schedule.FajrTomorrow.Time)

	assert.Nil(t, snap.Previous, "the previous night is only kept before Fajr")

	cd := snap.Countdown(now)
	assert.Equal(t, "Dhuhr", cd.Event.Name)
	assert.Equal(t, "0:04:00", cd.String())
}

func TestLoad_BeforeFajrKeepsPreviousNight(t *testing.T) {
	l, fake := newLoader(t, false)
	now := time.Date(2026, 10, 20, 0, 30, 0, 0, riyadh)

	snap, err := l.Load(context.Background(), Request{Lat: 21.4225, Lon: 39.8262, Method: 4, School: -1, Now: now})
	require.NoError(t, err)
	assert.Equal(t, int32(3), fake.hits.Load(), "yesterday, today and tomorrow")
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, riyadh), snap.Day)

	// The night of the 19th (17:49 to 05:05) is still running.
	require.NotNil(t, snap.Previous)
	assert.Equal(t, "01:19", prayer.FormatMinutes(snap.Previous.LastThird))

	cd := snap.Countdown(now)
	assert.Equal(t, prayer.LastThird, cd.Event.Name)
	assert.Equal(t, time.Date(2026, 10, 20, 1, 19, 0, 0, riyadh), cd.Event.Time)
	assert.Equal(t, "0:49:00", cd.String())

	night, start := snap.Tonight(now)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, riyadh), start)
	mid, _ := night.At(start, riyadh)
	assert.Equal(t, time.Date(2026, 10, 19, 23, 27, 0, 0, riyadh), mid.Time)

	// After Fajr the snapshot moves on to today's prayers and tonight.
	after := time.Date(2026, 10, 20, 5, 10, 0, 0, riyadh)
	assert.Equal(t, "Sunrise", snap.Countdown(after).Event.Name)
	_, start = snap.Tonight(after)
	assert.Equal(t, snap.Day, start)
	assert.False(t, snap.Stale(after))
}

func TestLoad_AfterFajrSkipsYesterday(t *testing.T) {
	l, fake := newLoader(t, false)
	now := time.Date(2026, 10, 20, 5, 30, 0, 0, riyadh)

	snap, err := l.Load(context.Background(), Request{Lat: 21.4225, Lon: 39.8262, Method: 4, School: -1, Now: now})
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.hits.Load())
	assert.Nil(t, snap.Previous)
}

func TestLoader_ClientLeavesLoaderUntouched(t *testing.T) {
	l := &Loader{}
	c := l.client()
	require.NotNil(t, c)
	assert.Nil(t, l.Client, "client must not be assigned lazily")
	assert.Same(t, c, (&Loader{}).client())
}

func TestLoad_UsesGeoTimezoneHint(t *testing.T) {
	l, _ := newLoader(t, false)
	l.Geo = stubLocator{ok: true, loc: geo.Location{
		Latitude: 21.4225, Longitude: 39.8262, City: "Makkah", Country: "Saudi Arabia", Timezone: "Asia/Riyadh",
	}}
	// 22:30 UTC is already the next day in Riyadh.
	now := time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC)

	snap, err := l.Load(context.Background(), Request{Method: 4, School: -1, Now: now})
	require.NoError(t, err)

	assert.Equal(t, ModeAuto, snap.Location.Mode)
	assert.Equal(t, "Makkah", snap.Location.City)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, riyadh), snap.Day)
}

func TestLoad_RefetchesWhenLocalDateDiffers(t *testing.T) {
	l, _ := newLoader(t, false)
	now := time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC)

	snap, err := l.Load(context.Background(), Request{City: "Makkah", Country: "Saudi Arabia", Method: 4, School: -1, Now: now})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, riyadh), snap.Day)
	assert.Equal(t, "05:04", snap.Today.Timings.Fajr)
}

func TestLoad_CacheAvoidsSecondFetch(t *testing.T) {
	l, fake := newLoader(t, true)
	req := Request{Lat: 21.4225, Lon: 39.8262, Method: 4, School: -1, Now: time.Date(2026, 10, 19, 12, 0, 0, 0, riyadh)}

	_, err := l.Load(context.Background(), req)
	require.NoError(t, err)
	first := fake.hits.Load()
	assert.Equal(t, int32(2), first)

	_, err = l.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, fake.hits.Load(), "second load should be served from cache")
}

func TestLoad_APIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := api.NewClient()
	client.BaseURL = server.URL
	l := &Loader{Client: client}

	_, err := l.Load(context.Background(), Request{Lat: 1, Lon: 1, Method: 4, School: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestResolve_Priority(t *testing.T) {
	l, _ := newLoader(t, true)
	l.Geo = stubLocator{ok: true, loc: geo.Location{Latitude: 30.0444, Longitude: 31.2357, City: "Cairo", Country: "Egypt"}}
	ctx := context.Background()

	loc, err := l.Resolve(ctx, Request{Lat: 1, Lon: 2, City: "Ignored", Country: "X"})
	require.NoError(t, err)
	assert.Equal(t, ModeCoords, loc.Mode)

	loc, err = l.Resolve(ctx, Request{City: "London", Country: "UK"})
	require.NoError(t, err)
	assert.Equal(t, ModeCity, loc.Mode)

	_, err = l.Resolve(ctx, Request{City: "London"})
	assert.Error(t, err)

	loc, err = l.Resolve(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, "Cairo", loc.City)
	assert.False(t, loc.Fallback)

	// Detection is cached; a failing locator is no longer consulted.
	l.Geo = stubLocator{ok: false}
	loc, err = l.Resolve(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, "Cairo", loc.City)
}

func TestResolve_FallbackToMakkah(t *testing.T) {
	l, _ := newLoader(t, true)

	loc, err := l.Resolve(context.Background(), Request{})
	require.NoError(t, err)
	assert.True(t, loc.Fallback)
	assert.Equal(t, geo.Default.Latitude, loc.Lat)
	assert.Equal(t, "Asia/Riyadh", loc.Timezone)
	assert.Nil(t, l.Cache.LoadGeo(), "fallback location must not be cached")
}

func TestSnapshot_Stale(t *testing.T) {
	l, _ := newLoader(t, false)
	snap, err := l.Load(context.Background(), Request{Lat: 21.4225, Lon: 39.8262, Method: 4, School: -1,
		Now: time.Date(2026, 10, 19, 23, 0, 0, 0, riyadh)})
	require.NoError(t, err)

	assert.False(t, snap.Stale(time.Date(2026, 10, 19, 23, 59, 59, 0, riyadh)))
	assert.True(t, snap.Stale(time.Date(2026, 10, 20, 0, 0, 0, 0, riyadh)))
}
