package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/geo"
)

const (
	prayerCacheFile   = "timings_%s.json"  // keyed by hash
	calendarCacheFile = "calendar_%s.json" // keyed by hash
	geoCacheFile      = "geolocation.json"
	methodsCacheFile  = "methods.json"
	geoTTL            = 24 * time.Hour
	methodsTTL        = 7 * 24 * time.Hour
)

// Cache provides file-based caching for prayer times, geolocation and the
// calculation-method list.
type Cache struct {
	dir string
	now func() time.Time
}

// Key identifies the request parameters that change the API's answer.
type Key struct {
	Lat, Lon      float64
	City, Country string
	Method        int
	School        int
}

// PrayerCacheEntry stores a day's prayer times along with metadata for validation.
type PrayerCacheEntry struct {
	Date     string       `json:"date"` // YYYY-MM-DD
	Method   int          `json:"method"`
	School   int          `json:"school"`
	Timings  api.Timings  `json:"timings"`
	DateInfo api.DateInfo `json:"date_info"`
	Meta     api.Meta     `json:"meta"`
}

// CalendarCacheEntry stores one month of daily data.
type CalendarCacheEntry struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []api.Data `json:"days"`
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// MethodsCacheEntry stores the /methods payload with a timestamp.
type MethodsCacheEntry struct {
	Methods  map[string]api.MethodDef `json:"methods"`
	CachedAt time.Time                `json:"cached_at"`
}

// DefaultDir returns ~/.cache/prayer-widget.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "prayer-widget"), nil
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to DefaultDir.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// hash builds a deterministic name from the parameters that affect the answer,
// so different locations/methods/schools get separate files.
func (k Key) hash(scope string) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%s|%d|%d", scope, k.Lat, k.Lon, k.City, k.Country, k.Method, k.School)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

// LoadTimings returns cached prayer times for the date, or nil when the
// cache is missing or stale.
func (c *Cache) LoadTimings(date time.Time, key Key) *PrayerCacheEntry {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(prayerCacheFile, key.hash(dateStr)))

	var entry PrayerCacheEntry
	if !readJSON(path, &entry) {
		return nil
	}

	// A previous day's file is useless.
	if entry.Date != dateStr {
		return nil
	}

	return &entry
}

// SaveTimings writes prayer times to the cache.
func (c *Cache) SaveTimings(date time.Time, key Key, resp *api.Response) error {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(prayerCacheFile, key.hash(dateStr)))

	return writeJSON(path, PrayerCacheEntry{
		Date:     dateStr,
		Method:   key.Method,
		School:   key.School,
		Timings:  resp.Data.Timings,
		DateInfo: resp.Data.Date,
		Meta:     resp.Data.Meta,
	})
}

// LoadCalendar returns a cached month, or nil.
func (c *Cache) LoadCalendar(year, month int, key Key) *CalendarCacheEntry {
	path := filepath.Join(c.dir, fmt.Sprintf(calendarCacheFile, key.hash(fmt.Sprintf("%04d-%02d", year, month))))

	var entry CalendarCacheEntry
	if !readJSON(path, &entry) {
		return nil
	}
	if entry.Year != year || entry.Month != month || len(entry.Days) == 0 {
		return nil
	}
	return &entry
}

// SaveCalendar writes a month to the cache.
func (c *Cache) SaveCalendar(year, month int, key Key, resp *api.CalendarResponse) error {
	path := filepath.Join(c.dir, fmt.Sprintf(calendarCacheFile, key.hash(fmt.Sprintf("%04d-%02d", year, month))))

	return writeJSON(path, CalendarCacheEntry{Year: year, Month: month, Days: resp.Data})
}

// LoadGeo returns a cached geolocation result, or nil when missing or older
// than 24 hours.
func (c *Cache) LoadGeo() *geo.Location {
	var entry GeoCacheEntry
	if !readJSON(filepath.Join(c.dir, geoCacheFile), &entry) {
		return nil
	}

	if c.now().Sub(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	return writeJSON(filepath.Join(c.dir, geoCacheFile), GeoCacheEntry{
		Location: *loc,
		CachedAt: c.now(),
	})
}

// LoadMethods returns the cached method list, or nil when missing or older
// than a week.
func (c *Cache) LoadMethods() map[string]api.MethodDef {
	var entry MethodsCacheEntry
	if !readJSON(filepath.Join(c.dir, methodsCacheFile), &entry) {
		return nil
	}
	if c.now().Sub(entry.CachedAt) > methodsTTL || len(entry.Methods) == 0 {
		return nil
	}
	return entry.Methods
}

// SaveMethods writes the method list to the cache.
func (c *Cache) SaveMethods(defs map[string]api.MethodDef) error {
	return writeJSON(filepath.Join(c.dir, methodsCacheFile), MethodsCacheEntry{
		Methods:  defs,
		CachedAt: c.now(),
	})
}

func readJSON(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}
