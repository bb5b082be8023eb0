package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smokyabdulrahman/prayer-widget/internal/cache"
	"github.com/smokyabdulrahman/prayer-widget/internal/geo"
)

// Mode describes how the location was specified.
type Mode int

const (
	ModeCoords Mode = iota
	ModeCity
	ModeAuto
)

// Location is the resolved place the timings are fetched for.
type Location struct {
	Mode     Mode
	Lat, Lon float64
	City     string
	Country  string
	Timezone string // optional hint from geo-detection
	// Fallback is set when detection failed and the default location is used.
	Fallback bool
}

// Locator is satisfied by *geo.Chain.
type Locator interface {
	Locate(ctx context.Context) (geo.Location, bool)
}

func (l Location) cacheKey(method, school int) cache.Key {
	return cache.Key{Lat: l.Lat, Lon: l.Lon, City: l.City, Country: l.Country, Method: method, School: school}
}

// Resolve determines the effective location.
// Priority: coordinates > city/country > cached geolocation > detection chain.
func (l *Loader) Resolve(ctx context.Context, req Request) (Location, error) {
	switch {
	case req.Lat != 0 || req.Lon != 0:
		return Location{Mode: ModeCoords, Lat: req.Lat, Lon: req.Lon, City: req.City, Country: req.Country}, nil
	case req.City != "":
		if req.Country == "" {
			return Location{}, fmt.Errorf("--country is required when using --city")
		}
		return Location{Mode: ModeCity, City: req.City, Country: req.Country}, nil
	}

	if l.Cache != nil {
		if cached := l.Cache.LoadGeo(); cached != nil {
			l.logger().Debug("using cached location", zap.String("city", cached.City))
			return fromGeo(*cached, false), nil
		}
	}

	locator := l.Geo
	if locator == nil {
		locator = geo.NewChain(l.logger())
	}
	detected, ok := locator.Locate(ctx)
	if ok && l.Cache != nil {
		_ = l.Cache.SaveGeo(&detected) // best-effort
	}

	return fromGeo(detected, !ok), nil
}

func fromGeo(g geo.Location, fallback bool) Location {
	return Location{
		Mode:     ModeAuto,
		Lat:      g.Latitude,
		Lon:      g.Longitude,
		City:     g.City,
		Country:  g.Country,
		Timezone: g.Timezone,
		Fallback: fallback,
	}
}
