package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Location holds geographic coordinates detected from the user's IP.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// Default is used when every provider fails.
var Default = Location{
	Latitude:  21.4225,
	Longitude: 39.8262,
	City:      "Makkah",
	Country:   "Saudi Arabia",
	Timezone:  "Asia/Riyadh",
}

// Provider looks up the caller's location.
type Provider interface {
	Name() string
	Locate(ctx context.Context) (*Location, error)
}

// Chain tries providers in order and falls back to Default.
type Chain struct {
	Providers []Provider
	Logger    *zap.Logger
}

// NewChain returns the standard chain: ipapi.co first, then ip-api.com.
func NewChain(logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &http.Client{Timeout: 5 * time.Second}
	return &Chain{
		Providers: []Provider{
			&IPAPICo{URL: ipapiCoURL, Client: client},
			&IPAPICom{URL: ipAPIComURL, Client: client},
		},
		Logger: logger,
	}
}

// Locate never fails. The bool reports whether a provider answered; false
// means the result is Default.
func (c *Chain) Locate(ctx context.Context) (Location, bool) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, p := range c.Providers {
		loc, err := p.Locate(ctx)
		if err != nil {
			logger.Debug("geolocation provider failed", zap.String("provider", p.Name()), zap.Error(err))
			continue
		}
		if loc == nil || loc.Latitude == 0 || loc.Longitude == 0 {
			logger.Debug("geolocation provider returned no coordinates", zap.String("provider", p.Name()))
			continue
		}
		logger.Debug("location detected",
			zap.String("provider", p.Name()),
			zap.String("city", loc.City),
			zap.Float64("lat", loc.Latitude),
			zap.Float64("lon", loc.Longitude))
		return *loc, true
	}

	logger.Info("geolocation unavailable, using default location", zap.String("city", Default.City))
	return Default, false
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build geolocation request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	return nil
}
