package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// FetchCalendarByCoordinates fetches a whole month of prayer times for the given coordinates.
func (c *Client) FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64, method, school int) (*CalendarResponse, error) {
	endpoint := fmt.Sprintf("%s/calendar/%d/%d", c.BaseURL, year, month)

	params := coordParams(lat, lon)
	setCalcParams(params, method, school)

	return c.fetchCalendar(ctx, endpoint, params)
}

// FetchCalendarByCity fetches a whole month of prayer times for the given city and country.
func (c *Client) FetchCalendarByCity(ctx context.Context, year, month int, city, country string, method, school int) (*CalendarResponse, error) {
	endpoint := fmt.Sprintf("%s/calendarByCity/%d/%d", c.BaseURL, year, month)

	params := cityParams(city, country)
	setCalcParams(params, method, school)

	return c.fetchCalendar(ctx, endpoint, params)
}

func (c *Client) fetchCalendar(ctx context.Context, endpoint string, params url.Values) (*CalendarResponse, error) {
	var resp CalendarResponse
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("API returned an empty calendar")
	}
	return &resp, nil
}
