package geo

import (
	"context"
	"fmt"
	"net/http"
)

const (
	ipapiCoURL  = "https://ipapi.co/json/"
	ipAPIComURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"
)

// IPAPICo queries ipapi.co. It needs no API key.
type IPAPICo struct {
	URL    string
	Client *http.Client
}

type ipapiCoResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	CountryName string  `json:"country_name"`
	Timezone    string  `json:"timezone"`
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
}

func (p *IPAPICo) Name() string { return "ipapi.co" }

func (p *IPAPICo) Locate(ctx context.Context) (*Location, error) {
	var result ipapiCoResponse
	if err := getJSON(ctx, p.Client, p.URL, &result); err != nil {
		return nil, err
	}
	if result.Error {
		return nil, fmt.Errorf("geolocation failed: %s", result.Reason)
	}
	return &Location{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		City:      result.City,
		Country:   result.CountryName,
		Timezone:  result.Timezone,
	}, nil
}

// IPAPICom queries ip-api.com.
type IPAPICom struct {
	URL    string
	Client *http.Client
}

type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

func (p *IPAPICom) Name() string { return "ip-api.com" }

func (p *IPAPICom) Locate(ctx context.Context) (*Location, error) {
	var result ipAPIResponse
	if err := getJSON(ctx, p.Client, p.URL, &result); err != nil {
		return nil, err
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}
	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}
