// Package geocode resolves postal addresses to coordinates via the MapQuest
// geocoding API. The radius-search handler consumes the Geocoder interface so
// tests can substitute a fake.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// EarthRadiusKM is the Earth radius used to convert a distance in kilometers
// to radians for $centerSphere queries: radians = km / EarthRadiusKM.
// The distance contract for radius search is kilometers.
const EarthRadiusKM = 6378.0

// Location is a resolved point with the address fields the provider returned.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder resolves a free-form address (or zipcode) to a Location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

// Client talks to the MapQuest geocoding endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

const defaultBaseURL = "https://www.mapquestapi.com/geocoding/v1/address"

// New returns a Client with the given API key.
func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL overrides the endpoint, for tests.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	c := New(apiKey)
	c.baseURL = baseURL
	return c
}

// mapquestResponse is the subset of the provider payload we read.
type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			LatLng struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			PostalCode string `json:"postalCode"`
			Country    string `json:"adminArea1"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves address to its first candidate location.
func (c *Client) Geocode(ctx context.Context, address string) (Location, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("location", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Location{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocoding request failed: status %d", resp.StatusCode)
	}

	var body mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("geocoding response decode failed: %w", err)
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return Location{}, fmt.Errorf("no geocoding result for %q", address)
	}

	loc := body.Results[0].Locations[0]
	out := Location{
		Latitude:  loc.LatLng.Lat,
		Longitude: loc.LatLng.Lng,
		Street:    loc.Street,
		City:      loc.City,
		State:     loc.State,
		Zipcode:   loc.PostalCode,
		Country:   loc.Country,
	}
	out.FormattedAddress = formatAddress(out)
	return out, nil
}

func formatAddress(l Location) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{l.Street, l.City, l.State, l.Zipcode, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
