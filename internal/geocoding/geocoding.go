// Package geocoding resolves Indian postal codes to coordinates using the
// OpenStreetMap Nominatim API, with a Redis read-through cache in front.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrPincodeNotFound is returned when the geocoder has no match for a pincode.
var ErrPincodeNotFound = errors.New("geocoding: pincode not found")

// Location is a resolved (or best-effort) geographic position. Approximate is
// set when the value is a placeholder rather than a real geocoder hit, so
// downstream distance filtering can tell the two apart.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
	Approximate bool    `json:"approximate,omitempty"`
}

// Geocoder resolves a 6-digit pincode to coordinates.
type Geocoder interface {
	ResolvePincode(ctx context.Context, pincode string) (Location, error)
}

// Placeholder returns the fallback location used when geocoding fails but the
// flow must continue anyway.
func Placeholder() Location {
	return Location{DisplayName: "India", Approximate: true}
}

// NominatimClient queries the OpenStreetMap Nominatim search API.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimClient creates a client against the given base URL
// (e.g. https://nominatim.openstreetmap.org).
func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: "FarmFast/1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ Geocoder = (*NominatimClient)(nil)

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) ResolvePincode(ctx context.Context, pincode string) (Location, error) {
	query := url.Values{}
	query.Set("postalcode", pincode)
	query.Set("country", "India")
	query.Set("format", "json")
	query.Set("limit", "1")

	endpoint := c.baseURL + "/search?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Location{}, fmt.Errorf("geocoding: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocoding: query nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocoding: nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Location{}, fmt.Errorf("geocoding: decode response: %w", err)
	}
	if len(results) == 0 {
		return Location{}, ErrPincodeNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("geocoding: parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("geocoding: parse longitude: %w", err)
	}

	return Location{Lat: lat, Lon: lon, DisplayName: results[0].DisplayName}, nil
}
