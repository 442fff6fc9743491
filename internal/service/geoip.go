// Package service holds outbound integrations that are not data access:
// the IP geolocation client and the broker publisher.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// GeoLocation is the subset of the geolocation API response we store on
// notifications.
type GeoLocation struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Status    string  `json:"status"`
}

// GeoIPClient resolves an IP address to coordinates via an external
// HTTP API (ip-api.com compatible: GET <base>/<ip> returning JSON with
// status/lat/lon/city/country). Lookups are best-effort with a short
// timeout; callers must tolerate a nil result.
type GeoIPClient struct {
	baseURL string
	http    *http.Client
}

// NewGeoIPClient returns a client for baseURL, or nil when baseURL is
// empty so lookups are disabled wholesale.
func NewGeoIPClient(baseURL string) *GeoIPClient {
	if baseURL == "" {
		return nil
	}
	return &GeoIPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

// Lookup resolves ip. Private and loopback addresses are skipped
// locally since the API cannot place them.
func (g *GeoIPClient) Lookup(ctx context.Context, ip string) (*GeoLocation, error) {
	if g == nil {
		return nil, nil
	}
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/"+url.PathEscape(ip), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip: unexpected status %d", resp.StatusCode)
	}
	var loc GeoLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, err
	}
	if loc.Status != "" && loc.Status != "success" {
		return nil, fmt.Errorf("geoip: lookup failed for %s", ip)
	}
	return &loc, nil
}
