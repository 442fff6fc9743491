package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeoIPClient_Lookup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/8.8.8.8" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","lat":37.4,"lon":-122.07,"city":"Mountain View","country":"United States"}`))
	}))
	defer srv.Close()

	g := NewGeoIPClient(srv.URL)
	loc, err := g.Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if loc == nil {
		t.Fatal("expected a location")
	}
	if loc.City != "Mountain View" || loc.Country != "United States" {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if loc.Latitude == 0 || loc.Longitude == 0 {
		t.Fatalf("coordinates not decoded: %+v", loc)
	}
}

func TestGeoIPClient_SkipsUnroutableAddresses(t *testing.T) {
	t.Parallel()

	g := NewGeoIPClient("http://example.invalid")
	for _, ip := range []string{"127.0.0.1", "10.0.0.5", "192.168.1.2", "not-an-ip", "0.0.0.0"} {
		loc, err := g.Lookup(context.Background(), ip)
		if err != nil || loc != nil {
			t.Fatalf("%s: expected nil,nil got %v,%v", ip, loc, err)
		}
	}
}

func TestGeoIPClient_FailureStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail"}`))
	}))
	defer srv.Close()

	g := NewGeoIPClient(srv.URL)
	if _, err := g.Lookup(context.Background(), "8.8.8.8"); err == nil {
		t.Fatal("expected an error for a failed lookup")
	}
}

func TestGeoIPClient_NilClientDisabled(t *testing.T) {
	t.Parallel()

	var g *GeoIPClient
	loc, err := g.Lookup(context.Background(), "8.8.8.8")
	if err != nil || loc != nil {
		t.Fatalf("nil client must be a no-op, got %v,%v", loc, err)
	}
	if NewGeoIPClient("") != nil {
		t.Fatal("empty base URL must disable the client")
	}
}
