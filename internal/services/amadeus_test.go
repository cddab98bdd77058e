package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/vibent/internal/shared"
)

const amadeusSamplePayload = `{
	"data": [
		{
			"id": "1",
			"itineraries": [{
				"duration": "PT6H30M",
				"segments": [
					{"departure": {"iataCode": "SFO", "at": "2026-06-01T08:00:00"},
					 "arrival": {"iataCode": "DEN", "at": "2026-06-01T11:30:00"},
					 "carrierCode": "UA", "number": "512", "duration": "PT2H30M"},
					{"departure": {"iataCode": "DEN", "at": "2026-06-01T12:30:00"},
					 "arrival": {"iataCode": "JFK", "at": "2026-06-01T16:30:00"},
					 "carrierCode": "UA", "number": "88", "duration": "PT4H"}
				]
			}],
			"price": {"currency": "USD", "total": "325.40"}
		}
	]
}`

// newTestAmadeus bypasses the client-credentials token source so tests hit
// the fake upstream directly.
func newTestAmadeus(t *testing.T, handler http.HandlerFunc) *AmadeusService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAmadeusService("", "").WithHTTPClient(newClient()).WithBaseURL(srv.URL)
}

func TestSearchFlightsQueryParams(t *testing.T) {
	var calls atomic.Int64
	svc := newTestAmadeus(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		if q.Get("originLocationCode") != "SFO" {
			t.Errorf("origin = %q", q.Get("originLocationCode"))
		}
		if q.Get("destinationLocationCode") != "JFK" {
			t.Errorf("destination = %q", q.Get("destinationLocationCode"))
		}
		if q.Get("departureDate") != "2025-06-01" {
			t.Errorf("departureDate = %q", q.Get("departureDate"))
		}
		if q.Get("adults") != "1" {
			t.Errorf("adults = %q, want default 1", q.Get("adults"))
		}
		if q.Get("max") != "5" {
			t.Errorf("max = %q, want default 5", q.Get("max"))
		}
		if q.Has("returnDate") {
			t.Error("returnDate should be omitted when unset")
		}
		w.Write([]byte(amadeusSamplePayload))
	})

	resp, raw, err := svc.SearchFlights(context.Background(), FlightQuery{
		Origin:        "SFO",
		Destination:   "JFK",
		DepartureDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("SearchFlights failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one upstream call, got %d", calls.Load())
	}
	if len(resp.Data) != 1 || resp.Data[0].Price.Total != "325.40" {
		t.Errorf("decode wrong: %+v", resp)
	}
	if len(raw) == 0 {
		t.Error("raw payload should be returned for passthrough")
	}
}

func TestSearchFlightsValidation(t *testing.T) {
	svc := newTestAmadeus(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid queries must not reach upstream")
	})

	tests := []struct {
		name  string
		query FlightQuery
	}{
		{"missing origin", FlightQuery{Destination: "JFK", DepartureDate: "2025-06-01"}},
		{"missing destination", FlightQuery{Origin: "SFO", DepartureDate: "2025-06-01"}},
		{"missing date", FlightQuery{Origin: "SFO", Destination: "JFK"}},
		{"bad date", FlightQuery{Origin: "SFO", Destination: "JFK", DepartureDate: "June 1st"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.SearchFlights(context.Background(), tt.query); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSearchFlightsUnconfigured(t *testing.T) {
	svc := NewAmadeusService("", "")
	_, _, err := svc.SearchFlights(context.Background(), FlightQuery{
		Origin: "SFO", Destination: "JFK", DepartureDate: "2025-06-01",
	})
	if !errors.Is(err, shared.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
