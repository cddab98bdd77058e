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

const tmSamplePayload = `{
	"_embedded": {
		"events": [
			{
				"id": "ev1",
				"name": "Drake Live",
				"url": "http://tickets/ev1",
				"dates": {"start": {"localDate": "2026-09-01", "localTime": "19:30:00", "dateTime": "2026-09-01T23:30:00Z"}},
				"images": [{"url": "http://img/ev1", "width": 640, "height": 360}],
				"priceRanges": [{"type": "standard", "currency": "USD", "min": 59.5, "max": 250}],
				"_embedded": {"venues": [{
					"name": "Madison Square Garden",
					"city": {"name": "New York"},
					"state": {"stateCode": "NY"},
					"country": {"countryCode": "US"}
				}]}
			},
			{
				"id": "ev2",
				"name": "Drake After Party",
				"dates": {"start": {"localDate": "2026-09-02"}}
			}
		]
	}
}`

func TestSearchEventsReshapes(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		if q.Get("keyword") != "Drake" {
			t.Errorf("keyword = %q", q.Get("keyword"))
		}
		if q.Get("apikey") != "tm-key" {
			t.Errorf("apikey = %q", q.Get("apikey"))
		}
		if q.Get("size") != "20" || q.Get("sort") != "date,asc" {
			t.Errorf("size/sort = %q/%q", q.Get("size"), q.Get("sort"))
		}
		w.Write([]byte(tmSamplePayload))
	}))
	t.Cleanup(srv.Close)

	svc := NewTicketmasterService("tm-key").WithBaseURL(srv.URL)
	events, err := svc.SearchEvents(context.Background(), "Drake")
	if err != nil {
		t.Fatalf("SearchEvents failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one upstream call, got %d", calls.Load())
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if first.Venue != "Madison Square Garden" || first.City != "New York" {
		t.Errorf("venue reshape wrong: %+v", first)
	}
	if first.State != "NY" {
		t.Errorf("state should fall back to stateCode, got %q", first.State)
	}
	if first.Country != "US" {
		t.Errorf("country should fall back to countryCode, got %q", first.Country)
	}
	if first.Time != "19:30:00" || first.Date != "2026-09-01" {
		t.Errorf("dates wrong: %+v", first)
	}
	if first.StartUTC != "2026-09-01T23:30:00Z" {
		t.Errorf("StartUTC = %q", first.StartUTC)
	}
	if len(first.PriceRanges) != 1 || first.PriceRanges[0].Min != 59.5 {
		t.Errorf("price ranges wrong: %+v", first.PriceRanges)
	}

	// Event without embedded venue keeps the placeholder.
	if events[1].Venue != "Unknown Venue" {
		t.Errorf("missing venue should read Unknown Venue, got %q", events[1].Venue)
	}
}

func TestSearchEventsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Discovery omits _embedded entirely when nothing matches.
		w.Write([]byte(`{"page":{"totalElements":0}}`))
	}))
	t.Cleanup(srv.Close)

	svc := NewTicketmasterService("tm-key").WithBaseURL(srv.URL)
	events, err := svc.SearchEvents(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("SearchEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestSearchEventsUnconfigured(t *testing.T) {
	svc := NewTicketmasterService("")
	if _, err := svc.SearchEvents(context.Background(), "Drake"); !errors.Is(err, shared.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestSearchEventsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"fault":"rate limit"}`))
	}))
	t.Cleanup(srv.Close)

	svc := NewTicketmasterService("tm-key").WithBaseURL(srv.URL)
	_, err := svc.SearchEvents(context.Background(), "Drake")
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Status != http.StatusTooManyRequests {
		t.Fatalf("expected UpstreamError 429, got %v", err)
	}
}
