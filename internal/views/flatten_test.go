package views

import (
	"testing"

	"github.com/desertthunder/vibent/internal/services"
)

func TestFlattenOffers(t *testing.T) {
	resp := &services.FlightOffersResponse{
		Data: []services.FlightOffer{
			{
				ID: "1",
				Itineraries: []services.FlightItinerary{
					{
						Duration: "PT7H45M",
						Segments: []services.FlightSegment{
							{
								Departure:   services.FlightEndpoint{IATACode: "SFO", At: "2026-09-10T08:00:00"},
								Arrival:     services.FlightEndpoint{IATACode: "DEN", At: "2026-09-10T11:30:00"},
								CarrierCode: "UA",
								Number:      "512",
								Duration:    "PT2H30M",
							},
							{
								Departure:   services.FlightEndpoint{IATACode: "DEN", At: "2026-09-10T12:45:00"},
								Arrival:     services.FlightEndpoint{IATACode: "JFK", At: "2026-09-10T18:45:00"},
								CarrierCode: "UA",
								Number:      "88",
								Duration:    "PT4H",
							},
						},
					},
				},
				Price: services.FlightPrice{Currency: "USD", Total: "325.40"},
			},
			{
				ID:          "2",
				Itineraries: []services.FlightItinerary{{Segments: nil}},
				Price:       services.FlightPrice{Currency: "USD", Total: "99.00"},
			},
		},
	}

	offers := FlattenOffers(resp)
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer (segmentless offer skipped), got %d", len(offers))
	}

	o := offers[0]
	if o.Carrier != "United Airlines" {
		t.Errorf("carrier = %q, want United Airlines", o.Carrier)
	}
	if o.FlightNumber != "UA 512" {
		t.Errorf("flight number = %q, want UA 512", o.FlightNumber)
	}
	if o.Origin != "SFO" || o.Destination != "JFK" {
		t.Errorf("route = %s-%s, want SFO-JFK", o.Origin, o.Destination)
	}
	if o.DurationMinutes != 390 {
		t.Errorf("duration = %d minutes, want 390", o.DurationMinutes)
	}
	if o.Stops != 1 {
		t.Errorf("stops = %d, want 1", o.Stops)
	}
	if o.Price != 325.40 || o.Currency != "USD" {
		t.Errorf("price = %.2f %s, want 325.40 USD", o.Price, o.Currency)
	}
}

func TestFlattenOffersRoundTripStops(t *testing.T) {
	resp := &services.FlightOffersResponse{
		Data: []services.FlightOffer{
			{
				ID: "rt",
				Itineraries: []services.FlightItinerary{
					{
						Segments: []services.FlightSegment{
							{Departure: services.FlightEndpoint{IATACode: "LAX"}, Arrival: services.FlightEndpoint{IATACode: "ORD"}, CarrierCode: "AA", Number: "100", Duration: "PT4H"},
							{Departure: services.FlightEndpoint{IATACode: "ORD"}, Arrival: services.FlightEndpoint{IATACode: "BOS"}, CarrierCode: "AA", Number: "200", Duration: "PT2H30M"},
						},
					},
					{
						Segments: []services.FlightSegment{
							{Departure: services.FlightEndpoint{IATACode: "BOS"}, Arrival: services.FlightEndpoint{IATACode: "LAX"}, CarrierCode: "AA", Number: "300", Duration: "PT6H15M"},
						},
					},
				},
				Price: services.FlightPrice{Currency: "USD", Total: "512.00"},
			},
		},
	}

	offers := FlattenOffers(resp)
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}

	o := offers[0]
	// Stops count per leg: one connection outbound, nonstop return.
	if o.Stops != 1 {
		t.Errorf("stops = %d, want 1", o.Stops)
	}
	// Duration sums both itineraries: 240 + 150 + 375.
	if o.DurationMinutes != 765 {
		t.Errorf("duration = %d minutes, want 765", o.DurationMinutes)
	}
	// Display route is the outbound leg only.
	if o.Origin != "LAX" || o.Destination != "BOS" {
		t.Errorf("route = %s-%s, want LAX-BOS", o.Origin, o.Destination)
	}
}

func TestFlattenOffersNil(t *testing.T) {
	if got := FlattenOffers(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestAirlineNameFallback(t *testing.T) {
	if got := AirlineName("DL"); got != "Delta Air Lines" {
		t.Errorf("AirlineName(DL) = %q", got)
	}
	if got := AirlineName("ZZ"); got != "ZZ" {
		t.Errorf("AirlineName(ZZ) = %q, want the raw code", got)
	}
}
