package views

import (
	"testing"

	"github.com/desertthunder/vibent/internal/models"
)

func TestSortFlightsPriceAsc(t *testing.T) {
	offers := sampleOffers()
	SortFlights(offers, SortPriceAsc)

	for i := 1; i < len(offers); i++ {
		if offers[i-1].Price > offers[i].Price {
			t.Fatalf("offers not sorted by price: %.2f before %.2f", offers[i-1].Price, offers[i].Price)
		}
	}
}

func TestSortFlightsStableOnTies(t *testing.T) {
	offers := []models.FlightOffer{
		{ID: "a", Price: 300, Stops: 2},
		{ID: "b", Price: 300, Stops: 0},
		{ID: "c", Price: 300, Stops: 1},
		{ID: "d", Price: 250, Stops: 1},
	}

	SortFlights(offers, SortPriceAsc)

	want := []string{"d", "a", "b", "c"}
	for i, id := range want {
		if offers[i].ID != id {
			t.Fatalf("position %d: got %q, want %q (ties must keep prior order)", i, offers[i].ID, id)
		}
	}
}

func TestSortFlightsKeys(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortPriceDesc, []string{"1", "4", "2", "3"}},
		{SortDurationAsc, []string{"1", "2", "4", "3"}},
		{SortStopsAsc, []string{"1", "2", "4", "3"}},
	}

	for _, tc := range tests {
		t.Run(tc.key.String(), func(t *testing.T) {
			offers := sampleOffers()
			SortFlights(offers, tc.key)
			for i, id := range tc.want {
				if offers[i].ID != id {
					t.Errorf("position %d: got %q, want %q", i, offers[i].ID, id)
				}
			}
		})
	}
}

func TestSortFlightsNoneKeepsOrder(t *testing.T) {
	offers := sampleOffers()
	SortFlights(offers, SortNone)
	for i, id := range []string{"1", "2", "3", "4"} {
		if offers[i].ID != id {
			t.Fatalf("position %d: got %q, want %q", i, offers[i].ID, id)
		}
	}
}

func TestAirportLookups(t *testing.T) {
	codes := AirportsForState("new york")
	if len(codes) == 0 || codes[0] != "JFK" {
		t.Fatalf("AirportsForState(new york) = %v", codes)
	}
	if got := AirportsForState("Atlantis"); got != nil {
		t.Errorf("unknown state should return nil, got %v", got)
	}
	if got := StateForAirport("ord"); got != "Illinois" {
		t.Errorf("StateForAirport(ord) = %q, want Illinois", got)
	}
	if got := StateForAirport("XXX"); got != "" {
		t.Errorf("StateForAirport(XXX) = %q, want empty", got)
	}
}
