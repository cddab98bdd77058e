package views

import (
	"strings"

	"github.com/desertthunder/vibent/internal/models"
)

// UnsetStops marks the stop-count filter as not supplied. Zero is a valid
// filter value (nonstop only), so the unset sentinel is negative.
const UnsetStops = -1

// FlightFilter holds user-supplied criteria for the flight list. Filters
// are conjunctive: every supplied criterion must pass independently, and an
// unset criterion always passes.
type FlightFilter struct {
	MaxPrice float64 // 0 = unset
	MaxStops int     // UnsetStops = unset
	Airport  string  // substring match on origin or destination code
}

// NewFlightFilter returns a filter with every criterion unset.
func NewFlightFilter() FlightFilter {
	return FlightFilter{MaxStops: UnsetStops}
}

// Match reports whether the offer passes every supplied criterion.
func (f FlightFilter) Match(o models.FlightOffer) bool {
	if f.MaxPrice > 0 && o.Price > f.MaxPrice {
		return false
	}
	if f.MaxStops >= 0 && o.Stops > f.MaxStops {
		return false
	}
	if f.Airport != "" {
		needle := strings.ToUpper(strings.TrimSpace(f.Airport))
		if !strings.Contains(strings.ToUpper(o.Origin), needle) &&
			!strings.Contains(strings.ToUpper(o.Destination), needle) {
			return false
		}
	}
	return true
}

// FilterFlights returns the offers passing the filter, input order preserved.
func FilterFlights(offers []models.FlightOffer, f FlightFilter) []models.FlightOffer {
	out := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// EventFilter holds criteria for the concert list.
type EventFilter struct {
	City  string
	State string
	Text  string // free-text match against city, state, country, venue, and name
}

// Match reports whether the event passes every supplied criterion.
// All matches are case-insensitive substring matches.
func (f EventFilter) Match(e models.Event) bool {
	if !containsFold(e.City, f.City) {
		return false
	}
	if !containsFold(e.State, f.State) {
		return false
	}
	if f.Text != "" {
		hit := false
		for _, field := range []string{e.City, e.State, e.Country, e.Venue, e.Name} {
			if containsFold(field, f.Text) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// FilterEvents returns the events passing the filter, input order preserved.
func FilterEvents(events []models.Event, f EventFilter) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// containsFold is a case-insensitive substring check where an empty needle
// always matches.
func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
