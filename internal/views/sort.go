package views

import (
	"sort"

	"github.com/desertthunder/vibent/internal/models"
)

// SortKey enumerates the flight list sort orders.
type SortKey int

const (
	SortNone SortKey = iota
	SortPriceAsc
	SortPriceDesc
	SortDurationAsc
	SortStopsAsc
)

// String returns the label shown in the TUI status line.
func (k SortKey) String() string {
	switch k {
	case SortPriceAsc:
		return "price ↑"
	case SortPriceDesc:
		return "price ↓"
	case SortDurationAsc:
		return "duration ↑"
	case SortStopsAsc:
		return "stops ↑"
	default:
		return "none"
	}
}

// SortFlights orders offers by the given key. Sorting is stable, so ties
// preserve the prior relative order; it is applied after filtering.
func SortFlights(offers []models.FlightOffer, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Price < offers[j].Price })
	case SortPriceDesc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Price > offers[j].Price })
	case SortDurationAsc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].DurationMinutes < offers[j].DurationMinutes })
	case SortStopsAsc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Stops < offers[j].Stops })
	}
}
