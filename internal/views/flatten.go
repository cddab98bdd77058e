package views

import (
	"strconv"

	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/services"
)

// FlattenOffers reduces nested flight-offer itineraries to display records.
//
// Total duration is the sum of every segment's duration across all
// itineraries; stops are counted per itinerary leg (segments minus one) and
// summed. Departure comes from the first segment of the first itinerary,
// arrival from the last segment of that itinerary, matching how the offer
// list renders a one-way or outbound leg.
func FlattenOffers(resp *services.FlightOffersResponse) []models.FlightOffer {
	if resp == nil {
		return []models.FlightOffer{}
	}

	offers := make([]models.FlightOffer, 0, len(resp.Data))
	for _, data := range resp.Data {
		if len(data.Itineraries) == 0 || len(data.Itineraries[0].Segments) == 0 {
			continue
		}

		first := data.Itineraries[0].Segments[0]
		outbound := data.Itineraries[0].Segments
		last := outbound[len(outbound)-1]

		offer := models.FlightOffer{
			ID:           data.ID,
			Carrier:      AirlineName(first.CarrierCode),
			FlightNumber: first.CarrierCode + " " + first.Number,
			Origin:       first.Departure.IATACode,
			Destination:  last.Arrival.IATACode,
			DepartureAt:  first.Departure.At,
			ArrivalAt:    last.Arrival.At,
			Currency:     data.Price.Currency,
		}

		if price, err := strconv.ParseFloat(data.Price.Total, 64); err == nil {
			offer.Price = price
		}

		for _, itinerary := range data.Itineraries {
			for _, segment := range itinerary.Segments {
				offer.DurationMinutes += ParseISODuration(segment.Duration)
			}
			if n := len(itinerary.Segments); n > 1 {
				offer.Stops += n - 1
			}
		}

		offers = append(offers, offer)
	}
	return offers
}
