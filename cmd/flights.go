package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/formatter"
	"github.com/desertthunder/vibent/internal/services"
	"github.com/desertthunder/vibent/internal/shared"
	"github.com/desertthunder/vibent/internal/views"
)

// Flights searches Amadeus flight offers and renders them flattened, with
// optional filters and sorting applied client-side.
func (r *Runner) Flights(ctx context.Context, cmd *cli.Command) error {
	if r.amadeus == nil || !r.amadeus.Configured() {
		return fmt.Errorf("%w: AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are not configured", shared.ErrMissingConfig)
	}

	query := services.FlightQuery{
		Origin:        strings.ToUpper(cmd.String("origin")),
		Destination:   strings.ToUpper(cmd.String("destination")),
		DepartureDate: cmd.String("date"),
		ReturnDate:    cmd.String("return"),
		Adults:        int(cmd.Int("adults")),
		Max:           int(cmd.Int("max")),
	}
	if err := query.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	r.logger.Infof("searching flights %s to %s on %s", query.Origin, query.Destination, query.DepartureDate)

	resp, raw, err := r.amadeus.SearchFlights(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("raw") {
		return r.writeBytes(append(raw, '\n'))
	}

	offers := views.FlattenOffers(resp)

	filter := views.NewFlightFilter()
	filter.MaxPrice = cmd.Float("max-price")
	if cmd.IsSet("max-stops") {
		filter.MaxStops = int(cmd.Int("max-stops"))
	}
	filter.Airport = cmd.String("airport")
	offers = views.FilterFlights(offers, filter)

	switch cmd.String("sort") {
	case "price":
		views.SortFlights(offers, views.SortPriceAsc)
	case "price-desc":
		views.SortFlights(offers, views.SortPriceDesc)
	case "duration":
		views.SortFlights(offers, views.SortDurationAsc)
	case "stops":
		views.SortFlights(offers, views.SortStopsAsc)
	}

	switch cmd.String("format") {
	case "json":
		return r.writeJSON(offers, cmd.Bool("pretty"))
	case "csv":
		data, err := formatter.FlightsToCSV(offers)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	default:
		return r.writeBytes(formatter.FlightsToText(offers))
	}
}
