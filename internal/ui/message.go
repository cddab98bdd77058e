package ui

import (
	"github.com/desertthunder/vibent/internal/aggregate"
	"github.com/desertthunder/vibent/internal/models"
)

// artistsFetchedMsg delivers the top artists list.
type artistsFetchedMsg struct {
	artists []models.Artist
	err     error
}

// relatedFetchedMsg delivers the related artists for a selection.
type relatedFetchedMsg struct {
	seed    models.Artist
	artists []models.Artist
	err     error
}

// concertsFetchedMsg delivers aggregated concerts. Failures lists the seed
// artists whose lookup failed; the view renders them as a warning instead
// of an error.
type concertsFetchedMsg struct {
	events   []models.Event
	failures []aggregate.Failure[models.Artist]
	err      error
}

// flightsFetchedMsg delivers flight offers toward a selected concert.
type flightsFetchedMsg struct {
	offers []models.FlightOffer
	err    error
}
