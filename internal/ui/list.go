package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/views"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = eventItem{}
	_ list.Item = offerItem{}
)

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	if len(i.artist.Genres) == 0 {
		return fmt.Sprintf("popularity %d", i.artist.Popularity)
	}
	return strings.Join(i.artist.Genres, " • ")
}

// eventItem wraps [models.Event] to implement [list.Item].
type eventItem struct {
	event models.Event
}

func (i eventItem) FilterValue() string { return i.event.Name }
func (i eventItem) Title() string       { return i.event.Name }
func (i eventItem) Description() string {
	location := i.event.Venue
	if i.event.City != "" {
		location = fmt.Sprintf("%s, %s", location, i.event.City)
	}
	if i.event.State != "" {
		location = fmt.Sprintf("%s, %s", location, i.event.State)
	}
	when := strings.TrimSpace(i.event.Date + " " + i.event.Time)
	if i.event.StartUTC != "" {
		when = views.FormatEventTime(i.event.StartUTC, i.event.State)
	}
	return fmt.Sprintf("%s • %s", when, location)
}

// offerItem wraps [models.FlightOffer] to implement [list.Item].
type offerItem struct {
	offer models.FlightOffer
}

func (i offerItem) FilterValue() string { return i.offer.Route() }
func (i offerItem) Title() string {
	return fmt.Sprintf("%s  %.2f %s", i.offer.Route(), i.offer.Price, i.offer.Currency)
}
func (i offerItem) Description() string {
	stops := "nonstop"
	if i.offer.Stops == 1 {
		stops = "1 stop"
	} else if i.offer.Stops > 1 {
		stops = fmt.Sprintf("%d stops", i.offer.Stops)
	}
	return fmt.Sprintf("%s %s • %s • %s", i.offer.Carrier, i.offer.FlightNumber,
		views.FormatMinutes(i.offer.DurationMinutes), stops)
}
