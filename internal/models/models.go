package models

import (
	"fmt"
	"strings"
	"time"
)

// Image represents an image resource attached to an artist or event.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Ratio  string `json:"ratio,omitempty"`
}

// PriceRange represents a ticket price band for an event.
type PriceRange struct {
	Type     string  `json:"type,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Artist is a normalized music artist from any upstream source.
type Artist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Genres      []string `json:"genres,omitempty"`
	Popularity  int      `json:"popularity"`
	ImageURL    string   `json:"image_url,omitempty"`
	ExternalURL string   `json:"external_url,omitempty"`
}

// Event is a concert event reshaped for display.
//
// Field set matches the relay's /concerts response contract.
type Event struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Date        string       `json:"date"`
	Time        string       `json:"time,omitempty"`
	StartUTC    string       `json:"startDateTime,omitempty"`
	Venue       string       `json:"venue"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Country     string       `json:"country"`
	URL         string       `json:"url"`
	Images      []Image      `json:"images"`
	PriceRanges []PriceRange `json:"priceRanges"`
}

// FlightOffer is a flattened flight itinerary: nested segments reduced to
// departure/arrival/duration/stops/price for list rendering.
type FlightOffer struct {
	ID              string  `json:"id"`
	Carrier         string  `json:"carrier"`
	FlightNumber    string  `json:"flight_number"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureAt     string  `json:"departure_at"`
	ArrivalAt       string  `json:"arrival_at"`
	DurationMinutes int     `json:"duration_minutes"`
	Stops           int     `json:"stops"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
}

// Route returns a compact "SFO → JFK" description of the offer.
func (f FlightOffer) Route() string {
	return fmt.Sprintf("%s → %s", f.Origin, f.Destination)
}

// PersistedArtist is an Artist with cache identity and timestamps.
type PersistedArtist struct {
	RowID     int64
	Source    string
	SourceID  string
	Artist    Artist
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required fields before persistence.
func (a *PersistedArtist) Validate() error {
	if a.Source == "" || a.SourceID == "" {
		return fmt.Errorf("artist requires source and source id")
	}
	if strings.TrimSpace(a.Artist.Name) == "" {
		return fmt.Errorf("artist requires a name")
	}
	return nil
}

// PersistedEvent is an Event with cache identity, the artist it was fetched
// for, and timestamps.
type PersistedEvent struct {
	RowID      int64
	Source     string
	SourceID   string
	ArtistName string
	Event      Event
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks required fields before persistence.
func (e *PersistedEvent) Validate() error {
	if e.Source == "" || e.SourceID == "" {
		return fmt.Errorf("event requires source and source id")
	}
	if strings.TrimSpace(e.Event.Name) == "" {
		return fmt.Errorf("event requires a name")
	}
	return nil
}

// NewPersistedArtist wraps an Artist for caching under the given source.
func NewPersistedArtist(source string, artist Artist) *PersistedArtist {
	now := time.Now()
	return &PersistedArtist{
		Source:    source,
		SourceID:  artist.ID,
		Artist:    artist,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewPersistedEvent wraps an Event for caching under the given source and seed artist.
func NewPersistedEvent(source, artistName string, event Event) *PersistedEvent {
	now := time.Now()
	return &PersistedEvent{
		Source:     source,
		SourceID:   event.ID,
		ArtistName: artistName,
		Event:      event,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
