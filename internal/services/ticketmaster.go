// Ticketmaster Discovery API implementation of [EventSource]
//
// Response types based on https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/shared"
)

const ticketmasterBaseURL = "https://app.ticketmaster.com"

// eventSearchSize caps how many events one keyword search returns.
const eventSearchSize = 20

type tmVenueName struct {
	Name string `json:"name"`
}

type tmStateRef struct {
	Name      string `json:"name"`
	StateCode string `json:"stateCode"`
}

type tmCountryRef struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// tmVenue is a venue within an event's embedded resources.
type tmVenue struct {
	Name    string       `json:"name"`
	City    tmVenueName  `json:"city"`
	State   tmStateRef   `json:"state"`
	Country tmCountryRef `json:"country"`
}

type tmStart struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
	DateTime  string `json:"dateTime"`
}

type tmDates struct {
	Start tmStart `json:"start"`
}

type tmImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Ratio  string `json:"ratio"`
}

type tmPriceRange struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type tmEmbeddedVenues struct {
	Venues []tmVenue `json:"venues"`
}

// tmEvent is one event in the Discovery search payload.
type tmEvent struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	URL         string            `json:"url"`
	Dates       tmDates           `json:"dates"`
	Images      []tmImage         `json:"images"`
	PriceRanges []tmPriceRange    `json:"priceRanges"`
	Embedded    *tmEmbeddedVenues `json:"_embedded"`
}

type tmEmbeddedEvents struct {
	Events []tmEvent `json:"events"`
}

// tmSearchResponse is the Discovery /events.json payload.
type tmSearchResponse struct {
	Embedded *tmEmbeddedEvents `json:"_embedded"`
}

// TicketmasterService implements [EventSource] for the Discovery API.
type TicketmasterService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTicketmasterService creates an event search client. The API key may be
// empty; callers check [TicketmasterService.Configured] and surface a
// configuration error at request time.
func NewTicketmasterService(apiKey string) *TicketmasterService {
	return &TicketmasterService{
		apiKey:     apiKey,
		baseURL:    ticketmasterBaseURL,
		httpClient: newClient(),
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (t *TicketmasterService) WithBaseURL(baseURL string) *TicketmasterService {
	t.baseURL = baseURL
	return t
}

// Configured reports whether an API key is present.
func (t *TicketmasterService) Configured() bool {
	return t.apiKey != ""
}

func (t *TicketmasterService) Name() string {
	return "Ticketmaster"
}

// SearchEvents retrieves upcoming events for the artist name, soonest first,
// reshaped for display.
func (t *TicketmasterService) SearchEvents(ctx context.Context, artistName string) ([]models.Event, error) {
	if !t.Configured() {
		return nil, fmt.Errorf("%w: missing Ticketmaster API key", shared.ErrMissingCredentials)
	}

	params := url.Values{}
	params.Set("keyword", artistName)
	params.Set("apikey", t.apiKey)
	params.Set("size", fmt.Sprintf("%d", eventSearchSize))
	params.Set("sort", "date,asc")

	ctx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	endpoint := t.baseURL + "/discovery/v2/events.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	var response tmSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	if response.Embedded == nil {
		return []models.Event{}, nil
	}

	events := make([]models.Event, 0, len(response.Embedded.Events))
	for _, te := range response.Embedded.Events {
		events = append(events, reshapeEvent(te))
	}
	return events, nil
}

// reshapeEvent flattens a Discovery event into the display model, with the
// venue fallbacks the frontend expects (state name before state code,
// country name before country code).
func reshapeEvent(te tmEvent) models.Event {
	event := models.Event{
		ID:          te.ID,
		Name:        te.Name,
		Date:        te.Dates.Start.LocalDate,
		Time:        te.Dates.Start.LocalTime,
		StartUTC:    te.Dates.Start.DateTime,
		Venue:       "Unknown Venue",
		URL:         te.URL,
		Images:      make([]models.Image, 0, len(te.Images)),
		PriceRanges: make([]models.PriceRange, 0, len(te.PriceRanges)),
	}

	if te.Embedded != nil && len(te.Embedded.Venues) > 0 {
		venue := te.Embedded.Venues[0]
		if venue.Name != "" {
			event.Venue = venue.Name
		}
		event.City = venue.City.Name

		event.State = venue.State.Name
		if event.State == "" {
			event.State = venue.State.StateCode
		}

		event.Country = venue.Country.Name
		if event.Country == "" {
			event.Country = venue.Country.CountryCode
		}
	}

	for _, img := range te.Images {
		event.Images = append(event.Images, models.Image{
			URL: img.URL, Width: img.Width, Height: img.Height, Ratio: img.Ratio,
		})
	}
	for _, pr := range te.PriceRanges {
		event.PriceRanges = append(event.PriceRanges, models.PriceRange{
			Type: pr.Type, Currency: pr.Currency, Min: pr.Min, Max: pr.Max,
		})
	}

	return event
}

var _ EventSource = (*TicketmasterService)(nil)
