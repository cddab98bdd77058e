// package services defines clients for the upstream HTTP APIs
//
// Spotify (music), Ticketmaster (event discovery), Amadeus (flight shopping)
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/vibent/internal/models"
)

// upstreamTimeout bounds every outbound call.
const upstreamTimeout = 10 * time.Second

// ArtistSource retrieves artists from a music service.
type ArtistSource interface {
	// TopArtists retrieves the authenticated user's top artists.
	TopArtists(ctx context.Context, accessToken string, limit int) ([]models.Artist, error)

	// RelatedArtists retrieves artists related to the given artist.
	RelatedArtists(ctx context.Context, accessToken, artistID string) ([]models.Artist, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// EventSource searches upcoming concert events.
type EventSource interface {
	// SearchEvents retrieves upcoming events matching the artist name.
	SearchEvents(ctx context.Context, artistName string) ([]models.Event, error)

	Name() string
}

// FlightQuery describes one flight-offers search.
//
// Origin, Destination, and DepartureDate are required; DepartureDate is a
// YYYY-MM-DD calendar date. Adults defaults to 1 and Max to 5.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Max           int
}

// Validate checks the query's required fields.
func (q FlightQuery) Validate() error {
	if q.Origin == "" {
		return fmt.Errorf("origin is required")
	}
	if q.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if q.DepartureDate == "" {
		return fmt.Errorf("departureDate is required")
	}
	if _, err := time.Parse("2006-01-02", q.DepartureDate); err != nil {
		return fmt.Errorf("departureDate must be a YYYY-MM-DD date")
	}
	return nil
}

// FlightSource searches flight offers.
type FlightSource interface {
	// SearchFlights retrieves the raw flight-offers payload for passthrough
	// and its decoded form.
	SearchFlights(ctx context.Context, query FlightQuery) (*FlightOffersResponse, []byte, error)

	Name() string
}

// UpstreamError is a non-2xx upstream response, carrying the status code and
// body for diagnostic passthrough.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, string(e.Body))
}

// readResponse drains a response body and converts non-2xx statuses into
// [UpstreamError]. Exactly one upstream call precedes each invocation; no
// retries happen at this layer.
func readResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}

	return body, nil
}

// newClient returns an HTTP client with the standard upstream timeout.
func newClient() *http.Client {
	return &http.Client{Timeout: upstreamTimeout}
}
