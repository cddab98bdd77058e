// Amadeus flight-offers implementation of [FlightSource]
//
// Uses the self-service test environment with a client-credentials token
// source; response types based on the Flight Offers Search v2 reference.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/vibent/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	amadeusBaseURL  = "https://test.api.amadeus.com"
	amadeusTokenURL = "https://test.api.amadeus.com/v1/security/oauth2/token"
)

// FlightEndpoint is a flight segment endpoint (airport and local time).
type FlightEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// FlightSegment is one flown leg within an itinerary.
type FlightSegment struct {
	Departure   FlightEndpoint `json:"departure"`
	Arrival     FlightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Duration    string         `json:"duration"` // ISO-8601, e.g. PT2H15M
}

// FlightItinerary is an ordered list of segments for one direction.
type FlightItinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

// FlightPrice is the offer's total price.
type FlightPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// FlightOffer is one offer in the search payload.
type FlightOffer struct {
	ID          string            `json:"id"`
	Itineraries []FlightItinerary `json:"itineraries"`
	Price       FlightPrice       `json:"price"`
}

// FlightOffersResponse is the /v2/shopping/flight-offers payload.
type FlightOffersResponse struct {
	Data []FlightOffer `json:"data"`
}

// AmadeusService implements [FlightSource] for the Amadeus flight-offers API.
//
// Server-side credentials: the client-credentials token source fetches and
// refreshes its own bearer token, independent of any user session.
type AmadeusService struct {
	baseURL    string
	httpClient *http.Client
	configured bool
}

// NewAmadeusService creates a flight search client. Credentials may be
// empty; callers check [AmadeusService.Configured] and surface a
// configuration error at request time.
func NewAmadeusService(clientID, clientSecret string) *AmadeusService {
	s := &AmadeusService{
		baseURL:    amadeusBaseURL,
		configured: clientID != "" && clientSecret != "",
	}

	if s.configured {
		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     amadeusTokenURL,
		}
		s.httpClient = config.Client(context.Background())
		s.httpClient.Timeout = upstreamTimeout
	} else {
		s.httpClient = newClient()
	}

	return s
}

// WithBaseURL overrides the API base URL. Used by tests.
func (s *AmadeusService) WithBaseURL(baseURL string) *AmadeusService {
	s.baseURL = baseURL
	return s
}

// WithHTTPClient replaces the token-bearing client. Used by tests.
func (s *AmadeusService) WithHTTPClient(client *http.Client) *AmadeusService {
	s.httpClient = client
	s.configured = true
	return s
}

// Configured reports whether API credentials are present.
func (s *AmadeusService) Configured() bool {
	return s.configured
}

func (s *AmadeusService) Name() string {
	return "Amadeus"
}

// SearchFlights performs one flight-offers search and returns both the
// decoded payload and the raw body for relay passthrough.
func (s *AmadeusService) SearchFlights(ctx context.Context, query FlightQuery) (*FlightOffersResponse, []byte, error) {
	if !s.configured {
		return nil, nil, fmt.Errorf("%w: missing Amadeus credentials", shared.ErrMissingCredentials)
	}
	if err := query.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if query.Adults <= 0 {
		query.Adults = 1
	}
	if query.Max <= 0 {
		query.Max = 5
	}

	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate)
	if query.ReturnDate != "" {
		params.Set("returnDate", query.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("max", strconv.Itoa(query.Max))

	ctx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	endpoint := s.baseURL + "/v2/shopping/flight-offers?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	body, err := readResponse(resp)
	if err != nil {
		return nil, nil, err
	}

	var response FlightOffersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	return &response, body, nil
}

var _ FlightSource = (*AmadeusService)(nil)
