// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/services"
)

// MockArtistSource is a test double for [services.ArtistSource]
type MockArtistSource struct {
	Artists []models.Artist
	Related map[string][]models.Artist
	Err     error
	Calls   atomic.Int32
}

func (m *MockArtistSource) TopArtists(ctx context.Context, accessToken string, limit int) ([]models.Artist, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Artists) {
		return m.Artists[:limit], nil
	}
	return m.Artists, nil
}

func (m *MockArtistSource) RelatedArtists(ctx context.Context, accessToken, artistID string) ([]models.Artist, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Related[artistID], nil
}

func (m *MockArtistSource) Name() string { return "mock-artists" }

// MockEventSource is a test double for [services.EventSource]. Events are
// keyed by artist name; Failures lists artists whose lookup should error.
type MockEventSource struct {
	Events   map[string][]models.Event
	Failures map[string]error
	Calls    atomic.Int32
}

func (m *MockEventSource) SearchEvents(ctx context.Context, artistName string) ([]models.Event, error) {
	m.Calls.Add(1)
	if err, ok := m.Failures[artistName]; ok {
		return nil, err
	}
	return m.Events[artistName], nil
}

func (m *MockEventSource) Name() string { return "mock-events" }

// MockFlightSource is a test double for [services.FlightSource]
type MockFlightSource struct {
	Response *services.FlightOffersResponse
	Raw      []byte
	Err      error
	Calls    atomic.Int32
}

func (m *MockFlightSource) SearchFlights(ctx context.Context, query services.FlightQuery) (*services.FlightOffersResponse, []byte, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Response, m.Raw, nil
}

func (m *MockFlightSource) Name() string { return "mock-flights" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}
