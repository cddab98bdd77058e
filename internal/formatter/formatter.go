// package formatter exports artist, concert, and flight data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/views"
)

// EventsToCSV converts events to CSV with columns: ID, Name, Date, Time, Venue, City, State, Country, URL
func EventsToCSV(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Date", "Time", "Venue", "City", "State", "Country", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, event := range events {
		record := []string{
			event.ID,
			event.Name,
			event.Date,
			event.Time,
			event.Venue,
			event.City,
			event.State,
			event.Country,
			event.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// FlightsToCSV converts flight offers to CSV with columns: ID, Carrier, Flight, Origin, Destination, Departure, Arrival, Duration, Stops, Price, Currency
func FlightsToCSV(offers []models.FlightOffer) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Carrier", "Flight", "Origin", "Destination", "Departure", "Arrival", "Duration", "Stops", "Price", "Currency"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, offer := range offers {
		record := []string{
			offer.ID,
			offer.Carrier,
			offer.FlightNumber,
			offer.Origin,
			offer.Destination,
			offer.DepartureAt,
			offer.ArrivalAt,
			views.FormatMinutes(offer.DurationMinutes),
			strconv.Itoa(offer.Stops),
			strconv.FormatFloat(offer.Price, 'f', 2, 64),
			offer.Currency,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// EventsToMarkdown renders a concert list as a Markdown document headed by
// the artist name.
func EventsToMarkdown(artistName string, events []models.Event) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Concerts: %s\n\n", artistName))
	buf.WriteString(fmt.Sprintf("**Events**: %d\n\n", len(events)))

	for i, event := range events {
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, event.Name, eventWhen(event)))
		buf.WriteString(fmt.Sprintf("   - %s, %s\n", event.Venue, eventLocation(event)))
		if event.URL != "" {
			buf.WriteString(fmt.Sprintf("   - [Tickets](%s)\n", event.URL))
		}
	}

	return buf.Bytes()
}

// EventsToText renders a concert list as plain text.
func EventsToText(artistName string, events []models.Event) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Concerts for %s (%d)\n\n", artistName, len(events)))
	for i, event := range events {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, event.Name))
		buf.WriteString(fmt.Sprintf("   %s at %s, %s\n", eventWhen(event), event.Venue, eventLocation(event)))
		if event.URL != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", event.URL))
		}
	}

	return buf.Bytes()
}

// FlightsToText renders flight offers as plain text.
func FlightsToText(offers []models.FlightOffer) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Flight offers (%d)\n\n", len(offers)))
	for i, offer := range offers {
		buf.WriteString(fmt.Sprintf("%d. %s %s %s\n", i+1, offer.Carrier, offer.FlightNumber, offer.Route()))
		buf.WriteString(fmt.Sprintf("   %s, %d stops, %.2f %s\n",
			views.FormatMinutes(offer.DurationMinutes), offer.Stops, offer.Price, offer.Currency))
	}

	return buf.Bytes()
}

// ArtistsToText renders an artist list as plain text.
func ArtistsToText(artists []models.Artist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artists (%d)\n\n", len(artists)))
	for i, artist := range artists {
		buf.WriteString(fmt.Sprintf("%d. %s", i+1, artist.Name))
		if len(artist.Genres) > 0 {
			buf.WriteString(fmt.Sprintf(" [%s]", strings.Join(artist.Genres, ", ")))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// eventWhen prefers the start time localized to the venue's state, falling
// back to the raw local date and time fields.
func eventWhen(event models.Event) string {
	if event.StartUTC != "" {
		return views.FormatEventTime(event.StartUTC, event.State)
	}
	return strings.TrimSpace(event.Date + " " + event.Time)
}

// eventLocation joins the non-empty parts of an event's location.
func eventLocation(event models.Event) string {
	parts := []string{}
	for _, part := range []string{event.City, event.State, event.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
