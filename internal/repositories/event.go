package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/vibent/internal/models"
)

// EventRepository persists concert events in the lookup cache.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates an EventRepository with the given database connection.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event row. The price columns hold the first listed
// price range; additional ranges are not persisted.
func (r *EventRepository) Create(event *models.PersistedEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var minPrice, maxPrice float64
	if len(event.Event.PriceRanges) > 0 {
		minPrice = event.Event.PriceRanges[0].Min
		maxPrice = event.Event.PriceRanges[0].Max
	}

	query := `
		INSERT INTO events (source, source_id, artist_name, name, event_date, event_time, venue, city, state, country, url, min_price, max_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		event.Source,
		event.SourceID,
		event.ArtistName,
		event.Event.Name,
		event.Event.Date,
		event.Event.Time,
		event.Event.Venue,
		event.Event.City,
		event.Event.State,
		event.Event.Country,
		event.Event.URL,
		minPrice,
		maxPrice,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		event.RowID = id
	}
	return nil
}

// GetBySourceID retrieves an event by source and source_id. A missing row
// returns (nil, nil).
func (r *EventRepository) GetBySourceID(source, sourceID string) (*models.PersistedEvent, error) {
	query := r.selectClause() + `WHERE source = ? AND source_id = ?`
	event, err := r.scanRow(r.db.QueryRow(query, source, sourceID))
	return scanErr(event, err)
}

// ListByArtist lists cached events for an artist name, soonest first.
func (r *EventRepository) ListByArtist(artistName string) ([]*models.PersistedEvent, error) {
	query := r.selectClause() + `
		WHERE artist_name = ? COLLATE NOCASE
		ORDER BY event_date ASC, event_time ASC
	`

	rows, err := r.db.Query(query, artistName)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.PersistedEvent
	for rows.Next() {
		event, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Count returns the number of cached events.
func (r *EventRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// DeleteAll clears the event cache.
func (r *EventRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM events`)
	return err
}

func (r *EventRepository) selectClause() string {
	return `
		SELECT id, source, source_id, artist_name, name, event_date, event_time, venue, city, state, country, url, min_price, max_price, created_at, updated_at
		FROM events
	`
}

func (r *EventRepository) scanRow(row rowScanner) (*models.PersistedEvent, error) {
	var e models.PersistedEvent
	var minPrice, maxPrice float64

	err := row.Scan(
		&e.RowID,
		&e.Source,
		&e.SourceID,
		&e.ArtistName,
		&e.Event.Name,
		&e.Event.Date,
		&e.Event.Time,
		&e.Event.Venue,
		&e.Event.City,
		&e.Event.State,
		&e.Event.Country,
		&e.Event.URL,
		&minPrice,
		&maxPrice,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Event.ID = e.SourceID
	if minPrice > 0 || maxPrice > 0 {
		e.Event.PriceRanges = []models.PriceRange{{Min: minPrice, Max: maxPrice}}
	}
	return &e, nil
}
