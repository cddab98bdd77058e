package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/vibent/internal/models"
)

// ArtistRepository persists artists in the lookup cache.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates an ArtistRepository with the given database connection.
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist row.
func (r *ArtistRepository) Create(artist *models.PersistedArtist) error {
	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO artists (source, source_id, name, genres, popularity, image_url, external_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		artist.Source,
		artist.SourceID,
		artist.Artist.Name,
		joinGenres(artist.Artist.Genres),
		artist.Artist.Popularity,
		artist.Artist.ImageURL,
		artist.Artist.ExternalURL,
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		artist.RowID = id
	}
	return nil
}

// GetBySourceID retrieves an artist by source and source_id. A missing row
// returns (nil, nil).
func (r *ArtistRepository) GetBySourceID(source, sourceID string) (*models.PersistedArtist, error) {
	query := `
		SELECT id, source, source_id, name, genres, popularity, image_url, external_url, created_at, updated_at
		FROM artists
		WHERE source = ? AND source_id = ?
	`

	return r.scanOne(r.db.QueryRow(query, source, sourceID))
}

// SearchByName lists artists whose name contains the given fragment,
// case-insensitively, most recently updated first.
func (r *ArtistRepository) SearchByName(fragment string, limit int) ([]*models.PersistedArtist, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, source, source_id, name, genres, popularity, image_url, external_url, created_at, updated_at
		FROM artists
		WHERE name LIKE ? COLLATE NOCASE
		ORDER BY updated_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, "%"+fragment+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.PersistedArtist
	for rows.Next() {
		artist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// Count returns the number of cached artists.
func (r *ArtistRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM artists`).Scan(&n)
	return n, err
}

// DeleteAll clears the artist cache.
func (r *ArtistRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM artists`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ArtistRepository) scanOne(row *sql.Row) (*models.PersistedArtist, error) {
	artist, err := r.scanRow(row)
	return scanErr(artist, err)
}

func (r *ArtistRepository) scanRow(row rowScanner) (*models.PersistedArtist, error) {
	var a models.PersistedArtist
	var genres string

	err := row.Scan(
		&a.RowID,
		&a.Source,
		&a.SourceID,
		&a.Artist.Name,
		&genres,
		&a.Artist.Popularity,
		&a.Artist.ImageURL,
		&a.Artist.ExternalURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Artist.ID = a.SourceID
	a.Artist.Genres = splitGenres(genres)
	return &a, nil
}
