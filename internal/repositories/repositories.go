// Package repositories provides the sqlite-backed lookup cache for artists
// and events fetched from upstream APIs.
//
// Rows are identified by (source, source_id) with a UNIQUE constraint, so a
// record seen twice keeps its first write. Credentials never touch this
// layer; it only holds public lookup data for offline browsing.
package repositories

import (
	"database/sql"
	"strings"
)

// joinGenres flattens a genre list for the single text column.
func joinGenres(genres []string) string {
	return strings.Join(genres, ",")
}

// splitGenres restores a genre list from its stored form.
func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

// scanErr normalizes sql.ErrNoRows to a nil record.
func scanErr[T any](record *T, err error) (*T, error) {
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}
