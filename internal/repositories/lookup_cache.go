package repositories

import (
	"fmt"

	"github.com/desertthunder/vibent/internal/models"
)

// LookupCache writes fetched artists and events into the sqlite cache.
//
// Deduplication rides on the (source, source_id) UNIQUE constraint: a record
// already present keeps its first write and the duplicate is silently
// dropped, so the cache never flips between variants of the same record.
type LookupCache struct {
	artists *ArtistRepository
	events  *EventRepository
}

// NewLookupCache creates a LookupCache over the given repositories.
func NewLookupCache(artists *ArtistRepository, events *EventRepository) *LookupCache {
	return &LookupCache{artists: artists, events: events}
}

// CacheArtist stores one artist, ignoring duplicates.
func (c *LookupCache) CacheArtist(source string, artist models.Artist) error {
	existing, err := c.artists.GetBySourceID(source, artist.ID)
	if err == nil && existing != nil {
		return nil
	}

	if err := c.artists.Create(models.NewPersistedArtist(source, artist)); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to cache artist: %w", err)
	}
	return nil
}

// CacheArtists stores a batch, stopping on the first real failure.
func (c *LookupCache) CacheArtists(source string, artists []models.Artist) error {
	for _, artist := range artists {
		if err := c.CacheArtist(source, artist); err != nil {
			return err
		}
	}
	return nil
}

// CacheEvent stores one event under the artist it was fetched for,
// ignoring duplicates.
func (c *LookupCache) CacheEvent(source, artistName string, event models.Event) error {
	existing, err := c.events.GetBySourceID(source, event.ID)
	if err == nil && existing != nil {
		return nil
	}

	if err := c.events.Create(models.NewPersistedEvent(source, artistName, event)); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to cache event: %w", err)
	}
	return nil
}

// CacheEvents stores a batch, stopping on the first real failure.
func (c *LookupCache) CacheEvents(source, artistName string, events []models.Event) error {
	for _, event := range events {
		if err := c.CacheEvent(source, artistName, event); err != nil {
			return err
		}
	}
	return nil
}
