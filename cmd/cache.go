package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/repositories"
	"github.com/desertthunder/vibent/internal/shared"
)

// openCacheDB opens the lookup cache database with migrations applied.
func (r *Runner) openCacheDB() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// CacheArtists searches the local artist cache by name.
func (r *Runner) CacheArtists(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewArtistRepository(db)
	artists, err := repo.SearchByName(cmd.String("name"), int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to search cache: %w", err)
	}

	if len(artists) == 0 {
		return r.writePlain("No cached artists match\n")
	}

	for i, artist := range artists {
		r.writePlain("%d. %s (%s via %s)\n", i+1, artist.Artist.Name, artist.SourceID, artist.Source)
	}
	return nil
}

// CacheEvents lists cached events for an artist name.
func (r *Runner) CacheEvents(ctx context.Context, cmd *cli.Command) error {
	artistName := cmd.StringArg("artist")
	if artistName == "" {
		return fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}

	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewEventRepository(db)
	events, err := repo.ListByArtist(artistName)
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}

	if len(events) == 0 {
		return r.writePlain("No cached events for %s\n", artistName)
	}

	for i, event := range events {
		e := event.Event
		r.writePlain("%d. %s on %s at %s, %s\n", i+1, e.Name, e.Date, e.Venue, e.City)
	}
	return nil
}

// CacheStats prints row counts for the lookup cache.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	artistCount, err := repositories.NewArtistRepository(db).Count()
	if err != nil {
		return err
	}
	eventCount, err := repositories.NewEventRepository(db).Count()
	if err != nil {
		return err
	}

	r.writePlain("Artists: %d\n", artistCount)
	r.writePlain("Events:  %d\n", eventCount)
	return nil
}

// CacheClear empties the lookup cache.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewArtistRepository(db).DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear artists: %w", err)
	}
	if err := repositories.NewEventRepository(db).DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	r.writePlain("✓ Lookup cache cleared\n")
	return nil
}
