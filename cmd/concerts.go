package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/aggregate"
	"github.com/desertthunder/vibent/internal/formatter"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/repositories"
	"github.com/desertthunder/vibent/internal/shared"
	"github.com/desertthunder/vibent/internal/views"
)

// Concerts searches Ticketmaster for upcoming events across one or more
// artist names, merging the results with duplicates removed.
//
// A failed artist lookup is reported as a warning; the merged list still
// includes every artist that succeeded. The command only errors when every
// lookup failed.
func (r *Runner) Concerts(ctx context.Context, cmd *cli.Command) error {
	names := cmd.StringArgs("artists")
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one artist name", shared.ErrMissingArgument)
	}

	if r.ticketmaster == nil || !r.ticketmaster.Configured() {
		return fmt.Errorf("%w: TICKETMASTER_API_KEY is not configured", shared.ErrMissingConfig)
	}

	collector := aggregate.New(
		func(ctx context.Context, artistName string) ([]models.Event, error) {
			return r.ticketmaster.SearchEvents(ctx, artistName)
		},
		func(event models.Event) string { return event.ID },
		r.logger,
	)

	result := collector.Collect(ctx, names)
	if result.AllFailed(len(names)) {
		return fmt.Errorf("%w: every concert lookup failed", shared.ErrAPIRequest)
	}

	for _, failure := range result.Failures {
		r.writePlain("⚠ %s: %v\n", failure.Seed, failure.Err)
	}

	events := views.FilterEvents(result.Items, views.EventFilter{
		City:  cmd.String("city"),
		State: cmd.String("state"),
	})

	if cmd.Bool("save") {
		if err := r.cacheEvents(names[0], events); err != nil {
			r.logger.Warn("failed to cache events", "error", err)
		}
	}

	label := strings.Join(names, ", ")
	switch cmd.String("format") {
	case "json":
		return r.writeJSON(events, cmd.Bool("pretty"))
	case "csv":
		data, err := formatter.EventsToCSV(events)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case "markdown", "md":
		return r.writeBytes(formatter.EventsToMarkdown(label, events))
	default:
		return r.writeBytes(formatter.EventsToText(label, events))
	}
}

// cacheEvents writes events into the sqlite lookup cache.
func (r *Runner) cacheEvents(artistName string, events []models.Event) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	cache := repositories.NewLookupCache(
		repositories.NewArtistRepository(db),
		repositories.NewEventRepository(db),
	)
	return cache.CacheEvents(r.ticketmaster.Name(), artistName, events)
}
