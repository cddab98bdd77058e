package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/formatter"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/repositories"
	"github.com/desertthunder/vibent/internal/shared"
)

// ArtistsTop lists the listener's top Spotify artists.
func (r *Runner) ArtistsTop(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	token, err := r.ensureToken(ctx, cmd.String("config"))
	if err != nil {
		return err
	}

	r.logger.Infof("listing top artists with limit %v", limit)

	artists, err := r.spotify.TopArtists(ctx, token, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("save") {
		if err := r.cacheArtists(artists); err != nil {
			r.logger.Warn("failed to cache artists", "error", err)
		}
	}

	if useJSON {
		return r.writeJSON(artists, pretty)
	}
	return r.writeBytes(formatter.ArtistsToText(artists))
}

// ArtistsRelated lists artists related to the given artist ID.
func (r *Runner) ArtistsRelated(ctx context.Context, cmd *cli.Command) error {
	artistID := cmd.StringArg("id")
	if artistID == "" {
		return fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}

	token, err := r.ensureToken(ctx, cmd.String("config"))
	if err != nil {
		return err
	}

	r.logger.Infof("fetching artists related to %v", artistID)

	artists, err := r.spotify.RelatedArtists(ctx, token, artistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("save") {
		if err := r.cacheArtists(artists); err != nil {
			r.logger.Warn("failed to cache artists", "error", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}
	return r.writeBytes(formatter.ArtistsToText(artists))
}

// cacheArtists writes artists into the sqlite lookup cache.
func (r *Runner) cacheArtists(artists []models.Artist) error {
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
	return cache.CacheArtists(r.spotify.Name(), artists)
}
