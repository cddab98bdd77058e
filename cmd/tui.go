package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/auth"
	"github.com/desertthunder/vibent/internal/shared"
	"github.com/desertthunder/vibent/internal/ui"
)

// TUI launches the interactive terminal UI for concert and flight browsing.
//
// The session holds its credential in an [auth.Store] kept fresh by a
// background [auth.Scheduler], so long browsing sessions survive token expiry.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if r.ticketmaster == nil || !r.ticketmaster.Configured() {
		return fmt.Errorf("%w: TICKETMASTER_API_KEY is not configured", shared.ErrMissingConfig)
	}

	cred, err := r.ensureCredential(ctx, cmd.String("config"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/vibent-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	store := auth.NewStore()
	store.Set(cred)
	scheduler := auth.NewScheduler(r.protocol, store, fileLogger)
	scheduler.Arm()
	defer scheduler.Stop()

	token := func() string {
		current, _ := store.Get()
		return current.AccessToken
	}

	model := ui.NewModel(ctx, r.spotify, r.ticketmaster, r.amadeus, token, cmd.String("origin"), fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
