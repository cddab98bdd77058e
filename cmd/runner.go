package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/auth"
	"github.com/desertthunder/vibent/internal/services"
	"github.com/desertthunder/vibent/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	spotify      *services.SpotifyService
	ticketmaster *services.TicketmasterService
	amadeus      *services.AmadeusService
	protocol     *auth.Protocol
	logger       *log.Logger
	output       io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config       *shared.Config
	Spotify      *services.SpotifyService
	Ticketmaster *services.TicketmasterService
	Amadeus      *services.AmadeusService
	Logger       *log.Logger
	Output       io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:       opts.Config,
		spotify:      opts.Spotify,
		ticketmaster: opts.Ticketmaster,
		amadeus:      opts.Amadeus,
		logger:       opts.Logger,
		output:       opts.Output,
	}
	if r.spotify != nil && r.spotify.Configured() {
		r.protocol = auth.NewProtocol(r.spotify.OAuthConfig())
	}
	return r
}

// SetLogger swaps the runner's logger, used by the TUI to log to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, authCommand, artistsCommand, concertsCommand, flightsCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// credential rebuilds the stored Spotify credential from config.
func (r *Runner) credential() auth.Credential {
	spotify := r.config.Credentials.Spotify
	cred := auth.Credential{
		AccessToken:  spotify.AccessToken,
		RefreshToken: spotify.RefreshToken,
	}
	if spotify.ExpiresAt > 0 {
		cred.ExpiresAt = time.Unix(spotify.ExpiresAt, 0)
	}
	return cred
}

// ensureCredential returns a usable credential, refreshing through the token
// protocol when the stored one is expired or close to it. Refreshed tokens
// are written back to the config file so the next invocation starts fresh.
func (r *Runner) ensureCredential(ctx context.Context, configPath string) (auth.Credential, error) {
	if r.protocol == nil {
		return auth.Credential{}, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	cred := r.credential()
	if cred.AccessToken == "" && cred.RefreshToken == "" {
		return auth.Credential{}, fmt.Errorf("%w: run 'vibent auth login' first", shared.ErrNotAuthenticated)
	}

	fresh, err := r.protocol.EnsureFresh(ctx, cred)
	if err != nil {
		if auth.IsTerminalRefreshError(err) {
			return auth.Credential{}, fmt.Errorf("%w: stored refresh token was rejected, run 'vibent auth login' again", shared.ErrNotAuthenticated)
		}
		return auth.Credential{}, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if fresh.AccessToken != cred.AccessToken {
		r.logger.Info("access token refreshed")
		if err := r.saveCredential(configPath, fresh); err != nil {
			r.logger.Warn("failed to persist refreshed token", "error", err)
		}
	}

	return fresh, nil
}

func (r *Runner) ensureToken(ctx context.Context, configPath string) (string, error) {
	cred, err := r.ensureCredential(ctx, configPath)
	if err != nil {
		return "", err
	}
	return cred.AccessToken, nil
}

// saveCredential writes a credential back into the config file.
func (r *Runner) saveCredential(configPath string, cred auth.Credential) error {
	if err := r.config.Credentials.Spotify.Update(cred.AccessToken, cred.RefreshToken, cred.ExpiresAt.Unix()); err != nil {
		return err
	}
	return shared.SaveConfig(configPath, r.config)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeBytes dumps preformatted output (CSV, markdown) to the output writer.
func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
