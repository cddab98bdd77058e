package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/auth"
	"github.com/desertthunder/vibent/internal/server"
	"github.com/desertthunder/vibent/internal/shared"
)

// AuthLogin performs the OAuth2 authorization code flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for tokens, which are saved to the config file.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if r.config.Credentials.Spotify.ClientID == "" || r.config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in %s", shared.ErrInvalidArgument, configPath)
	}
	if r.spotify == nil || r.protocol == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	cred, err := r.doOAuth(ctx)
	if err != nil {
		return err
	}

	if err := r.saveCredential(configPath, cred); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", configPath)
	r.writePlain("You can now use: vibent artists top\n")

	return nil
}

// AuthStatus reports whether the stored credential is present and fresh.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	cred := r.credential()

	if cred.AccessToken == "" && cred.RefreshToken == "" {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'vibent auth login' to sign in\n")
		return nil
	}

	r.writePlain("✓ Credential stored\n")
	if cred.RefreshToken != "" {
		r.writePlain("Refresh token: present\n")
	} else {
		r.writePlain("Refresh token: missing (re-login needed when the access token expires)\n")
	}

	if cred.ExpiresAt.IsZero() {
		r.writePlain("Expiry: unknown\n")
		return nil
	}

	skew := auth.DefaultSkew
	if r.protocol != nil {
		skew = r.protocol.Skew()
	} else {
		r.writePlain("Spotify client credentials: missing (refresh unavailable)\n")
	}

	remaining := time.Until(cred.ExpiresAt)
	switch {
	case remaining <= 0:
		r.writePlain("Access token: expired %v ago\n", -remaining.Round(time.Second))
	case remaining <= skew:
		r.writePlain("Access token: expiring (within refresh window)\n")
	default:
		r.writePlain("Access token: valid for %v\n", remaining.Round(time.Second))
	}

	if remaining > 0 && r.spotify != nil && r.spotify.Configured() {
		if profile, err := r.spotify.UserProfile(ctx, cred.AccessToken); err == nil {
			name := profile.DisplayName
			if name == "" {
				name = profile.ID
			}
			r.writePlain("Signed in as: %s\n", name)
		}
	}
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
// receiving the callback.
func (r *Runner) doOAuth(ctx context.Context) (auth.Credential, error) {
	state := shared.GenerateID()

	authURL := r.spotify.AuthCodeURL(state)
	oauthHandler := server.NewOAuthHandler(r.protocol, state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return auth.Credential{}, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return auth.Credential{}, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return auth.Credential{}, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return auth.Credential{}, fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Credential.AccessToken == "" {
		return auth.Credential{}, fmt.Errorf("no token received")
	}

	return result.Credential, nil
}
