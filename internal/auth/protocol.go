package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/vibent/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultSkew is how long before expiry a credential is treated as stale.
const DefaultSkew = 60 * time.Second

// Protocol performs token exchanges with the identity provider.
type Protocol struct {
	config *oauth2.Config
	skew   time.Duration
	now    func() time.Time
}

// NewProtocol creates a Protocol for the given OAuth2 config with the
// default expiry skew.
func NewProtocol(config *oauth2.Config) *Protocol {
	return &Protocol{
		config: config,
		skew:   DefaultSkew,
		now:    time.Now,
	}
}

// WithClock overrides the protocol's time source. Used by tests.
func (p *Protocol) WithClock(now func() time.Time) *Protocol {
	p.now = now
	return p
}

// WithSkew overrides the expiry skew.
func (p *Protocol) WithSkew(skew time.Duration) *Protocol {
	p.skew = skew
	return p
}

// Exchange performs the one-time authorization-code-for-token exchange.
func (p *Protocol) Exchange(ctx context.Context, code string) (Credential, error) {
	if code == "" {
		return Credential{}, fmt.Errorf("%w: authorization code", shared.ErrMissingArgument)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	return FromToken(token), nil
}

// Refresh exchanges the refresh token for a new access token.
//
// Fails immediately with [shared.ErrNoRefreshToken] when the credential has
// no refresh token. Identity providers may omit a rotated refresh token from
// the response; the prior one is kept in that case.
func (p *Protocol) Refresh(ctx context.Context, cred Credential) (Credential, error) {
	if cred.RefreshToken == "" {
		return Credential{}, fmt.Errorf("%w: no refresh token", shared.ErrNoRefreshToken)
	}

	source := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	next := FromToken(token)
	if next.RefreshToken == "" {
		next.RefreshToken = cred.RefreshToken
	}
	return next, nil
}

// EnsureFresh returns the credential unchanged while it has more than the
// skew window left before expiry, and refreshes it otherwise.
func (p *Protocol) EnsureFresh(ctx context.Context, cred Credential) (Credential, error) {
	if p.now().Before(cred.ExpiresAt.Add(-p.skew)) {
		return cred, nil
	}
	return p.Refresh(ctx, cred)
}

// Skew returns the configured expiry skew.
func (p *Protocol) Skew() time.Duration {
	return p.skew
}

// AuthCodeURL returns the provider's authorize URL for the given state token.
func (p *Protocol) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// IsTerminalRefreshError reports whether a refresh failure means the grant
// itself is dead and the session must re-authenticate. Anything else is
// treated as transient and retried on the next timer.
func IsTerminalRefreshError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"invalid_grant",
		"invalid_client",
		"unauthorized_client",
		"revoked",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
