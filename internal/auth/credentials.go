package auth

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Credential holds the access token, refresh token, and expiry for one
// authenticated session. ExpiresAt is always set when AccessToken is set.
// Credentials live in memory only and are never persisted.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Valid reports whether the credential carries an access token.
func (c Credential) Valid() bool {
	return c.AccessToken != ""
}

// Token converts the credential to an [oauth2.Token].
func (c Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Expiry:       c.ExpiresAt,
	}
}

// FromToken builds a Credential from an [oauth2.Token].
func FromToken(t *oauth2.Token) Credential {
	return Credential{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.Expiry,
	}
}

// Store guards the current session credential.
//
// Only the token refresh protocol mutates it; the relay and services read it.
type Store struct {
	mu   sync.RWMutex
	cred Credential
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current credential and whether one is set.
func (s *Store) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.cred.Valid()
}

// Set replaces the current credential.
func (s *Store) Set(cred Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
}

// Clear discards the current credential, returning the store to the
// unauthenticated state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
}
