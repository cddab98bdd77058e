package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vibent/internal/auth"
	"github.com/desertthunder/vibent/internal/cache"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/services"
	"github.com/desertthunder/vibent/internal/shared"
	"github.com/desertthunder/vibent/internal/views"
)

// maxArtistNameLen bounds the concerts keyword so cache keys and upstream
// queries stay sane.
const maxArtistNameLen = 100

func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := shared.MarshalJSON(data, false)
	if err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// relayUpstream writes an upstream failure through to the client. Provider
// errors keep their original status and body; anything else becomes 500.
func (s *Server) relayUpstream(w http.ResponseWriter, service string, err error) {
	s.recorder.RecordUpstreamError(service)

	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ue.Status)
		w.Write(ue.Body)
		return
	}

	s.logger.Error("upstream call failed", "service", service, "error", err)
	writeError(w, http.StatusInternalServerError, "upstream request failed")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": "vibent", "status": "ok"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogin redirects the browser to the Spotify authorization page.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.spotify.Configured() {
		writeError(w, http.StatusInternalServerError, "Spotify client credentials are not configured")
		return
	}
	state := shared.GenerateID()
	http.Redirect(w, r, s.spotify.AuthCodeURL(state), http.StatusFound)
}

// handleCallback exchanges the authorization code and hands the tokens to
// the frontend as query parameters. The relay keeps nothing.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.spotify.Configured() {
		writeError(w, http.StatusInternalServerError, "Spotify client credentials are not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	cred, err := s.protocol.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Error("code exchange failed", "error", err)
		writeError(w, http.StatusInternalServerError, "code exchange failed")
		return
	}

	params := url.Values{}
	params.Set("access_token", cred.AccessToken)
	params.Set("refresh_token", cred.RefreshToken)
	params.Set("expires_in", strconv.Itoa(expiresIn(cred)))
	http.Redirect(w, r, s.config.Server.FrontendURI+"?"+params.Encode(), http.StatusFound)
}

// handleRefreshToken trades a refresh token for a fresh access token.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	if !s.spotify.Configured() {
		writeError(w, http.StatusInternalServerError, "Spotify client credentials are not configured")
		return
	}
	refreshToken := r.URL.Query().Get("refresh_token")
	if refreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	cred, err := s.protocol.Refresh(r.Context(), auth.Credential{RefreshToken: refreshToken})
	if err != nil {
		if auth.IsTerminalRefreshError(err) {
			s.recorder.RecordTokenRefresh("terminal")
			writeError(w, http.StatusBadRequest, "refresh token rejected")
			return
		}
		s.recorder.RecordTokenRefresh("transient")
		s.relayUpstream(w, s.spotify.Name(), err)
		return
	}

	s.recorder.RecordTokenRefresh("success")
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": cred.AccessToken,
		"expires_in":   expiresIn(cred),
	})
}

// handleRelatedArtists proxies the Spotify related-artists lookup with the
// caller's bearer token, passing the provider response through untouched.
func (s *Server) handleRelatedArtists(w http.ResponseWriter, r *http.Request) {
	artistID := r.PathValue("artistId")
	if artistID == "" {
		writeError(w, http.StatusBadRequest, "artist id is required")
		return
	}

	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "access token is required")
		return
	}

	start := time.Now()
	raw, err := s.spotify.RelatedArtistsRaw(r.Context(), token, artistID)
	s.recorder.RecordUpstreamLatency(s.spotify.Name(), time.Since(start))
	if err != nil {
		s.relayUpstream(w, s.spotify.Name(), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// handleConcerts searches Ticketmaster for an artist's events. Results are
// cached per artist; the optional city and state filters apply after the
// cache so every filter combination shares one upstream fetch.
func (s *Server) handleConcerts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	artistName := strings.TrimSpace(query.Get("artistName"))
	if artistName == "" {
		writeError(w, http.StatusBadRequest, "artistName is required")
		return
	}
	if len(artistName) > maxArtistNameLen {
		writeError(w, http.StatusBadRequest, "artistName is too long")
		return
	}

	if !s.ticketmaster.Configured() {
		writeError(w, http.StatusInternalServerError, "ticketmaster api key is not configured")
		return
	}

	ttl := time.Duration(s.config.Cache.ConcertTTLSeconds) * time.Second
	key := cache.Key("concerts", artistName)

	start := time.Now()
	events, hit, err := s.concerts.GetOrFetch(key, ttl, func() ([]models.Event, error) {
		return s.ticketmaster.SearchEvents(r.Context(), artistName)
	})
	if err != nil {
		s.relayUpstream(w, s.ticketmaster.Name(), err)
		return
	}

	if hit {
		s.recorder.RecordCacheHit()
	} else {
		s.recorder.RecordCacheMiss()
		s.recorder.RecordUpstreamLatency(s.ticketmaster.Name(), time.Since(start))
	}

	filtered := views.FilterEvents(events, views.EventFilter{
		City:  query.Get("city"),
		State: query.Get("state"),
	})
	writeJSON(w, http.StatusOK, map[string][]models.Event{"events": filtered})
}

// handleFlights proxies a flight-offers search, passing the provider
// response through untouched.
func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.FlightQuery{
		Origin:        q.Get("origin"),
		Destination:   q.Get("destination"),
		DepartureDate: q.Get("departureDate"),
		ReturnDate:    q.Get("returnDate"),
	}

	if query.Origin == "" || query.Destination == "" || query.DepartureDate == "" {
		writeError(w, http.StatusBadRequest, "origin, destination, and departureDate are required")
		return
	}
	if err := query.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.amadeus.Configured() {
		writeError(w, http.StatusInternalServerError, "amadeus credentials are not configured")
		return
	}

	start := time.Now()
	_, raw, err := s.amadeus.SearchFlights(r.Context(), query)
	s.recorder.RecordUpstreamLatency(s.amadeus.Name(), time.Since(start))
	if err != nil {
		s.relayUpstream(w, s.amadeus.Name(), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// bearerToken pulls the access token from the Authorization header, falling
// back to the access_token query parameter for browser callers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return r.URL.Query().Get("access_token")
}

// expiresIn converts an absolute expiry to the relative seconds the token
// endpoints report.
func expiresIn(cred auth.Credential) int {
	remaining := time.Until(cred.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}
