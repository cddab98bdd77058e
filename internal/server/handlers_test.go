package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/oauth2"

	"github.com/desertthunder/vibent/internal/auth"
	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/shared"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := shared.DefaultConfig()
	config.Credentials.Spotify.ClientID = "client-id"
	config.Credentials.Spotify.ClientSecret = "client-secret"
	config.Credentials.Ticketmaster.APIKey = "tm-key"
	config.Cache.ConcertTTLSeconds = 600

	return New(config, shared.NewLogger(io.Discard))
}

func doRequest(s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestIndexRejectsOtherMethods(t *testing.T) {
	s := newTestServer(t)

	if w := doRequest(s, http.MethodGet, "/", nil); w.Code != http.StatusOK {
		t.Errorf("GET / = %d, want 200", w.Code)
	}
	if w := doRequest(s, http.MethodPost, "/healthz", nil); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /healthz = %d, want 405", w.Code)
	}
}

func TestLoginRedirectsToSpotify(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/login", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.Contains(location, "accounts.spotify.com/authorize") {
		t.Errorf("location = %s", location)
	}
	if !strings.Contains(location, "user-read-private") {
		t.Errorf("scopes missing from %s", location)
	}
}

func TestCallbackWithoutCode(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/callback?error=access_denied", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "code") {
		t.Errorf("body should name the missing field, got %s", w.Body.String())
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	s := newTestServer(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"server_error"}`)
	}))
	defer ts.Close()

	s.protocol = auth.NewProtocol(&oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Endpoint:     oauth2.Endpoint{TokenURL: ts.URL},
	})

	w := doRequest(s, http.MethodGet, "/callback?code=abc", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestSpotifyEndpointsWithoutCredentials(t *testing.T) {
	config := shared.DefaultConfig()
	config.Credentials.Ticketmaster.APIKey = "tm-key"
	s := New(config, shared.NewLogger(io.Discard))

	for _, target := range []string{
		"/login",
		"/callback?code=abc",
		"/refresh_token?refresh_token=grant",
	} {
		w := doRequest(s, http.MethodGet, target, nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", target, w.Code)
		}
	}

	// The configured upstreams keep working.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, serverTMPayload)
	}))
	defer ts.Close()
	s.ticketmaster = s.ticketmaster.WithBaseURL(ts.URL)

	w := doRequest(s, http.MethodGet, "/concerts?artistName=Phantogram", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("/concerts status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRefreshToken(t *testing.T) {
	s := newTestServer(t)

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	s.protocol = auth.NewProtocol(&oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Endpoint:     oauth2.Endpoint{TokenURL: ts.URL},
	})

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/refresh_token", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if n := calls.Load(); n != 0 {
			t.Errorf("provider called %d times for a missing token", n)
		}
	})

	t.Run("success", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/refresh_token?refresh_token=grant", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var payload struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int    `json:"expires_in"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.AccessToken != "fresh" {
			t.Errorf("access_token = %q", payload.AccessToken)
		}
		if payload.ExpiresIn <= 0 || payload.ExpiresIn > 3600 {
			t.Errorf("expires_in = %d", payload.ExpiresIn)
		}
	})
}

func TestRefreshTokenTerminalFailure(t *testing.T) {
	s := newTestServer(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	}))
	defer ts.Close()

	s.protocol = auth.NewProtocol(&oauth2.Config{
		ClientID: "client-id",
		Endpoint: oauth2.Endpoint{TokenURL: ts.URL},
	})

	w := doRequest(s, http.MethodGet, "/refresh_token?refresh_token=revoked", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRelatedArtists(t *testing.T) {
	s := newTestServer(t)

	const upstreamBody = `{"artists":[{"id":"a1","name":"Phantogram"}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer user-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"status":401,"message":"invalid token"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, upstreamBody)
	}))
	defer ts.Close()
	s.spotify = s.spotify.WithBaseURL(ts.URL)

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/related-artists/a1", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("passthrough body", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Bearer user-token"}}
		w := doRequest(s, http.MethodGet, "/related-artists/a1", header)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if w.Body.String() != upstreamBody {
			t.Errorf("body = %s, want untouched upstream payload", w.Body.String())
		}
	})

	t.Run("status passthrough", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Bearer stale"}}
		w := doRequest(s, http.MethodGet, "/related-artists/a1", header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want upstream 401", w.Code)
		}
		if !strings.Contains(w.Body.String(), "invalid token") {
			t.Errorf("upstream body not relayed: %s", w.Body.String())
		}
	})
}

const serverTMPayload = `{
  "_embedded": {
    "events": [
      {
        "id": "ev1",
        "name": "Phantogram Live",
        "url": "https://tickets.example/ev1",
        "dates": {"start": {"localDate": "2026-09-01", "localTime": "20:00:00"}},
        "_embedded": {"venues": [{
          "name": "The Fillmore",
          "city": {"name": "San Francisco"},
          "state": {"name": "California", "stateCode": "CA"},
          "country": {"name": "United States", "countryCode": "US"}
        }]}
      },
      {
        "id": "ev2",
        "name": "Phantogram Live",
        "url": "https://tickets.example/ev2",
        "dates": {"start": {"localDate": "2026-09-03", "localTime": "19:30:00"}},
        "_embedded": {"venues": [{
          "name": "Brooklyn Steel",
          "city": {"name": "Brooklyn"},
          "state": {"name": "New York", "stateCode": "NY"},
          "country": {"name": "United States", "countryCode": "US"}
        }]}
      }
    ]
  }
}`

func TestConcertsValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing artistName", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/concerts", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("oversized artistName", func(t *testing.T) {
		name := strings.Repeat("a", maxArtistNameLen+1)
		w := doRequest(s, http.MethodGet, "/concerts?artistName="+name, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unconfigured key", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = "client-id"
		config.Credentials.Spotify.ClientSecret = "client-secret"

		unconfigured := New(config, shared.NewLogger(io.Discard))
		w := doRequest(unconfigured, http.MethodGet, "/concerts?artistName=Phantogram", nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}

func TestConcertsCachesPerArtist(t *testing.T) {
	s := newTestServer(t)

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, serverTMPayload)
	}))
	defer ts.Close()
	s.ticketmaster = s.ticketmaster.WithBaseURL(ts.URL)

	first := doRequest(s, http.MethodGet, "/concerts?artistName=Phantogram", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", first.Code, first.Body.String())
	}

	// Case and whitespace variants share the cache entry.
	second := doRequest(s, http.MethodGet, "/concerts?artistName=phantogram", nil)
	if second.Code != http.StatusOK {
		t.Fatalf("status = %d", second.Code)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("upstream called %d times, want 1", n)
	}

	var payload struct {
		Events []models.Event `json:"events"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(payload.Events))
	}
}

func TestConcertsFilterAppliesAfterCache(t *testing.T) {
	s := newTestServer(t)

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, serverTMPayload)
	}))
	defer ts.Close()
	s.ticketmaster = s.ticketmaster.WithBaseURL(ts.URL)

	doRequest(s, http.MethodGet, "/concerts?artistName=Phantogram", nil)
	filtered := doRequest(s, http.MethodGet, "/concerts?artistName=Phantogram&city=brooklyn", nil)
	if filtered.Code != http.StatusOK {
		t.Fatalf("status = %d", filtered.Code)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("filter variants must share one fetch, upstream called %d times", n)
	}

	var payload struct {
		Events []models.Event `json:"events"`
	}
	if err := json.Unmarshal(filtered.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Events) != 1 || payload.Events[0].City != "Brooklyn" {
		t.Fatalf("expected only the Brooklyn event, got %+v", payload.Events)
	}
}

func TestFlightsValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing params", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/flights?origin=SFO", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/flights?origin=SFO&destination=JFK&departureDate=tomorrow", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unconfigured credentials", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/flights?origin=SFO&destination=JFK&departureDate=2026-09-10", nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodOptions, "/healthz", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS header")
	}
}
