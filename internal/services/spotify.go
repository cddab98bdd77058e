// Spotify API implementation of [ArtistSource]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/vibent/internal/models"
	"github.com/desertthunder/vibent/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyScopes are the OAuth scopes the application requests.
var SpotifyScopes = []string{
	"user-read-private",
	"user-read-email",
	"user-top-read",
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Genres       []string       `json:"genres"`
	Images       []SpotifyImage `json:"images"`
	Popularity   int            `json:"popularity"`
	ExternalURLs externalURLs   `json:"external_urls"`
	URI          string         `json:"uri"`
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// topArtistsResponse is the paginated /me/top/artists payload.
type topArtistsResponse struct {
	Items []SpotifyArtist `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

// relatedArtistsResponse is the /artists/{id}/related-artists payload.
type relatedArtistsResponse struct {
	Artists []SpotifyArtist `json:"artists"`
}

// SpotifyService implements [ArtistSource] for the Spotify Web API.
//
// Authentication state lives in the caller's credential store; every method
// takes the bearer token explicitly so the relay can forward tokens supplied
// by its own clients.
type SpotifyService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service with the given OAuth2
// credentials. Absent credentials are tolerated so a relay configured for
// other upstreams can still start; endpoints that need them check
// [SpotifyService.Configured] and fail per request.
func NewSpotifyService(credentials map[string]string) *SpotifyService {
	redirectURI := credentials["redirect_uri"]
	if redirectURI == "" {
		redirectURI = "http://localhost:8888/callback"
	}

	config := &oauth2.Config{
		ClientID:     credentials["client_id"],
		ClientSecret: credentials["client_secret"],
		RedirectURL:  redirectURI,
		Scopes:       SpotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		baseURL:    spotifyBaseURL,
		httpClient: newClient(),
	}
}

// Configured reports whether client credentials are present.
func (s *SpotifyService) Configured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// WithBaseURL overrides the API base URL. Used by tests.
func (s *SpotifyService) WithBaseURL(baseURL string) *SpotifyService {
	s.baseURL = baseURL
	return s
}

// OAuthConfig returns the OAuth2 config for the token refresh protocol.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// AuthCodeURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// get performs one authenticated GET against the Spotify API and returns the
// raw body. Non-2xx responses surface as [UpstreamError].
func (s *SpotifyService) get(ctx context.Context, accessToken, endpoint string) ([]byte, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: no access token", shared.ErrNotAuthenticated)
	}

	ctx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return readResponse(resp)
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context, accessToken string) (*SpotifyUser, error) {
	body, err := s.get(ctx, accessToken, "/me")
	if err != nil {
		return nil, err
	}

	var user SpotifyUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return &user, nil
}

// TopArtists retrieves the user's top artists (time range: medium term).
func (s *SpotifyService) TopArtists(ctx context.Context, accessToken string, limit int) ([]models.Artist, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/me/top/artists?limit=%d", limit)
	body, err := s.get(ctx, accessToken, endpoint)
	if err != nil {
		return nil, err
	}

	var response topArtistsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	artists := make([]models.Artist, 0, len(response.Items))
	for _, sa := range response.Items {
		artists = append(artists, normalizeArtist(sa))
	}
	return artists, nil
}

// RelatedArtistsRaw retrieves the related-artists payload verbatim for
// relay passthrough.
func (s *SpotifyService) RelatedArtistsRaw(ctx context.Context, accessToken, artistID string) ([]byte, error) {
	endpoint := fmt.Sprintf("/artists/%s/related-artists", url.PathEscape(artistID))
	return s.get(ctx, accessToken, endpoint)
}

// RelatedArtists retrieves artists related to the given artist.
func (s *SpotifyService) RelatedArtists(ctx context.Context, accessToken, artistID string) ([]models.Artist, error) {
	body, err := s.RelatedArtistsRaw(ctx, accessToken, artistID)
	if err != nil {
		return nil, err
	}

	var response relatedArtistsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	artists := make([]models.Artist, 0, len(response.Artists))
	for _, sa := range response.Artists {
		artists = append(artists, normalizeArtist(sa))
	}
	return artists, nil
}

// normalizeArtist converts a Spotify artist payload into the display model.
func normalizeArtist(sa SpotifyArtist) models.Artist {
	artist := models.Artist{
		ID:          sa.ID,
		Name:        sa.Name,
		Genres:      sa.Genres,
		Popularity:  sa.Popularity,
		ExternalURL: sa.ExternalURLs.Spotify,
	}
	if len(sa.Images) > 0 {
		artist.ImageURL = sa.Images[0].URL
	}
	return artist
}

var _ ArtistSource = (*SpotifyService)(nil)
