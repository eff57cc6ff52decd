package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/prperemyshlev/pomodoro-service/internal/config"
	"github.com/prperemyshlev/pomodoro-service/internal/domain"
)

// ErrExchange is returned when Google rejects the authorization code
var ErrExchange = errors.New("failed to exchange authorization code")

var googleScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// GoogleClient drives the Google authorization code flow
type GoogleClient interface {
	// AuthCodeURL returns the consent page URL carrying state
	AuthCodeURL(state string) string
	// GetUserInfo exchanges code for an access token and fetches the user's profile
	GetUserInfo(ctx context.Context, code string) (*domain.GoogleUserData, error)
}

type googleClient struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogleClient creates a Google client. Endpoint URLs left empty in cfg
// fall back to Google's public endpoints.
func NewGoogleClient(cfg config.GoogleConfig) GoogleClient {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &googleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       googleScopes,
			Endpoint:     endpoint,
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

func (g *googleClient) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleClient) GetUserInfo(ctx context.Context, code string) (*domain.GoogleUserData, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned %s", resp.Status)
	}

	var user domain.GoogleUserData
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	user.AccessToken = token.AccessToken

	return &user, nil
}
