package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleAuthService implements AuthService over the Google OAuth2 endpoints.
// The redirect URI is the application's own base URL with no path; Google
// sends the code back as a query parameter there.
type googleAuthService struct {
	oauthConfig *oauth2.Config
}

// NewGoogleAuthService creates an AuthService for the given OAuth client.
func NewGoogleAuthService(clientID, clientSecret, redirectURL string) AuthService {
	return &googleAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *googleAuthService) LoginURL() string {
	return s.oauthConfig.AuthCodeURL("", oauth2.AccessTypeOffline)
}

func (s *googleAuthService) FetchProfile(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	resp, err := s.oauthConfig.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("user info endpoint returned %d: %s", resp.StatusCode, string(b))
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	// All four are mandatory for account creation; a profile missing any of
	// them cannot be stored.
	if profile.ID == "" || profile.Email == "" || profile.Name == "" || profile.Picture == "" {
		return nil, fmt.Errorf("google profile is missing required fields (id, email, name, picture)")
	}
	return &profile, nil
}
