// Package credentials manages the OAuth session used for mailbox access.
// A session is the access/refresh token pair read from the caller's session
// store at the start of a pipeline run and written back after refresh.
package credentials

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// Session is the token pair authorizing mailbox operations for one run.
// It is never mutated concurrently within a run.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// Manager refreshes sessions and hands out authenticated HTTP clients
type Manager struct {
	oauth *oauth2.Config
}

// NewManager creates a manager for the Google OAuth application identified
// by clientID/clientSecret. redirectURL is where the consent flow returns.
func NewManager(clientID, clientSecret, redirectURL string) *Manager {
	return &Manager{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailReadonlyScope, gmail.GmailModifyScope},
		},
	}
}

// AuthURL returns the consent page URL. Offline access is requested so the
// provider issues a refresh token.
func (m *Manager) AuthURL(state string) string {
	return m.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a new session
func (m *Manager) Exchange(ctx context.Context, code string) (Session, error) {
	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return Session{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

// EnsureSession returns a session guaranteed usable for one pipeline run.
// The stored expiry is not trusted: the access token may have been revoked
// server-side, so a refresh is attempted unconditionally. The refreshed flag
// tells the caller to persist the returned session.
//
// Fails with ErrMissingCredentials when either token is absent, and with
// *ReauthRequiredError when the refresh is rejected (revoked refresh token):
// the run must abort cleanly rather than continue with a stale session.
func (m *Manager) EnsureSession(ctx context.Context, s Session) (Session, bool, error) {
	if s.AccessToken == "" || s.RefreshToken == "" {
		return Session{}, false, ErrMissingCredentials
	}

	// Force the token source to refresh by presenting only the refresh token.
	stale := &oauth2.Token{RefreshToken: s.RefreshToken}
	fresh, err := m.oauth.TokenSource(ctx, stale).Token()
	if err != nil {
		return Session{}, false, &ReauthRequiredError{Cause: err}
	}

	next := Session{
		AccessToken:  fresh.AccessToken,
		RefreshToken: fresh.RefreshToken,
		Expiry:       fresh.Expiry,
	}
	// Google omits the refresh token from refresh responses; keep the old one.
	if next.RefreshToken == "" {
		next.RefreshToken = s.RefreshToken
	}
	return next, next.AccessToken != s.AccessToken, nil
}

// HTTPClient returns an HTTP client authenticated with the session's access
// token. The session should come from EnsureSession, so a static source is
// sufficient for the duration of one run.
func (m *Manager) HTTPClient(ctx context.Context, s Session) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: s.AccessToken,
		TokenType:   "Bearer",
		Expiry:      s.Expiry,
	})
	return oauth2.NewClient(ctx, source)
}
