package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// stateCookieName holds the anti-forgery state between the redirect to
// Google and the callback.
const stateCookieName = "screener_oauth_state"

// handleGoogleLogin redirects the caller to Google's consent screen
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to start authorization")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.creds.AuthURL(state), http.StatusTemporaryRedirect)
}

// handleGoogleCallback exchanges the authorization code for a token pair
// and stores it in the session cookie
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		s.errorResponse(w, http.StatusBadRequest, "Authorization denied: "+errParam)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		s.errorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	sess, err := s.creds.Exchange(r.Context(), code)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Token exchange failed: "+err.Error())
		return
	}

	// Drop the single-use state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	s.writeSession(w, sess)
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleAuthCheck reports whether a usable session cookie is present
func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	_, err := s.readSession(r)
	s.jsonResponse(w, http.StatusOK, map[string]bool{"authenticated": err == nil})
}

// handleLogout expires the session cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
