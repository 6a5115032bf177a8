package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/resume-screener/internal/credentials"
)

// SessionCookieName holds the signed mailbox token pair between runs
const SessionCookieName = "screener_session"

// sessionTTL bounds how long a session cookie is honored. The embedded
// refresh token outlives the access token, so the window is generous.
const sessionTTL = 30 * 24 * time.Hour

// sessionClaims carries the OAuth token pair inside a signed JWT. Signing
// prevents cookie tampering; the cookie is additionally HttpOnly.
type sessionClaims struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenExpiry  int64  `json:"token_expiry,omitempty"`
	jwt.RegisteredClaims
}

// SessionCodec encodes credential sessions to and from signed cookies
type SessionCodec struct {
	secret []byte
}

// NewSessionCodec creates a codec signing with the given secret
func NewSessionCodec(secret string) *SessionCodec {
	return &SessionCodec{secret: []byte(secret)}
}

// Encode signs a session into a compact token string
func (c *SessionCodec) Encode(s credentials.Session) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if !s.Expiry.IsZero() {
		claims.TokenExpiry = s.Expiry.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode validates a token string and returns the session it carries
func (c *SessionCodec) Decode(tokenString string) (credentials.Session, error) {
	if tokenString == "" {
		return credentials.Session{}, fmt.Errorf("session token is empty")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return credentials.Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	if !token.Valid {
		return credentials.Session{}, fmt.Errorf("session token is invalid")
	}

	s := credentials.Session{
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
	}
	if claims.TokenExpiry > 0 {
		s.Expiry = time.Unix(claims.TokenExpiry, 0)
	}
	return s, nil
}

// readSession extracts the credential session from the request cookie.
// A missing or unreadable cookie maps to ErrMissingCredentials so the
// caller gets the same "please authenticate" answer in both cases.
func (s *Server) readSession(r *http.Request) (credentials.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return credentials.Session{}, credentials.ErrMissingCredentials
	}
	sess, err := s.sessions.Decode(cookie.Value)
	if err != nil {
		return credentials.Session{}, credentials.ErrMissingCredentials
	}
	return sess, nil
}

// writeSession persists a session back through the response cookie
func (s *Server) writeSession(w http.ResponseWriter, sess credentials.Session) {
	signed, err := s.sessions.Encode(sess)
	if err != nil {
		log.Printf("[server] failed to encode session cookie: %v", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession expires the session cookie
func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
