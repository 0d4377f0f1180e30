package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Session is the explicit session-context object handed to the components
// that need to know whether the caller may submit. It replaces the
// browser-local token cache; nothing in the core reads ambient state.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// NewSession returns an unauthenticated session
func NewSession() *Session {
	return &Session{now: time.Now}
}

// SetToken stores a bearer token. When the token is a JWT its exp claim
// drives local expiry checks; opaque tokens never expire locally.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = time.Time{}

	// the signature is the server's to verify; we only read the expiry
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			s.expiresAt = exp.Time
		}
	} else {
		zap.S().Debugw("token is not a JWT, skipping local expiry", "error", err)
	}
}

// Clear forgets the token, returning the session to unauthenticated
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}

// Token returns the current bearer token, empty when signed out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a usable token is present
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		return false
	}
	return true
}
