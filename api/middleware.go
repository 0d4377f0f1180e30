package api

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	guardianstore "github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/streetsight/streetsight/store"
)

// MiddlewareStore holds the user store and token settings for auth
type MiddlewareStore struct {
	Users       store.UserStore
	TokenSecret string
	TokenTTL    time.Duration
}

var authenticator auth.Authenticator
var cache guardianstore.Cache

type contextKey string

const authUserKey contextKey = "authUser"

// Middleware adds bearer authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("User %s Authenticated\n", user.UserName())
		r = r.WithContext(context.WithValue(r.Context(), authUserKey, user))
		next.ServeHTTP(w, r)
	})
}

// AuthInfoFrom returns the authenticated user attached by Middleware
func AuthInfoFrom(r *http.Request) (auth.Info, bool) {
	user, ok := r.Context().Value(authUserKey).(auth.Info)
	return user, ok
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareStore) SetupGoGuardian() {
	authenticator = auth.New()
	cache = guardianstore.NewFIFO(context.Background(), m.TokenTTL)
	basicStrategy := basic.New(m.ValidateUser, cache)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateUser validates a user's credentials against the user store
func (m MiddlewareStore) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	user, err := m.Users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return auth.NewDefaultUser(user.Name, user.ID, nil, nil), nil
}

// IssueToken mints a signed bearer token for the user and registers it with
// the cached bearer strategy so later requests authenticate against it
func (m MiddlewareStore) IssueToken(name, id string, r *http.Request) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.TokenTTL)
	claims := jwt.MapClaims{
		"sub":  id,
		"name": name,
		"exp":  jwt.NewNumericDate(expiresAt),
		"iat":  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	authUser := auth.NewDefaultUser(name, id, nil, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, authUser, r)
	return token, expiresAt, nil
}

// RevokeToken revokes the request's bearer token
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(reqToken) <= len(prefix) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "missing bearer token"}`))
		return
	}
	reqToken = reqToken[len(prefix):]

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, reqToken, r)
	w.Write([]byte(`{"revoked": true}`))
}
