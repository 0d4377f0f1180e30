package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/streetsight/streetsight/api"
	"github.com/streetsight/streetsight/config"
	"github.com/streetsight/streetsight/models"
	"github.com/streetsight/streetsight/store"
)

var validate = validator.New()

// Auth handles account registration and login
type Auth struct {
	Users store.UserStore
	MW    api.MiddlewareStore
}

// RegisterHandler creates a reporter account and returns its first token
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid registration details", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.Users.Create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			config.ErrorStatus("email already registered", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	a.respondWithToken(w, r, user, http.StatusCreated)
}

// LoginHandler exchanges credentials for a bearer token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("invalid login details", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
		return
	}

	a.respondWithToken(w, r, user, http.StatusOK)
}

func (a Auth) respondWithToken(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, expiresAt, err := a.MW.IssueToken(user.Name, user.ID, r)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		Name:      user.Name,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}
