package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/streetsight/streetsight/models"
)

// User store errors
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore contains the methods to use with the reporter accounts
type UserStore interface {
	Create(ctx context.Context, name, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

type memoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	byID    map[string]models.User
}

// NewUserStore initializes an in-memory user store for the dev server
func NewUserStore() UserStore {
	return &memoryUserStore{
		byEmail: make(map[string]models.User),
		byID:    make(map[string]models.User),
	}
}

func (s *memoryUserStore) Create(ctx context.Context, name, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return models.User{}, ErrEmailTaken
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	s.byEmail[email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *memoryUserStore) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	user, exists := s.byEmail[email]
	s.mu.RUnlock()
	if !exists {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *memoryUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.byID[id]
	if !exists {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
