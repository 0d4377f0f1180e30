package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsight/streetsight/store"
)

func TestUserStoreCreateAndAuthenticate(t *testing.T) {
	users := store.NewUserStore()
	ctx := context.Background()

	created, err := users.Create(ctx, "Priya", "Priya@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "priya@example.com", created.Email)
	assert.NotEqual(t, "hunter22", created.PasswordHash)

	// email lookup is case insensitive
	got, err := users.Authenticate(ctx, "priya@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUserStoreRejectsDuplicateEmail(t *testing.T) {
	users := store.NewUserStore()
	ctx := context.Background()

	_, err := users.Create(ctx, "Priya", "priya@example.com", "hunter22")
	require.NoError(t, err)

	_, err = users.Create(ctx, "Other", "PRIYA@example.com", "different")
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestUserStoreAuthenticateWrongPassword(t *testing.T) {
	users := store.NewUserStore()
	ctx := context.Background()

	_, err := users.Create(ctx, "Priya", "priya@example.com", "hunter22")
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "priya@example.com", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "ghost@example.com", "hunter22")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestUserStoreFindByID(t *testing.T) {
	users := store.NewUserStore()
	ctx := context.Background()

	created, err := users.Create(ctx, "Priya", "priya@example.com", "hunter22")
	require.NoError(t, err)

	got, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya", got.Name)

	_, err = users.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
