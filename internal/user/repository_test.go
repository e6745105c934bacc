package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/golang-cafe/job-portal/internal/storage"
)

func newTestRegistry() (*Registry, storage.Store) {
	store := storage.NewMemory()
	return NewRegistry(store).WithCost(bcrypt.MinCost), store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()

	u, err := r.Register(ctx, " Asha@Example.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)

	got, err := r.Authenticate(ctx, "asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = r.Authenticate(ctx, "asha@example.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = r.Authenticate(ctx, "nobody@example.com", "s3cret")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()

	_, err := r.Register(ctx, "asha@example.com", "one")
	require.NoError(t, err)
	_, err = r.Register(ctx, "ASHA@example.com", "two")
	assert.Equal(t, ErrUserExists, err)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()

	_, err := r.Register(ctx, "", "pw")
	assert.Equal(t, ErrMissingCredentials, err)
	_, err = r.Register(ctx, "a@b.c", "")
	assert.Equal(t, ErrMissingCredentials, err)
	_, err = r.Authenticate(ctx, "", "")
	assert.Equal(t, ErrMissingCredentials, err)
}

func TestPasswordsAreNotStoredInPlaintext(t *testing.T) {
	ctx := context.Background()
	r, store := newTestRegistry()

	_, err := r.Register(ctx, "asha@example.com", "plaintext-password")
	require.NoError(t, err)

	raw, err := store.Get(ctx, storage.KeyRegisteredUsers)
	require.NoError(t, err)
	assert.NotContains(t, raw, "plaintext-password")
	assert.Contains(t, raw, "asha@example.com")
}
