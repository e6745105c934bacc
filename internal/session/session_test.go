package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-cafe/job-portal/internal/storage"
)

func newTestManager(store storage.Store) *Manager {
	return NewManager(
		sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")),
		[]byte("signing-key"),
		store,
		"admin@jobportal.com",
	)
}

// roundTrip saves sess and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, m *Manager, sess Session) *http.Request {
	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), sess))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestLoadWithoutCookieIsFreshSession(t *testing.T) {
	m := newTestManager(storage.NewMemory())

	a := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	b := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.SignedIn())
	assert.True(t, a.IsNew)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(storage.NewMemory())

	sess := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, m.SignIn(ctx, &sess, "Asha@Example.com"))
	assert.True(t, sess.SignedIn())
	assert.False(t, sess.User.IsAdmin)

	loaded := m.Load(roundTrip(t, m, sess))
	assert.Equal(t, sess.ID, loaded.ID)
	assert.False(t, loaded.IsNew)
	require.True(t, loaded.SignedIn())
	assert.Equal(t, "asha@example.com", loaded.User.Email)
}

func TestSignInAdmin(t *testing.T) {
	m := newTestManager(storage.NewMemory())
	sess := Session{ID: "s1"}
	require.NoError(t, m.SignIn(context.Background(), &sess, "admin@jobportal.com"))
	assert.True(t, sess.User.IsAdmin)
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(storage.NewMemory())
	sess := Session{ID: "s1"}
	require.NoError(t, m.SignIn(ctx, &sess, "asha@example.com"))

	require.NoError(t, m.SignOut(ctx, &sess))
	assert.False(t, sess.SignedIn())

	loaded := m.Load(roundTrip(t, m, sess))
	assert.Equal(t, "s1", loaded.ID)
	assert.False(t, loaded.SignedIn())
}

func TestLoadRejectsForeignToken(t *testing.T) {
	store := storage.NewMemory()
	m := newTestManager(store)
	other := NewManager(m.cookies, []byte("another-key"), store, "")

	r := roundTrip(t, other, Session{ID: "s1"})
	assert.NotEqual(t, "s1", m.Load(r).ID)
}

func TestStorageIsPartitioned(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	m := newTestManager(store)

	require.NoError(t, m.Storage(Session{ID: "a"}).Set(ctx, storage.KeySavedJobs, "[1]"))
	_, err := m.Storage(Session{ID: "b"}).Get(ctx, storage.KeySavedJobs)
	assert.Equal(t, storage.ErrNotFound, err)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Session{ID: "s1"})
	sess, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "s1", sess.ID)
}
