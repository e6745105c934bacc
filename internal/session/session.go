package session

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/golang-cafe/job-portal/internal/storage"
)

const (
	CookieName = "____jp"
	jwtValue   = "jwt"
)

// Profile is the signed-in user as kept in the session.
type Profile struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the state of one browser: the storage partition its saved jobs
// and applications live in, and the signed-in user if any.
type Session struct {
	ID    string
	User  *Profile
	IsNew bool // no valid session cookie came with the request
}

func (s Session) SignedIn() bool {
	return s.User != nil && s.User.Email != ""
}

type Claims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	jwt.StandardClaims
}

type Manager struct {
	cookies    *sessions.CookieStore
	jwtKey     []byte
	store      storage.Store
	adminEmail string
	ttl        time.Duration
}

func NewManager(cookies *sessions.CookieStore, jwtKey []byte, store storage.Store, adminEmail string) *Manager {
	return &Manager{
		cookies:    cookies,
		jwtKey:     jwtKey,
		store:      store,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		ttl:        30 * 24 * time.Hour,
	}
}

// Load returns the session carried by r. A request without a valid session
// cookie gets a fresh, signed out session.
func (m *Manager) Load(r *http.Request) Session {
	claims, err := m.claims(r)
	if err != nil {
		return Session{ID: ksuid.New().String(), IsNew: true}
	}
	sess := Session{ID: claims.SessionID}
	sess.User = m.profile(r.Context(), sess)
	return sess
}

func (m *Manager) claims(r *http.Request) (*Claims, error) {
	cookie, err := m.cookies.Get(r, CookieName)
	if err != nil {
		return nil, errors.Wrap(err, "could not find cookie")
	}
	tk, ok := cookie.Values[jwtValue].(string)
	if !ok {
		return nil, errors.New("could not find jwt in session")
	}
	token, err := jwt.ParseWithClaims(tk, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token is invalid or expired")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return nil, errors.New("could not convert jwt claims")
	}
	return claims, nil
}

func (m *Manager) profile(ctx context.Context, sess Session) *Profile {
	raw, err := m.Storage(sess).Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		return nil
	}
	p := &Profile{}
	if err := json.Unmarshal([]byte(raw), p); err != nil || p.Email == "" {
		return nil
	}
	return p
}

// Save signs sess and writes it to the session cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sess Session) error {
	claims := Claims{
		SessionID: sess.ID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(m.ttl).Unix(),
		},
	}
	if sess.User != nil {
		claims.Email = sess.User.Email
		claims.IsAdmin = sess.User.IsAdmin
	}
	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.jwtKey)
	if err != nil {
		return errors.Wrap(err, "unable to sign session token")
	}
	cookie, err := m.cookies.Get(r, CookieName)
	if err != nil {
		// an undecodable cookie is replaced
		cookie = sessions.NewSession(m.cookies, CookieName)
		cookie.Options = m.cookies.Options
		cookie.IsNew = true
	}
	cookie.Values[jwtValue] = tk
	if err := cookie.Save(r, w); err != nil {
		return errors.Wrap(err, "unable to write session cookie")
	}
	return nil
}

// SignIn marks sess as signed in as email and remembers the profile in the
// session's storage partition.
func (m *Manager) SignIn(ctx context.Context, sess *Session, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email cannot be empty")
	}
	p := &Profile{Email: email, IsAdmin: m.adminEmail != "" && email == m.adminEmail}
	b, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "unable to encode profile")
	}
	if err := m.Storage(*sess).Set(ctx, storage.KeyCurrentUser, string(b)); err != nil {
		return errors.Wrap(err, "unable to store profile")
	}
	sess.User = p
	return nil
}

func (m *Manager) SignOut(ctx context.Context, sess *Session) error {
	sess.User = nil
	if err := m.Storage(*sess).Remove(ctx, storage.KeyCurrentUser); err != nil {
		return errors.Wrap(err, "unable to remove profile")
	}
	return nil
}

// Storage is the store partition belonging to sess.
func (m *Manager) Storage(sess Session) storage.Store {
	return storage.Partition(m.store, sess.ID)
}

type contextKey struct{}

func NewContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(Session)
	return sess, ok
}
