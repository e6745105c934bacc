package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/golang-cafe/job-portal/internal/storage"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

// Registry keeps registered accounts in the store under a single global
// key.
type Registry struct {
	store storage.Store
	cost  int
	mu    sync.Mutex
}

func NewRegistry(store storage.Store) *Registry {
	return &Registry{store: store, cost: bcrypt.DefaultCost}
}

// WithCost returns r hashing new passwords at cost.
func (r *Registry) WithCost(cost int) *Registry {
	r.cost = cost
	return r
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Registry) Register(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	users := storage.ReadList[User](ctx, r.store, storage.KeyRegisteredUsers)
	for _, u := range users {
		if u.Email == email {
			return User{}, ErrUserExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return User{}, errors.Wrap(err, "unable to hash password")
	}
	u := User{Email: email, PasswordHash: string(hash), CreatedAt: time.Now().UTC()}
	users = append(users, u)
	if err := storage.WriteList(ctx, r.store, storage.KeyRegisteredUsers, users); err != nil {
		return User{}, errors.Wrapf(err, "unable to register %s", email)
	}
	return u, nil
}

func (r *Registry) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	for _, u := range storage.ReadList[User](ctx, r.store, storage.KeyRegisteredUsers) {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return User{}, ErrInvalidCredentials
}
