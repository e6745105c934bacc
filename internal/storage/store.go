package storage

import (
	"context"

	"github.com/pkg/errors"
)

// Keys used by the job portal. Every key lives inside a session partition
// except KeyRegisteredUsers, which is global.
const (
	KeySavedJobs       = "savedJobs"
	KeyApplications    = "jobApplications"
	KeyCurrentUser     = "jobPortalUser"
	KeyRegisteredUsers = "registeredUsers"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed, string-valued key value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type partitioned struct {
	store  Store
	prefix string
}

// Partition scopes every key of s under id.
func Partition(s Store, id string) Store {
	return partitioned{store: s, prefix: id + ":"}
}

func (p partitioned) Get(ctx context.Context, key string) (string, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p partitioned) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p partitioned) Remove(ctx context.Context, key string) error {
	return p.store.Remove(ctx, p.prefix+key)
}
