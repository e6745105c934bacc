package storage

import (
	"context"
	"sync"
)

type lockKey struct {
	store Store
	key   string
}

type keyLock struct {
	sync.Mutex
	refs int
}

// keyLocks hands out one mutex per stored key. A mutex is dropped once no
// caller holds or waits for it.
type keyLocks struct {
	mu    sync.Mutex
	locks map[lockKey]*keyLock
}

var listLocks = &keyLocks{locks: map[lockKey]*keyLock{}}

func (l *keyLocks) lock(k lockKey) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.locks[k]
	if !ok {
		kl = &keyLock{}
		l.locks[k] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.Lock()
	return func() {
		kl.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, k)
		}
		l.mu.Unlock()
	}
}

// resolve follows partitions down to the store that holds key.
func resolve(s Store, key string) lockKey {
	if p, ok := s.(partitioned); ok {
		return resolve(p.store, p.prefix+key)
	}
	return lockKey{store: s, key: key}
}

// UpdateList reads the list under key, hands it to fn and writes back what
// fn returns when fn reports a change. Updates of one key run one at a time
// within the process, whichever partition value they go through.
func UpdateList[T any](ctx context.Context, s Store, key string, fn func(items []T) ([]T, bool)) error {
	unlock := listLocks.lock(resolve(s, key))
	defer unlock()

	items, changed := fn(ReadList[T](ctx, s, key))
	if !changed {
		return nil
	}
	return WriteList(ctx, s, key, items)
}
