package storage

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ReadList decodes the JSON array stored under key. An absent key, an
// unreadable store or a value that fails to parse all yield an empty list.
// Failures are logged to the logger carried by ctx.
func ReadList[T any](ctx context.Context, s Store, key string) []T {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("unable to read list, treating as empty")
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("unable to parse list, treating as empty")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// WriteList overwrites key with the JSON encoding of items.
func WriteList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "unable to encode list %s", key)
	}
	return s.Set(ctx, key, string(b))
}
