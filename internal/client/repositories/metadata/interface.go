// Package metadata is the local key/value store backing the persisted
// session (access token and cached profile).
package metadata

import (
	"context"
)

// Repository is a string-keyed blob store.
//
// Get returns common.ErrNotFound (wrapped) when the key is absent.
// Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
