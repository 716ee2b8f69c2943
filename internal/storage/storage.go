package storage

import (
	"context"
	"errors"
)

// Storage is the key-value persistence capability the cart depends on.
// Consumers define this interface, not the Redis or SQLite implementation.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
