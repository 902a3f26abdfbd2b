package ports

import "context"

// Store is a string key-value store. It knows nothing about the values it holds.
type Store interface {
	// Get returns the value under key. found is false, with a nil error,
	// when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key, value string) error
}

// PathStore is implemented by stores that keep each key in its own file.
type PathStore interface {
	Store

	// Path returns the file backing key.
	Path(key string) string
}
