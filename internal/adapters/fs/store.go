package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileExt = ".json"

// Store implements ports.Store with one file per key under dir.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Get reads the file for key.
// Returns found=false and a nil error if the file does not exist.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set overwrites the file for key atomically (temp file, then rename).
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	path := s.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Dir returns the directory holding the store files.
func (s *Store) Dir() string {
	return s.dir
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("fs store: invalid key %q", key)
	}
	return nil
}
