package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// FileStore persists values in a dotenv-format file. A missing file reads
// as empty; the first write creates it.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the dotenv file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read(_ context.Context, key string) (string, bool, error) {
	vals, err := godotenv.Read(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", s.path, err)
	}

	value, ok := vals[key]
	return value, ok, nil
}

func (s *FileStore) Write(_ context.Context, key, value string) error {
	vals, err := godotenv.Read(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if vals == nil {
		vals = make(map[string]string)
	}

	vals[key] = value
	if err := godotenv.Write(vals, s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	return nil
}

func (s *FileStore) Close() {}
