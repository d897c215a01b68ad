package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// localStore reads objects from a directory on disk.
type localStore struct {
	dir string
}

// NewLocalStore creates an ObjectStore rooted at dir.
func NewLocalStore(dir string) ObjectStore {
	return &localStore{dir: dir}
}

func (s *localStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return f, nil
}
