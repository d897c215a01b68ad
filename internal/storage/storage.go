package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"reprise/backend/internal/config"
)

// ErrObjectNotFound is returned by Open when the key does not exist.
var ErrObjectNotFound = errors.New("object not found in storage")

// ObjectStore gives read access to the static tables (exercise catalog,
// video links) that back the recommendation engine.
type ObjectStore interface {
	// Open returns a reader for the object stored under key.
	// The caller must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// FromConfig picks the store that holds the dataset tables.
func FromConfig(ds config.DatasetConfig, s3cfg config.S3Config) (ObjectStore, error) {
	switch ds.Source {
	case "", "file":
		return NewLocalStore(ds.Dir), nil
	case "s3":
		return NewS3Store(s3cfg)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", ds.Source)
	}
}
