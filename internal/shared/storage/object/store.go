package object

import (
	"context"
	"io"
)

// ObjectStore saves and retrieves binary objects: uploaded documents on the
// backend side, downloaded agreements on the client side.
type ObjectStore interface {
	// Save stores r under a random key inside namespace and sniffs its media type.
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	// SaveWithKey stores r at an exact key, replacing any previous object.
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
