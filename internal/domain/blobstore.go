package domain

import (
	"context"
	"io"
)

// BlobStore is opaque content storage addressed by string keys. Retrieval
// failures wrap ErrIO so callers can distinguish "cannot read the bytes"
// from "the bytes do not match expectations".
type BlobStore interface {
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)
	Store(ctx context.Context, key string, r io.Reader) (string, error)
}
