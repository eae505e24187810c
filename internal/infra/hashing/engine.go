package hashing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"docvault/internal/domain"
)

// Algorithm identifies the fixed digest algorithm. Digests are lowercase hex.
const Algorithm = "sha256"

const defaultChunkSize = 1 << 20 // 1 MiB read buffer

// Engine streams blob content through SHA-256. Peak memory stays bounded by
// the chunk size regardless of blob size.
type Engine struct {
	store     domain.BlobStore
	chunkSize int
	timeout   time.Duration
}

// NewEngine constructs an Engine over the given blob store. chunkSize <= 0
// selects the default; timeout <= 0 disables the per-call deadline.
func NewEngine(store domain.BlobStore, chunkSize int, timeout time.Duration) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: blob store is required", domain.ErrInvalid)
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Engine{store: store, chunkSize: chunkSize, timeout: timeout}, nil
}

// ComputeDigest retrieves the blob and returns the hex SHA-256 of its bytes.
// The digest depends only on content, never on blob metadata. Retrieval or
// read failures, including a timed-out retrieval, wrap domain.ErrIO.
func (e *Engine) ComputeDigest(ctx context.Context, blobKey string) (string, error) {
	if blobKey == "" {
		return "", fmt.Errorf("%w: blob key is required", domain.ErrInvalid)
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	r, err := e.store.Retrieve(ctx, blobKey)
	if err != nil {
		return "", fmt.Errorf("compute digest for %s: %w", blobKey, err)
	}
	defer r.Close()

	h := sha256.New()
	buf := make([]byte, e.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: compute digest for %s: %v", domain.ErrIO, blobKey, err)
		}
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: read blob %s: %v", domain.ErrIO, blobKey, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
