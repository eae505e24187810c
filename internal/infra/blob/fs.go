package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docvault/internal/domain"
)

// FSStore keeps blobs as files under a root directory. Keys are relative
// paths; anything escaping the root is rejected.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: blob root is required", domain.ErrInvalid)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve blob root: %v", domain.ErrIO, err)
	}
	return &FSStore{root: abs}, nil
}

func (s *FSStore) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: retrieve %s: %v", domain.ErrIO, key, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve %s: %v", domain.ErrIO, key, err)
	}
	return f, nil
}

// Store writes a new blob and refuses to overwrite an existing key, keeping
// stored content immutable per key.
func (s *FSStore) Store(ctx context.Context, key string, r io.Reader) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrIO, key, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrIO, key, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: blob %s already exists", domain.ErrConflict, key)
		}
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrIO, key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrIO, key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: store %s: %v", domain.ErrIO, key, err)
	}
	return key, nil
}

func (s *FSStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: blob key is required", domain.ErrInvalid)
	}
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if path != s.root && !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: blob key escapes store root", domain.ErrInvalid)
	}
	return path, nil
}
