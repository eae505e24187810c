package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docvault/internal/domain"
)

func TestFSStore_StoreRetrieveRoundtrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	key, err := store.Store(context.Background(), "docs/report.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if key != "docs/report.pdf" {
		t.Fatalf("unexpected key: %s", key)
	}

	r, err := store.Retrieve(context.Background(), key)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestFSStore_StoreRefusesOverwrite(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Store(context.Background(), "a", strings.NewReader("one")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, err := store.Store(context.Background(), "a", strings.NewReader("two")); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestFSStore_RetrieveMissing(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Retrieve(context.Background(), "nope"); !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestFSStore_KeyEscapesRoot(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Retrieve(context.Background(), "../outside"); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFSStore_EmptyKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Retrieve(context.Background(), ""); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
