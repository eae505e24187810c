package usecase

import (
	"context"
	"errors"
	"testing"

	"docvault/internal/domain"
)

func TestReject_MarksVersionPending(t *testing.T) {
	store := newMemStore()
	_, verID := seedSignedVersion(store, "A")
	uc := &RejectVersion{Signatures: store}

	err := uc.Execute(context.Background(), RejectVersionRequest{
		DocumentID: "doc-1",
		VersionID:  verID,
		Reason:     "wrong template used",
		ActorID:    "reviewer-1",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if store.versions[verID].Status != domain.VersionStatusPendingApproval {
		t.Fatalf("version should return to PENDING_APPROVAL, got %s", store.versions[verID].Status)
	}
	if store.rejectedVersions[verID] != "wrong template used" {
		t.Fatalf("rejection reason not recorded: %q", store.rejectedVersions[verID])
	}
	// The signature row survives the rejection for audit purposes.
	if _, ok := store.sigs[sigKey(verID, "signer-1")]; !ok {
		t.Fatal("rejection must not delete signatures")
	}
}

func TestReject_UnknownVersion(t *testing.T) {
	store := newMemStore()
	uc := &RejectVersion{Signatures: store}

	err := uc.Execute(context.Background(), RejectVersionRequest{
		DocumentID: "doc-1", VersionID: "missing", Reason: "x", ActorID: "reviewer-1",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReject_VersionWithoutSignatures(t *testing.T) {
	store := newMemStore()
	store.docs["doc-1"] = domain.Document{ID: "doc-1"}
	store.versions["ver-1"] = domain.DocumentVersion{
		ID:            "ver-1",
		DocumentID:    "doc-1",
		VersionNumber: 1,
		Status:        domain.VersionStatusApproved,
	}
	uc := &RejectVersion{Signatures: store}

	err := uc.Execute(context.Background(), RejectVersionRequest{
		DocumentID: "doc-1", VersionID: "ver-1", Reason: "never signed off", ActorID: "reviewer-1",
	})
	if err != nil {
		t.Fatalf("rejecting an unsigned version must succeed: %v", err)
	}
	if store.versions["ver-1"].Status != domain.VersionStatusPendingApproval {
		t.Fatalf("unexpected status: %s", store.versions["ver-1"].Status)
	}
}

func TestReject_InvalidatesCachedReport(t *testing.T) {
	store := newMemStore()
	docID, verID := seedSignedVersion(store, "A")
	cache := newFakeCache()
	staleKey := reportCacheKey(docID, verID, hexSHA256("A"))
	cache.entries[staleKey] = domain.ValidationReport{Summary: "stale"}
	uc := &RejectVersion{
		Documents:  store,
		Signatures: store,
		Hasher:     &fakeHasher{digests: map[string]string{"blobs/ver-1": hexSHA256("A")}},
		Cache:      cache,
	}

	if err := uc.Execute(context.Background(), RejectVersionRequest{
		DocumentID: docID, VersionID: verID, Reason: "x", ActorID: "reviewer-1",
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, ok := cache.entries[staleKey]; ok {
		t.Fatal("stale report must be gone after rejection")
	}
}

func TestReject_FailureSkipsCacheInvalidation(t *testing.T) {
	store := newMemStore()
	cache := newFakeCache()
	cache.entries[reportCacheKey("doc-1", "missing", hexSHA256("A"))] = domain.ValidationReport{Summary: "kept"}
	uc := &RejectVersion{
		Documents:  store,
		Signatures: store,
		Hasher:     &fakeHasher{},
		Cache:      cache,
	}

	if err := uc.Execute(context.Background(), RejectVersionRequest{
		DocumentID: "doc-1", VersionID: "missing", Reason: "x", ActorID: "reviewer-1",
	}); err == nil {
		t.Fatal("expected error for unknown version")
	}
	if len(cache.invalidated) != 0 {
		t.Fatal("cache must stay untouched when the rejection fails")
	}
}
