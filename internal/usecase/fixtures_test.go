package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"docvault/internal/domain"
)

// memStore is an in-memory stand-in for the repositories, mirroring the
// data-store invariants: one signature per (version, signer), signatures
// survive rejection, and the version status transitions with them.
type memStore struct {
	mu               sync.Mutex
	docs             map[string]domain.Document
	versions         map[string]domain.DocumentVersion
	stamps           map[string]domain.SignatureStamp
	sigs             map[string]domain.DigitalSignature
	rejectedVersions map[string]string
	refreshes        map[string]domain.SignatureStatus

	applyErr   error
	refreshErr error
}

func newMemStore() *memStore {
	return &memStore{
		docs:             make(map[string]domain.Document),
		versions:         make(map[string]domain.DocumentVersion),
		stamps:           make(map[string]domain.SignatureStamp),
		sigs:             make(map[string]domain.DigitalSignature),
		rejectedVersions: make(map[string]string),
		refreshes:        make(map[string]domain.SignatureStatus),
	}
}

func sigKey(versionID, signerID string) string {
	return versionID + "|" + signerID
}

func (s *memStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *memStore) GetVersion(ctx context.Context, documentID, versionID string) (*domain.DocumentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	version, ok := s.versions[versionID]
	if !ok || version.DocumentID != documentID {
		return nil, domain.ErrNotFound
	}
	return &version, nil
}

func (s *memStore) GetLatestVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.DocumentVersion
	for id := range s.versions {
		version := s.versions[id]
		if version.DocumentID != documentID {
			continue
		}
		if latest == nil || version.VersionNumber > latest.VersionNumber {
			latest = &version
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (s *memStore) GetStamp(ctx context.Context, id string) (*domain.SignatureStamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp, ok := s.stamps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &stamp, nil
}

func (s *memStore) ApplySignature(ctx context.Context, sig domain.DigitalSignature) (domain.DigitalSignature, error) {
	if s.applyErr != nil {
		return domain.DigitalSignature{}, s.applyErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	version, ok := s.versions[sig.DocumentVersionID]
	if !ok {
		return domain.DigitalSignature{}, domain.ErrNotFound
	}

	key := sigKey(sig.DocumentVersionID, sig.SignerID)
	if existing, ok := s.sigs[key]; ok {
		sig.ID = existing.ID
		sig.CreatedAt = existing.CreatedAt
	} else if sig.ID == "" {
		sig.ID = fmt.Sprintf("sig-%d", len(s.sigs)+1)
	}
	s.sigs[key] = sig

	version.Status = domain.VersionStatusApproved
	s.versions[version.ID] = version
	delete(s.rejectedVersions, version.ID)
	return sig, nil
}

func (s *memStore) ListByVersion(ctx context.Context, versionID string) ([]domain.DigitalSignature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DigitalSignature
	for _, sig := range s.sigs {
		if sig.DocumentVersionID == versionID {
			out = append(out, sig)
		}
	}
	return out, nil
}

func (s *memStore) RefreshVerification(ctx context.Context, signatureID string, status domain.SignatureStatus, verifiedAt time.Time) error {
	if s.refreshErr != nil {
		return s.refreshErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes[signatureID] = status
	for key, sig := range s.sigs {
		if sig.ID == signatureID {
			sig.Status = status
			sig.VerifiedAt = verifiedAt
			s.sigs[key] = sig
		}
	}
	return nil
}

func (s *memStore) RejectVersion(ctx context.Context, documentID, versionID, reason, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	version, ok := s.versions[versionID]
	if !ok || version.DocumentID != documentID {
		return domain.ErrNotFound
	}
	s.rejectedVersions[versionID] = reason
	version.Status = domain.VersionStatusPendingApproval
	s.versions[versionID] = version
	return nil
}

type fakeHasher struct {
	digests map[string]string
	err     error
}

func (h *fakeHasher) ComputeDigest(ctx context.Context, blobKey string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	digest, ok := h.digests[blobKey]
	if !ok {
		return "", fmt.Errorf("%w: blob %s not found", domain.ErrIO, blobKey)
	}
	return digest, nil
}

// fakeSigner treats a signature as valid when it equals "sig:" + digest,
// and supports injecting verification failures per signature value.
type fakeSigner struct {
	signErr   error
	verifyErr map[string]error
}

func (f *fakeSigner) Algorithm() string {
	return "fake-rsa-sha256"
}

func (f *fakeSigner) Sign(digestHex string) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "sig:" + digestHex, nil
}

func (f *fakeSigner) Verify(digestHex, sigHex string) (bool, error) {
	if err := f.verifyErr[sigHex]; err != nil {
		return false, err
	}
	return sigHex == "sig:"+digestHex, nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]domain.ValidationReport
	puts        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.ValidationReport)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.ValidationReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	report, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &report, true, nil
}

func (c *fakeCache) Put(ctx context.Context, key string, value domain.ValidationReport, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.puts++
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.invalidated = append(c.invalidated, key)
	}
	return nil
}

func hexSHA256(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
