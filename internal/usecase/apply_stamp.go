package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docvault/internal/domain"
)

type ApplyStampRequest struct {
	DocumentID string
	StampID    string
	SignerID   string
	Reason     string
}

// ApplyStamp runs the approve-and-sign workflow against the latest version
// of a document: digest the stored content, sign the digest, upsert the
// signer's DigitalSignature, and transition the version to APPROVED. The
// persistence step is atomic; a failure leaves neither half applied.
type ApplyStamp struct {
	Stamps     StampRepository
	Documents  DocumentRepository
	Signatures SignatureRepository
	Hasher     HashingEngine
	Crypto     SignatureEngine
	Cache      ReportCache
	Now        func() time.Time
}

func (uc *ApplyStamp) Execute(ctx context.Context, req ApplyStampRequest) (*domain.DigitalSignature, error) {
	if req.SignerID == "" {
		return nil, fmt.Errorf("%w: signer id is required", domain.ErrInvalid)
	}

	stamp, err := uc.Stamps.Get(ctx, req.StampID)
	if err != nil {
		return nil, err
	}
	if !stamp.IsActive {
		return nil, fmt.Errorf("%w: stamp %q is inactive", domain.ErrInvalid, stamp.Name)
	}

	if _, err := uc.Documents.Get(ctx, req.DocumentID); err != nil {
		return nil, err
	}
	version, err := uc.Documents.GetLatestVersion(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s has no versions", domain.ErrInvalid, req.DocumentID)
		}
		return nil, err
	}
	if !version.HasBlob() {
		return nil, fmt.Errorf("%w: version %d has no uploaded content", domain.ErrInvalid, version.VersionNumber)
	}

	digest, err := uc.Hasher.ComputeDigest(ctx, version.BlobKey)
	if err != nil {
		return nil, err
	}
	signature, err := uc.Crypto.Sign(digest)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	stored, err := uc.Signatures.ApplySignature(ctx, domain.DigitalSignature{
		DocumentVersionID: version.ID,
		SignerID:          req.SignerID,
		SignatureStampID:  stamp.ID,
		DocumentHash:      digest,
		SignatureHash:     signature,
		Status:            domain.SignatureStatusValid,
		VerifiedAt:        now,
		Metadata: domain.SignatureMetadata{
			Schema:        domain.SignatureMetadataSchema,
			StampName:     stamp.Name,
			StampImageKey: stamp.ImageKey,
			Algorithm:     uc.Crypto.Algorithm(),
			VersionNumber: version.VersionNumber,
			Reason:        req.Reason,
			AppliedAt:     now,
		},
	})
	if err != nil {
		return nil, err
	}

	if uc.Cache != nil {
		_ = uc.Cache.Invalidate(ctx, reportCacheKey(req.DocumentID, version.ID, digest))
	}
	return &stored, nil
}

func (uc *ApplyStamp) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now().UTC()
}
