package usecase

import (
	"context"
)

type RejectVersionRequest struct {
	DocumentID string
	VersionID  string
	Reason     string
	ActorID    string
}

// RejectVersion reverts a version's approval. Existing signatures on the
// version are marked rejected but never deleted, and the version returns to
// PENDING_APPROVAL whether or not any signature existed.
type RejectVersion struct {
	Documents  DocumentRepository
	Signatures SignatureRepository
	Hasher     HashingEngine
	Cache      ReportCache
}

func (uc *RejectVersion) Execute(ctx context.Context, req RejectVersionRequest) error {
	err := uc.Signatures.RejectVersion(ctx, req.DocumentID, req.VersionID, req.Reason, req.ActorID)
	if err != nil {
		return err
	}
	uc.invalidateReport(ctx, req)
	return nil
}

// invalidateReport drops the cached report for the version's current
// content. Cache keys carry the content digest, so when the content cannot
// be digested here, no future lookup can reach a stale entry either.
func (uc *RejectVersion) invalidateReport(ctx context.Context, req RejectVersionRequest) {
	if uc.Cache == nil || uc.Documents == nil || uc.Hasher == nil {
		return
	}
	version, err := uc.Documents.GetVersion(ctx, req.DocumentID, req.VersionID)
	if err != nil || !version.HasBlob() {
		return
	}
	digest, err := uc.Hasher.ComputeDigest(ctx, version.BlobKey)
	if err != nil {
		return
	}
	_ = uc.Cache.Invalidate(ctx, reportCacheKey(req.DocumentID, req.VersionID, digest))
}
