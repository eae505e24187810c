package usecase

import (
	"context"
	"strings"
	"time"

	"docvault/internal/domain"
)

type DocumentRepository interface {
	Get(ctx context.Context, id string) (*domain.Document, error)
	GetVersion(ctx context.Context, documentID, versionID string) (*domain.DocumentVersion, error)
	GetLatestVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error)
}

type StampRepository interface {
	Get(ctx context.Context, id string) (*domain.SignatureStamp, error)
}

type SignatureRepository interface {
	ApplySignature(ctx context.Context, sig domain.DigitalSignature) (domain.DigitalSignature, error)
	ListByVersion(ctx context.Context, versionID string) ([]domain.DigitalSignature, error)
	RefreshVerification(ctx context.Context, signatureID string, status domain.SignatureStatus, verifiedAt time.Time) error
	RejectVersion(ctx context.Context, documentID, versionID, reason, actorID string) error
}

type HashingEngine interface {
	ComputeDigest(ctx context.Context, blobKey string) (string, error)
}

type SignatureEngine interface {
	Algorithm() string
	Sign(digestHex string) (string, error)
	Verify(digestHex, sigHex string) (bool, error)
}

// ReportCache is optional; a nil cache means every validation recomputes.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.ValidationReport, bool, error)
	Put(ctx context.Context, key string, value domain.ValidationReport, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// reportCacheKey binds a cached report to the exact content it was derived
// from. Lookups always re-digest the blob first, so a hit is impossible for
// content that changed since the report was computed.
func reportCacheKey(documentID, versionID, digest string) string {
	return documentID + "|" + versionID + "|" + strings.ToLower(digest)
}
